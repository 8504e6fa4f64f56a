package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantbench/sentiment-trader/internal/backtest"
	"github.com/quantbench/sentiment-trader/internal/fusion"
)

// WriteSignalJSON persists a fused signal as indented, human-diffable JSON.
func WriteSignalJSON(sig fusion.Signal, path string) error {
	return writeJSON(sig, path)
}

// WriteResultJSON persists a backtest result as indented JSON.
func WriteResultJSON(result *backtest.Result, path string) error {
	return writeJSON(result, path)
}

func writeJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
