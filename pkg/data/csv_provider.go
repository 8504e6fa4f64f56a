package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantbench/sentiment-trader/pkg/types"
)

// CSVColumnMapping defines the column positions and timestamp layout of a
// CSV candle file.
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// DefaultCSVFormat matches the common "timestamp,open,high,low,close,volume"
// export layout.
var DefaultCSVFormat = CSVColumnMapping{
	TimestampCol: 0,
	OpenCol:      1,
	HighCol:      2,
	LowCol:       3,
	CloseCol:     4,
	VolumeCol:    5,
	MinColumns:   6,
	DateFormat:   "2006-01-02 15:04:05",
}

// CSVProvider replays historical data from a CSV candle file. The close
// price is used as the sample's evaluation price.
type CSVProvider struct {
	path   string
	format CSVColumnMapping
	log    zerolog.Logger
}

// NewCSVProvider creates a CSV provider for the given file using the default
// column layout.
func NewCSVProvider(path string, log zerolog.Logger) *CSVProvider {
	return NewCSVProviderWithFormat(path, DefaultCSVFormat, log)
}

// NewCSVProviderWithFormat creates a CSV provider with a custom column layout.
func NewCSVProviderWithFormat(path string, format CSVColumnMapping, log zerolog.Logger) *CSVProvider {
	return &CSVProvider{
		path:   path,
		format: format,
		log:    log.With().Str("component", "csv-provider").Logger(),
	}
}

// GetName returns the provider name.
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// GetSeries loads the file, keeps rows inside [start, end], and validates
// the ordering contract. Rows that fail to parse are skipped with a warning
// rather than aborting the load.
func (p *CSVProvider) GetSeries(_ context.Context, start, end time.Time) ([]types.PriceSample, error) {
	file, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header.
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	var series []types.PriceSample
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV line %d: %w", line, err)
		}
		line++

		if len(record) < p.format.MinColumns {
			p.log.Warn().Int("line", line).Int("columns", len(record)).Msg("insufficient columns, skipping row")
			continue
		}

		sample, err := p.parseRow(record)
		if err != nil {
			p.log.Warn().Int("line", line).Err(err).Msg("unparseable row, skipping")
			continue
		}
		series = append(series, sample)
	}

	series = FilterRange(series, start, end)
	if err := ValidateSeries(series); err != nil {
		return nil, fmt.Errorf("csv data violates series contract: %w", err)
	}
	return series, nil
}

func (p *CSVProvider) parseRow(record []string) (types.PriceSample, error) {
	ts, err := time.Parse(p.format.DateFormat, record[p.format.TimestampCol])
	if err != nil {
		return types.PriceSample{}, fmt.Errorf("timestamp %q: %w", record[p.format.TimestampCol], err)
	}

	fields := map[string]int{
		"open":   p.format.OpenCol,
		"high":   p.format.HighCol,
		"low":    p.format.LowCol,
		"close":  p.format.CloseCol,
		"volume": p.format.VolumeCol,
	}
	parsed := make(map[string]float64, len(fields))
	for name, col := range fields {
		v, err := strconv.ParseFloat(record[col], 64)
		if err != nil {
			return types.PriceSample{}, fmt.Errorf("%s %q: %w", name, record[col], err)
		}
		parsed[name] = v
	}

	return types.PriceSample{
		Timestamp: ts,
		Price:     parsed["close"],
		Volume:    parsed["volume"],
		Open:      parsed["open"],
		High:      parsed["high"],
		Low:       parsed["low"],
		Close:     parsed["close"],
	}, nil
}
