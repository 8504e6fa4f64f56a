// Package reporting renders fused signals and backtest results for humans
// (console tables) and for persistence (JSON, Excel).
package reporting

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/quantbench/sentiment-trader/internal/backtest"
	"github.com/quantbench/sentiment-trader/internal/fusion"
)

// ConsoleReporter prints results to stdout as formatted tables.
type ConsoleReporter struct{}

// NewConsoleReporter creates a console reporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// PrintSignal renders a single fused signal with its reasoning trace.
func (r *ConsoleReporter) PrintSignal(sig fusion.Signal) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("TRADING SIGNAL")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Signal", sig.Kind.String()},
		{"Confidence", fmt.Sprintf("%.1f%%", sig.Confidence*100)},
		{"Price", fmt.Sprintf("$%.2f", sig.ReferencePrice)},
		{"Sentiment Score", fmt.Sprintf("%.3f", sig.SentimentScore)},
		{"Technical Score", fmt.Sprintf("%.3f", sig.TechnicalScore)},
		{"Combined Score", fmt.Sprintf("%.3f", sig.CombinedScore)},
		{"Timestamp", sig.Timestamp.Format("2006-01-02 15:04:05")},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 16, Align: text.AlignLeft},
		{Number: 2, WidthMin: 24, Align: text.AlignLeft},
	})
	t.Render()

	fmt.Println("\nReasoning:")
	for _, reason := range sig.Reasoning {
		fmt.Printf("  - %s\n", reason)
	}
	fmt.Println()
}

// PrintResult renders the backtest summary and the trade log.
func (r *ConsoleReporter) PrintResult(result *backtest.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("BACKTEST RESULTS")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Initial Value", fmt.Sprintf("$%.2f", result.InitialValue)},
		{"Final Value", fmt.Sprintf("$%.2f", result.FinalValue)},
		{"Total Return", fmt.Sprintf("%.2f%%", result.TotalReturn*100)},
		{"Buy & Hold Return", fmt.Sprintf("%.2f%%", result.BenchmarkReturn*100)},
		{"Outperformance", fmt.Sprintf("%.2f%%", result.Outperformance()*100)},
		{"Win Rate", fmt.Sprintf("%.1f%%", result.WinRate*100)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", result.MaxDrawdown*100)},
		{"Sharpe Ratio", fmt.Sprintf("%.2f", result.SharpeRatio)},
		{"Trades", len(result.TradeLog)},
		{"Signals", len(result.SignalLog)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 18, Align: text.AlignLeft},
		{Number: 2, WidthMin: 16, Align: text.AlignRight},
	})
	t.Render()

	if len(result.TradeLog) == 0 {
		fmt.Println("\nNo trades executed.")
		return
	}

	tl := table.NewWriter()
	tl.SetOutputMirror(os.Stdout)
	tl.SetTitle("TRADE LOG")
	tl.SetStyle(table.StyleLight)
	tl.AppendHeader(table.Row{"#", "Time", "Side", "Price", "Amount", "Value", "Signal", "Conf"})
	for i, trade := range result.TradeLog {
		tl.AppendRow(table.Row{
			i + 1,
			trade.Timestamp.Format("2006-01-02 15:04"),
			string(trade.Side),
			fmt.Sprintf("$%.2f", trade.Price),
			fmt.Sprintf("%.6f", trade.AssetAmount),
			fmt.Sprintf("$%.2f", trade.CashValue),
			trade.SignalKind.String(),
			fmt.Sprintf("%.2f", trade.Confidence),
		})
	}
	tl.Render()
	fmt.Println()
}
