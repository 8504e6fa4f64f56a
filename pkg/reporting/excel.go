package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/quantbench/sentiment-trader/internal/backtest"
)

const (
	summarySheet = "Summary"
	tradesSheet  = "Trades"
	equitySheet  = "Equity Curve"
)

// WriteResultExcel writes a backtest result workbook with summary, trade
// log, and equity-curve sheets.
func WriteResultExcel(result *backtest.Result, path string) error {
	fx := excelize.NewFile()
	defer fx.Close()

	fx.SetSheetName("Sheet1", summarySheet)
	if err := writeSummarySheet(fx, result); err != nil {
		return err
	}
	if err := writeTradesSheet(fx, result); err != nil {
		return err
	}
	if err := writeEquitySheet(fx, result); err != nil {
		return err
	}

	if err := fx.SaveAs(path); err != nil {
		return fmt.Errorf("save excel report: %w", err)
	}
	return nil
}

func writeSummarySheet(fx *excelize.File, result *backtest.Result) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Initial Value", result.InitialValue},
		{"Final Value", result.FinalValue},
		{"Total Return", result.TotalReturn},
		{"Buy & Hold Return", result.BenchmarkReturn},
		{"Outperformance", result.Outperformance()},
		{"Win Rate", result.WinRate},
		{"Max Drawdown", result.MaxDrawdown},
		{"Sharpe Ratio", result.SharpeRatio},
		{"Total Trades", len(result.TradeLog)},
		{"Total Signals", len(result.SignalLog)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeTradesSheet(fx *excelize.File, result *backtest.Result) error {
	if _, err := fx.NewSheet(tradesSheet); err != nil {
		return err
	}

	header := []interface{}{"Timestamp", "Side", "Price", "Asset Amount", "Cash Value", "Signal", "Confidence"}
	if err := fx.SetSheetRow(tradesSheet, "A1", &header); err != nil {
		return err
	}
	for i, trade := range result.TradeLog {
		row := []interface{}{
			trade.Timestamp.Format("2006-01-02 15:04:05"),
			string(trade.Side),
			trade.Price,
			trade.AssetAmount,
			trade.CashValue,
			trade.SignalKind.String(),
			trade.Confidence,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(tradesSheet, cell, &row); err != nil {
			return fmt.Errorf("write trade row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeEquitySheet(fx *excelize.File, result *backtest.Result) error {
	if _, err := fx.NewSheet(equitySheet); err != nil {
		return err
	}

	header := []interface{}{"Timestamp", "Price", "Portfolio Value"}
	if err := fx.SetSheetRow(equitySheet, "A1", &header); err != nil {
		return err
	}
	for i, point := range result.ValueSeries {
		row := []interface{}{
			point.Timestamp.Format("2006-01-02 15:04:05"),
			point.Price,
			point.Value,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(equitySheet, cell, &row); err != nil {
			return fmt.Errorf("write equity row %d: %w", i+2, err)
		}
	}
	return nil
}
