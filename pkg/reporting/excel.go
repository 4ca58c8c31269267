package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/haln-dev/quantlab/pkg/orchestrator"
)

// ExcelReporter writes walk-forward results to an Excel workbook.
type ExcelReporter struct{}

// NewExcelReporter creates an Excel reporter.
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// WriteWalkForwardXLSX writes a workbook with a Windows sheet of per-window
// results and a Summary sheet of aggregates.
func (r *ExcelReporter) WriteWalkForwardXLSX(report *orchestrator.WalkForwardReport, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const windowsSheet = "Windows"
	const summarySheet = "Summary"

	fx.SetSheetName(fx.GetSheetName(0), windowsSheet)
	if _, err := fx.NewSheet(summarySheet); err != nil {
		return err
	}

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := r.writeWindowsSheet(fx, windowsSheet, report, headerStyle); err != nil {
		return err
	}
	if err := r.writeSummarySheet(fx, summarySheet, report, headerStyle); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *ExcelReporter) writeWindowsSheet(fx *excelize.File, sheet string, report *orchestrator.WalkForwardReport, headerStyle int) error {
	headers := []string{"Window", "Train From", "Train To", "Test From", "Test To", "Fast", "Slow", "Train Score", "Test Return"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, window := range report.Windows {
		row := i + 2
		values := []interface{}{
			i + 1,
			window.TrainFrom.Format("2006-01-02"),
			window.TrainTo.Format("2006-01-02"),
			window.TestFrom.Format("2006-01-02"),
			window.TestTo.Format("2006-01-02"),
			window.Params.Fast,
			window.Params.Slow,
			window.TrainScore,
			window.TestReturn,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := fx.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *ExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, report *orchestrator.WalkForwardReport, headerStyle int) error {
	if err := fx.SetCellValue(sheet, "A1", "Metric"); err != nil {
		return err
	}
	if err := fx.SetCellValue(sheet, "B1", "Value"); err != nil {
		return err
	}
	if err := fx.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Symbol", report.Symbol},
		{"Windows", len(report.Windows)},
		{"Total Test Return (additive)", report.TotalTestReturn},
		{"Compounded Test Return", report.CompoundedReturn},
		{"Aggregate", report.Aggregate},
	}
	for i, pair := range rows {
		if err := fx.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), pair[0]); err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), pair[1]); err != nil {
			return err
		}
	}
	return nil
}
