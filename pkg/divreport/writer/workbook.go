// Package writer serializes a division report into a three-sheet workbook.
package writer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/divreport-go/pkg/divreport/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetPL      = "PL Bags"
	SheetSP      = "SP Bags"
	SheetSummary = "Summary"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Build lays out report as a workbook: PL Bags, SP Bags, Summary.
// Each sheet has a bold header row and no index column.
func Build(report *models.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetPL); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetSP, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]interface{}
	}{
		{SheetPL, models.OutputColumns, recordRows(report.PL)},
		{SheetSP, models.OutputColumns, recordRows(report.SP)},
		{SheetSummary, report.Summary.Header(), summaryRows(report.Summary)},
	}

	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.header, s.rows, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("write sheet %q: %w", s.name, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Bytes returns the workbook for report as an in-memory xlsx file.
func Bytes(report *models.Report) ([]byte, error) {
	f, err := Build(report)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the workbook for report to path. The file is written
// to a temporary name in the same directory and renamed into place, so
// path holds either the complete workbook or its previous content.
func WriteFile(report *models.Report, path string) error {
	data, err := Bytes(report)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".divreport-*.xlsx")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}, headerStyle int) error {
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func recordRows(records []models.OutputRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Values())
	}
	return rows
}

func summaryRows(summary models.Summary) [][]interface{} {
	rows := make([][]interface{}, 0, len(summary.Rows))
	for _, sr := range summary.Rows {
		row := []interface{}{sr.Division}
		for _, bt := range summary.BagTypes {
			row = append(row, amountValue(sr.Total(bt)))
		}
		rows = append(rows, row)
	}
	return rows
}

// amountValue renders whole totals as integers and others as floats.
func amountValue(d decimal.Decimal) interface{} {
	if d.IsInteger() {
		return d.IntPart()
	}
	return d.InexactFloat64()
}
