// Package parser decodes bag manifest and reference files into tables.
package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/ukaji3/divreport-go/pkg/divreport/models"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat indicates a file extension outside the allow-list.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Supported file extensions (lowercase, with leading dot).
const (
	ExtCSV  = ".csv"
	ExtXLS  = ".xls"
	ExtXLSX = ".xlsx"
)

var supportedExtensions = map[string]bool{
	ExtCSV:  true,
	ExtXLS:  true,
	ExtXLSX: true,
}

// maxXLSRows bounds rows read from a legacy workbook sheet.
const maxXLSRows = 65536

// IsSupported reports whether name has a readable extension (case-insensitive).
func IsSupported(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// ReadTable decodes r as a table, choosing the format from name's extension.
// Spreadsheets are read from their first sheet only.
func ReadTable(name string, r io.Reader) (*models.Table, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ExtCSV:
		rows, err = readCSV(r)
	case ExtXLSX:
		rows, err = readXLSX(r)
	case ExtXLS:
		rows, err = readXLS(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
	if err != nil {
		return nil, err
	}

	return BuildTable(filepath.Base(name), rows), nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	// Raw values keep number formats such as "#,##0" out of the counts.
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	return rows, nil
}

func readXLS(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("no worksheet found")
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow) && i < maxXLSRows; i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// xlsRow returns row i, or nil when the sheet has no record for it.
// WorkSheet.Row dereferences missing rows, so blank rows surface as a panic.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}
