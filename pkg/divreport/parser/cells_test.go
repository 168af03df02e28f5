package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadTableXLSX(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	// Header starts on row 2, column B
	f.SetCellValue(sheetName, "B2", " To Office Name ")
	f.SetCellValue(sheetName, "C2", "Article Count")
	f.SetCellValue(sheetName, "D2", "Bag Number")
	f.SetCellValue(sheetName, "B3", "Delhi HO")
	f.SetCellValue(sheetName, "C3", 5)
	f.SetCellValue(sheetName, "D3", "B-001")
	f.SetCellValue(sheetName, "B5", "Agra HO")
	f.SetCellValue(sheetName, "C5", 2.5)

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "set1.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	in, err := os.Open(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer in.Close()

	table, err := ReadTable(tmpFile, in)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	if table.Name != "set1.xlsx" {
		t.Errorf("Expected name set1.xlsx, got %q", table.Name)
	}

	wantCols := []string{"to office name", "article count", "bag number"}
	if strings.Join(table.Columns, "|") != strings.Join(wantCols, "|") {
		t.Errorf("Expected columns %v, got %v", wantCols, table.Columns)
	}

	// Blank row 4 is skipped
	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}

	if table.Rows[0]["to office name"] != "Delhi HO" {
		t.Errorf("Expected 'Delhi HO', got %v", table.Rows[0]["to office name"])
	}
	if table.Rows[0]["article count"] != "5" {
		t.Errorf("Expected \"5\", got %v (type: %T)", table.Rows[0]["article count"], table.Rows[0]["article count"])
	}
	if table.Rows[1]["article count"] != "2.5" {
		t.Errorf("Expected 2.5, got %v", table.Rows[1]["article count"])
	}
	if _, ok := table.Rows[1]["bag number"]; ok {
		t.Errorf("Expected no bag number in second row, got %v", table.Rows[1]["bag number"])
	}
}

func TestReadTableCSV(t *testing.T) {
	data := "\xEF\xBB\xBFTo Office Name,Article Count,,Article Count\n" +
		"Delhi HO,5,x,6\n" +
		",,,\n" +
		"\"Agra, HO\",7,,\n"

	table, err := ReadTable("set2_june.CSV", strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	wantCols := []string{"to office name", "article count", "unnamed: 2", "article count.1"}
	if strings.Join(table.Columns, "|") != strings.Join(wantCols, "|") {
		t.Errorf("Expected columns %v, got %v", wantCols, table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[1]["to office name"] != "Agra, HO" {
		t.Errorf("Expected 'Agra, HO', got %v", table.Rows[1]["to office name"])
	}
	if table.Rows[0]["article count.1"] != "6" {
		t.Errorf("Expected \"6\", got %v", table.Rows[0]["article count.1"])
	}
}

func TestReadTableXLSXIgnoresNumberFormat(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "To Office Name")
	f.SetCellValue(sheetName, "B1", "Article Count")
	f.SetCellValue(sheetName, "C1", "Bag Number")
	f.SetCellValue(sheetName, "A2", "Delhi HO")
	f.SetCellValue(sheetName, "B2", 1234)
	f.SetCellValue(sheetName, "C2", "007")
	f.SetCellValue(sheetName, "A3", "Agra HO")
	f.SetCellValue(sheetName, "B3", 2.5)

	// "#,##0" displays 1234 as "1,234" and 2.5 as "3"
	style, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		t.Fatalf("Failed to create style: %v", err)
	}
	if err := f.SetCellStyle(sheetName, "B2", "B3", style); err != nil {
		t.Fatalf("Failed to set style: %v", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	table, err := ReadTable("set1.xlsx", &buf)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0]["article count"] != "1234" {
		t.Errorf("Expected \"1234\", got %v", table.Rows[0]["article count"])
	}
	if table.Rows[1]["article count"] != "2.5" {
		t.Errorf("Expected \"2.5\", got %v", table.Rows[1]["article count"])
	}
	if table.Rows[0]["bag number"] != "007" {
		t.Errorf("Expected \"007\", got %v", table.Rows[0]["bag number"])
	}
}

func TestReadTableXLS(t *testing.T) {
	in, err := os.Open(filepath.Join("testdata", "set1_legacy.xls"))
	if err != nil {
		t.Fatalf("Failed to open fixture: %v", err)
	}
	defer in.Close()

	table, err := ReadTable("set1_legacy.XLS", in)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	wantCols := []string{"to office name", "article count", "bag number"}
	if strings.Join(table.Columns, "|") != strings.Join(wantCols, "|") {
		t.Errorf("Expected columns %v, got %v", wantCols, table.Columns)
	}

	// Row 2 of the sheet has no record and is skipped
	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}

	tests := []struct {
		want, col string
		idx       int
	}{
		{"Delhi HO", "to office name", 0},
		{"5", "article count", 0},
		{"007", "bag number", 0},
		{"Agra HO", "to office name", 1},
		{"2.5", "article count", 1},
		{"12", "bag number", 1},
	}
	for _, tt := range tests {
		if got := table.Rows[tt.idx][tt.col]; got != tt.want {
			t.Errorf("Row %d %q = %v, expected %q", tt.idx, tt.col, got, tt.want)
		}
	}
}

func TestReadTableUnsupported(t *testing.T) {
	_, err := ReadTable("notes.txt", bytes.NewReader(nil))
	if err == nil {
		t.Fatal("Expected error for unsupported extension")
	}
	if !strings.Contains(err.Error(), ErrUnsupportedFormat.Error()) {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
}

func TestReadTableEmpty(t *testing.T) {
	table, err := ReadTable("empty.csv", strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(table.Columns) != 0 || len(table.Rows) != 0 {
		t.Errorf("Expected empty table, got %+v", table)
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"set1.csv", true},
		{"SET2.XLSX", true},
		{"legacy.Xls", true},
		{"notes.txt", false},
		{"archive.xlsx.zip", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.name); got != tt.expected {
			t.Errorf("IsSupported(%q) = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{" 42 ", int64(42)},
		{"hello", "hello"},
		{"", ""},
		{"007", "007"},
		{"2.50", "2.50"},
		{"1e3", "1e3"},
		{"NaN", "NaN"},
		{"Infinity", "Infinity"},
		{"-inf", "-inf"},
	}

	for _, tt := range tests {
		result := ParseValue(tt.input)
		if result != tt.expected {
			t.Errorf("ParseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected string
	}{
		{nil, ""},
		{"Delhi HO", "Delhi HO"},
		{int64(7), "7"},
		{2.5, "2.5"},
	}

	for _, tt := range tests {
		if got := CellString(tt.input); got != tt.expected {
			t.Errorf("CellString(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Delhi HO", "delhi ho"},
		{"  DELHI   HO ", "delhi ho"},
		{"delhi\tho", "delhi ho"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.input); got != tt.expected {
			t.Errorf("NormalizeKey(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestFindDataBounds(t *testing.T) {
	rows := [][]string{
		{},
		{"", " ", ""},
		{"", "a", "b"},
		{"", "", "", "c"},
	}
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow != 2 || maxRow != 3 || minCol != 1 || maxCol != 3 {
		t.Errorf("findDataBounds = (%d, %d, %d, %d), expected (2, 3, 1, 3)", minRow, maxRow, minCol, maxCol)
	}

	minRow, _, _, _ = findDataBounds([][]string{{""}})
	if minRow != -1 {
		t.Errorf("Expected -1 for blank rows, got %d", minRow)
	}
}
