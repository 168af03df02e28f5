package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/divreport-go/pkg/divreport/models"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *models.Report {
	pl := []models.OutputRecord{
		{Division: "Delhi Div", ToOfficeName: "Delhi HO", BagNumber: int64(1), ArticleCount: int64(5), BagType: "PL"},
	}
	sp := []models.OutputRecord{
		{Division: "Agra Div", ToOfficeName: "Agra HO", BagNumber: nil, ArticleCount: 2.5, BagType: "SP"},
	}
	return &models.Report{
		Records: append(append([]models.OutputRecord{}, sp...), pl...),
		PL:      pl,
		SP:      sp,
		Summary: models.Summary{
			BagTypes: []string{"PL", "SP"},
			Rows: []models.SummaryRow{
				{Division: "Agra Div", Totals: map[string]decimal.Decimal{"SP": decimal.NewFromFloat(2.5)}},
				{Division: "Delhi Div", Totals: map[string]decimal.Decimal{"PL": decimal.NewFromInt(5)}},
			},
		},
	}
}

func TestBytesLayout(t *testing.T) {
	data, err := Bytes(sampleReport())
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{SheetPL, SheetSP, SheetSummary}
	if len(sheets) != len(want) {
		t.Fatalf("Expected sheets %v, got %v", want, sheets)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("Sheet %d: expected %q, got %q", i, want[i], sheets[i])
		}
	}

	rows, err := f.GetRows(SheetPL)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 PL rows, got %d", len(rows))
	}
	header := []string{"division", "to office name", "bag number", "article count", "bag type"}
	for i, h := range header {
		if rows[0][i] != h {
			t.Errorf("PL header %d: expected %q, got %q", i, h, rows[0][i])
		}
	}
	if rows[1][0] != "Delhi Div" || rows[1][3] != "5" || rows[1][4] != "PL" {
		t.Errorf("Unexpected PL row: %v", rows[1])
	}

	rows, err = f.GetRows(SheetSP)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 || rows[1][2] != "" || rows[1][3] != "2.5" {
		t.Errorf("Unexpected SP rows: %v", rows)
	}

	rows, err = f.GetRows(SheetSummary)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	expected := [][]string{
		{"division", "PL", "SP"},
		{"Agra Div", "0", "2.5"},
		{"Delhi Div", "5", "0"},
	}
	if len(rows) != len(expected) {
		t.Fatalf("Expected %d summary rows, got %d", len(expected), len(rows))
	}
	for i := range expected {
		for j := range expected[i] {
			if rows[i][j] != expected[i][j] {
				t.Errorf("Summary[%d][%d]: expected %q, got %q", i, j, expected[i][j], rows[i][j])
			}
		}
	}
}

func TestBytesEmptySheets(t *testing.T) {
	data, err := Bytes(&models.Report{Summary: models.Summary{BagTypes: []string{"PL", "SP"}}})
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetSP)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Expected header only, got %v", rows)
	}
}

func TestBytesDeterministic(t *testing.T) {
	first, err := Bytes(sampleReport())
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	second, err := Bytes(sampleReport())
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Expected identical output for identical reports")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "division_mapped_output.xlsx")

	if err := WriteFile(sampleReport(), path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "division_mapped_output.xlsx" {
		t.Errorf("Expected only the output file, got %v", entries)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()
	if f.GetSheetName(0) != SheetPL {
		t.Errorf("Expected first sheet %q, got %q", SheetPL, f.GetSheetName(0))
	}
}

func TestWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.xlsx")
	if err := WriteFile(sampleReport(), path); err == nil {
		t.Error("Expected error for missing directory")
	}
}
