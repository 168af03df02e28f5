package divreport

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ukaji3/divreport-go/pkg/divreport/models"
	"github.com/ukaji3/divreport-go/pkg/divreport/parser"
	"github.com/ukaji3/divreport-go/pkg/divreport/source"
)

// Reference table column names.
const (
	colOfficeName = "office name"
	colDivision   = models.ColDivision
)

// LoadReferenceFile loads the reference table at path.
func LoadReferenceFile(path string) (*models.Reference, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrReferenceNotFound, path)
	}
	return LoadReference(source.FromFile(path))
}

// LoadReference decodes a reference table mapping office names to divisions.
// It requires "office name" and "division" columns after normalization.
func LoadReference(s source.Stream) (*models.Reference, error) {
	table, err := readStream(s)
	if err != nil {
		return nil, err
	}

	if missing := missingColumns(table, colOfficeName, colDivision); len(missing) > 0 {
		return nil, &ColumnError{Table: s.Name, Columns: missing}
	}

	records := make([]models.ReferenceRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, models.ReferenceRecord{
			OfficeName: strings.TrimSpace(parser.CellString(row[colOfficeName])),
			Division:   strings.TrimSpace(parser.CellString(row[colDivision])),
		})
	}

	return models.NewReference(s.Name, records, parser.NormalizeKey), nil
}

func readStream(s source.Stream) (*models.Table, error) {
	rc, err := s.Open()
	if err != nil {
		return nil, &FileError{Name: s.Name, Op: "open", Err: err}
	}
	defer rc.Close()

	table, err := parser.ReadTable(s.Name, rc)
	if err != nil {
		return nil, &FileError{Name: s.Name, Op: "read", Err: err}
	}
	return table, nil
}

func missingColumns(table *models.Table, cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if !table.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}
