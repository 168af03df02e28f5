package divreport

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/divreport-go/pkg/divreport/models"
	"github.com/ukaji3/divreport-go/pkg/divreport/parser"
)

// combinedTableName labels the concatenated input in column errors.
const combinedTableName = "input files"

// Combine concatenates tables in order. The column set is the ordered
// union of every table's columns.
func Combine(tables []*models.Table) (*models.Table, error) {
	if len(tables) == 0 {
		return nil, ErrNoData
	}

	combined := &models.Table{Name: combinedTableName}
	for _, t := range tables {
		for _, col := range t.Columns {
			combined.AddColumn(col)
		}
		combined.Rows = append(combined.Rows, t.Rows...)
	}
	return combined, nil
}

// Join attaches the reference division to every combined row, matching
// "to office name" against the normalized reference office name.
// Rows without a division are dropped, or reported as an UnmatchedError
// when opts selects UnmatchedFail.
func Join(combined *models.Table, ref *models.Reference, opts Options) ([]models.Row, error) {
	if missing := missingColumns(combined, models.ColToOfficeName, models.ColArticleCount); len(missing) > 0 {
		return nil, &ColumnError{Table: combined.Name, Columns: missing}
	}

	matched := make([]models.Row, 0, len(combined.Rows))
	var unmatched []string
	seen := make(map[string]bool)
	unmatchedRows := 0

	for _, row := range combined.Rows {
		office := parser.CellString(row[models.ColToOfficeName])
		rec, ok := ref.Lookup(parser.NormalizeKey(office))
		if !ok || rec.Division == "" {
			unmatchedRows++
			if !seen[office] {
				seen[office] = true
				unmatched = append(unmatched, office)
			}
			continue
		}

		out := make(models.Row, len(row)+1)
		for k, v := range row {
			out[k] = v
		}
		out[models.ColDivision] = rec.Division
		matched = append(matched, out)
	}

	if unmatchedRows > 0 && opts.strict() {
		return nil, &UnmatchedError{Offices: unmatched, Rows: unmatchedRows}
	}
	return matched, nil
}

// Project reduces matched rows to the output columns and sorts them by
// division. Ties keep their input order.
func Project(rows []models.Row) []models.OutputRecord {
	records := make([]models.OutputRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.OutputRecord{
			Division:     parser.CellString(row[models.ColDivision]),
			ToOfficeName: parser.CellString(row[models.ColToOfficeName]),
			BagNumber:    numericCell(row[models.ColBagNumber]),
			ArticleCount: numericCell(row[models.ColArticleCount]),
			BagType:      parser.CellString(row[models.ColBagType]),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Division < records[j].Division
	})
	return records
}

// Split partitions records into PL and SP subsets, comparing the bag type
// case-insensitively. Records with any other tag are in neither subset.
func Split(records []models.OutputRecord) (pl, sp []models.OutputRecord) {
	for _, r := range records {
		switch {
		case strings.EqualFold(r.BagType, BagTypePL):
			pl = append(pl, r)
		case strings.EqualFold(r.BagType, BagTypeSP):
			sp = append(sp, r)
		}
	}
	return pl, sp
}

// Summarize totals article counts per division and bag type. PL and SP
// columns are always present; other non-empty tags add columns after them.
// Records with an empty bag type are not summed. The second return value
// counts article counts that were not numeric and were treated as zero.
func Summarize(records []models.OutputRecord) (models.Summary, int) {
	totals := make(map[string]map[string]decimal.Decimal)
	var divisions []string
	extra := make(map[string]bool)
	invalid := 0

	for _, r := range records {
		byType, ok := totals[r.Division]
		if !ok {
			byType = make(map[string]decimal.Decimal)
			totals[r.Division] = byType
			divisions = append(divisions, r.Division)
		}

		bagType := canonicalBagType(r.BagType)
		if bagType == "" {
			continue
		}
		if bagType != BagTypePL && bagType != BagTypeSP {
			extra[bagType] = true
		}

		amount, ok := articleAmount(r.ArticleCount)
		if !ok {
			invalid++
		}
		byType[bagType] = byType[bagType].Add(amount)
	}

	sort.Strings(divisions)

	bagTypes := []string{BagTypePL, BagTypeSP}
	others := make([]string, 0, len(extra))
	for bt := range extra {
		others = append(others, bt)
	}
	sort.Strings(others)
	bagTypes = append(bagTypes, others...)

	summary := models.Summary{BagTypes: bagTypes}
	for _, div := range divisions {
		for _, bt := range bagTypes {
			if _, ok := totals[div][bt]; !ok {
				totals[div][bt] = decimal.Zero
			}
		}
		summary.Rows = append(summary.Rows, models.SummaryRow{
			Division: div,
			Totals:   totals[div],
		})
	}
	return summary, invalid
}

func canonicalBagType(bagType string) string {
	bagType = strings.TrimSpace(bagType)
	switch {
	case strings.EqualFold(bagType, BagTypePL):
		return BagTypePL
	case strings.EqualFold(bagType, BagTypeSP):
		return BagTypeSP
	default:
		return bagType
	}
}

// numericCell turns numeric text into a number so it is written as one.
// Other values pass through unchanged.
func numericCell(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		return parser.ParseValue(s)
	}
	return v
}

// articleAmount converts an article count cell to a decimal. Empty cells
// are zero; non-numeric cells are zero and reported with ok=false.
func articleAmount(v interface{}) (amount decimal.Decimal, ok bool) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, true
	case int64:
		return decimal.NewFromInt(val), true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}
