package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/divreport-go/pkg/divreport/models"
)

// BuildTable converts raw string rows into a Table.
// The first non-blank row is the header; blank rows are skipped.
// Cells keep their text as read; numbers are parsed where they are used.
// Header names are normalized, empty ones become "unnamed: N" and
// repeated ones get ".1", ".2" suffixes.
func BuildTable(name string, rows [][]string) *models.Table {
	table := &models.Table{Name: name}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return table
	}

	table.Columns = headerColumns(rows[minRow], minCol, maxCol)

	for rowIdx := minRow + 1; rowIdx <= maxRow; rowIdx++ {
		row := rows[rowIdx]
		record := make(models.Row)
		hasData := false

		for i, col := range table.Columns {
			colIdx := minCol + i
			if colIdx >= len(row) {
				break
			}
			if strings.TrimSpace(row[colIdx]) == "" {
				continue
			}
			hasData = true
			record[col] = row[colIdx]
		}

		if hasData {
			table.Rows = append(table.Rows, record)
		}
	}

	return table
}

func headerColumns(header []string, minCol, maxCol int) []string {
	columns := make([]string, 0, maxCol-minCol+1)
	used := make(map[string]int)

	for colIdx := minCol; colIdx <= maxCol; colIdx++ {
		var name string
		if colIdx < len(header) {
			name = NormalizeHeader(header[colIdx])
		}
		if name == "" {
			name = fmt.Sprintf("unnamed: %d", colIdx-minCol)
		}
		if n, ok := used[name]; ok {
			used[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			used[name] = 0
		}
		columns = append(columns, name)
	}

	return columns
}

// ParseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
// Only finite numbers whose text reads back unchanged are converted, so codes
// such as "007" and words such as "Infinity" stay strings.
func ParseValue(s string) interface{} {
	t := strings.TrimSpace(s)
	// Try integer first
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		if strconv.FormatInt(i, 10) == t {
			return i
		}
		return s
	}
	// Try float
	if f, err := strconv.ParseFloat(t, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		if strconv.FormatFloat(f, 'f', -1, 64) == t {
			return f
		}
	}
	// Return as string
	return s
}

// CellString renders a parsed cell value as text.
func CellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
