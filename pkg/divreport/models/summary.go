package models

import "github.com/shopspring/decimal"

// SummaryRow holds article totals for one division.
type SummaryRow struct {
	// Division is the division name.
	Division string `json:"division"`
	// Totals maps bag type to the summed article count.
	Totals map[string]decimal.Decimal `json:"totals"`
}

// Total returns the total for bagType, or zero when the division has none.
func (r SummaryRow) Total(bagType string) decimal.Decimal {
	if v, ok := r.Totals[bagType]; ok {
		return v
	}
	return decimal.Zero
}

// Summary is the division by bag-type pivot.
type Summary struct {
	// BagTypes lists the pivot columns in order.
	BagTypes []string `json:"bag_types"`
	// Rows has one entry per division, sorted by division.
	Rows []SummaryRow `json:"rows"`
}

// Header returns the Summary sheet header.
func (s Summary) Header() []string {
	return append([]string{ColDivision}, s.BagTypes...)
}
