package models

// Output column names, in sheet order.
const (
	ColDivision     = "division"
	ColToOfficeName = "to office name"
	ColBagNumber    = "bag number"
	ColArticleCount = "article count"
	ColBagType      = "bag type"
)

// OutputColumns is the fixed projection written to the line-item sheets.
var OutputColumns = []string{ColDivision, ColToOfficeName, ColBagNumber, ColArticleCount, ColBagType}

// OutputRecord is one matched bag line in the report.
type OutputRecord struct {
	// Division is the reference division; never empty.
	Division string `json:"division"`
	// ToOfficeName is the destination office as written in the input.
	ToOfficeName string `json:"to_office_name"`
	// BagNumber is passed through from the input (nil if absent).
	// Canonical numeric text becomes int64 or float64; other text is kept.
	BagNumber interface{} `json:"bag_number"`
	// ArticleCount is passed through from the input (nil if blank), with
	// numeric text converted like BagNumber.
	ArticleCount interface{} `json:"article_count"`
	// BagType is the bag-type tag (PL, SP, Unknown, or empty).
	BagType string `json:"bag_type"`
}

// Values returns the record in OutputColumns order.
func (r OutputRecord) Values() []interface{} {
	return []interface{}{r.Division, r.ToOfficeName, r.BagNumber, r.ArticleCount, r.BagType}
}
