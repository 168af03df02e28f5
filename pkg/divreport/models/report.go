package models

// Stats counts rows through each pipeline stage.
type Stats struct {
	// Files is the number of input files loaded.
	Files int `json:"files"`
	// CombinedRows is the row count after concatenation.
	CombinedRows int `json:"combined_rows"`
	// MatchedRows is the row count after unmatched offices are dropped.
	MatchedRows int `json:"matched_rows"`
	// DroppedRows is CombinedRows minus MatchedRows.
	DroppedRows int `json:"dropped_rows"`
	// UntaggedRows counts output rows with no PL or SP tag.
	UntaggedRows int `json:"untagged_rows"`
	// InvalidCounts counts non-numeric article counts treated as zero.
	InvalidCounts int `json:"invalid_counts"`
}

// Report is the complete result of one run.
type Report struct {
	// Records holds every output record sorted by division.
	Records []OutputRecord `json:"records"`
	// PL holds the PL-tagged records.
	PL []OutputRecord `json:"pl"`
	// SP holds the SP-tagged records.
	SP []OutputRecord `json:"sp"`
	// Summary is the division by bag-type totals.
	Summary Summary `json:"summary"`
	// Stats describes the run.
	Stats Stats `json:"stats"`
}
