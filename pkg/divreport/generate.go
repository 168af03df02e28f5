package divreport

import (
	"strings"

	"github.com/ukaji3/divreport-go/pkg/divreport/models"
	"github.com/ukaji3/divreport-go/pkg/divreport/source"
	"go.uber.org/zap"
)

// Generate runs the report pipeline over the inputs of src, mapping
// offices to divisions through ref. Any failure aborts the run and no
// partial report is returned.
func Generate(ref *models.Reference, src source.Source, opts Options) (*models.Report, error) {
	if ref == nil {
		return nil, ErrNilReference
	}
	log := opts.logger()

	if len(ref.Duplicates) > 0 {
		log.Warn("duplicate office names in reference, first occurrence wins",
			zap.String("reference", ref.Name),
			zap.Strings("offices", ref.Duplicates))
	}

	tables, err := Collect(src, opts)
	if err != nil {
		return nil, err
	}

	combined, err := Combine(tables)
	if err != nil {
		return nil, err
	}
	log.Info("combined input rows", zap.Int("rows", len(combined.Rows)))

	matched, err := Join(combined, ref, opts)
	if err != nil {
		return nil, err
	}
	log.Info("matched rows after removing unmatched offices",
		zap.Int("rows", len(matched)),
		zap.Int("dropped", len(combined.Rows)-len(matched)))

	records := Project(matched)
	pl, sp := Split(records)
	summary, invalid := Summarize(records)
	if invalid > 0 {
		log.Warn("non-numeric article counts treated as zero", zap.Int("rows", invalid))
	}

	report := &models.Report{
		Records: records,
		PL:      pl,
		SP:      sp,
		Summary: summary,
		Stats: models.Stats{
			Files:         len(tables),
			CombinedRows:  len(combined.Rows),
			MatchedRows:   len(matched),
			DroppedRows:   len(combined.Rows) - len(matched),
			UntaggedRows:  countUntagged(records),
			InvalidCounts: invalid,
		},
	}

	log.Info("report built",
		zap.Int("pl_rows", len(pl)),
		zap.Int("sp_rows", len(sp)),
		zap.Int("divisions", len(summary.Rows)))

	return report, nil
}

func countUntagged(records []models.OutputRecord) int {
	n := 0
	for _, r := range records {
		if !strings.EqualFold(r.BagType, BagTypePL) && !strings.EqualFold(r.BagType, BagTypeSP) {
			n++
		}
	}
	return n
}
