package divreport

import (
	"strings"

	"github.com/ukaji3/divreport-go/pkg/divreport/models"
	"github.com/ukaji3/divreport-go/pkg/divreport/parser"
	"github.com/ukaji3/divreport-go/pkg/divreport/source"
	"go.uber.org/zap"
)

// BagTypeForName infers the bag type from a file name:
// "set1" gives PL, "set2" gives SP, anything else gives "".
func BagTypeForName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "set1"):
		return BagTypePL
	case strings.Contains(lower, "set2"):
		return BagTypeSP
	default:
		return ""
	}
}

// Collect reads every stream of src and tags its rows with a bag type.
// The first unreadable stream aborts the whole collection.
func Collect(src source.Source, opts Options) ([]*models.Table, error) {
	log := opts.logger()

	streams, err := src.Streams()
	if err != nil {
		return nil, err
	}
	if len(streams) == 0 {
		return nil, ErrNoInputFiles
	}

	names := make([]string, len(streams))
	for i, s := range streams {
		names[i] = s.Name
	}
	log.Info("found input files", zap.Int("count", len(streams)), zap.Strings("files", names))

	tables := make([]*models.Table, 0, len(streams))
	for _, s := range streams {
		table, err := readStream(s)
		if err != nil {
			log.Error("input file unreadable", zap.String("file", s.Name), zap.Error(err))
			return nil, err
		}
		TagBagType(table, opts.untagged())
		log.Debug("loaded input file",
			zap.String("file", table.Name),
			zap.Int("rows", len(table.Rows)),
			zap.Strings("columns", table.Columns))
		tables = append(tables, table)
	}

	return tables, nil
}

// TagBagType sets the bag type of every row in table. A tag in the file
// name overrides any bag type column in the file; rows left without a tag
// are handled by policy.
func TagBagType(table *models.Table, policy UntaggedPolicy) {
	tag := BagTypeForName(table.Name)
	if tag == "" && policy != UntaggedUnknown {
		return
	}

	for _, row := range table.Rows {
		switch {
		case tag != "":
			row[models.ColBagType] = tag
		case strings.TrimSpace(parser.CellString(row[models.ColBagType])) == "":
			row[models.ColBagType] = BagTypeUnknown
		}
	}
	table.AddColumn(models.ColBagType)
}
