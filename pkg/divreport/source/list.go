package source

import (
	"fmt"
	"path/filepath"

	"github.com/ukaji3/divreport-go/pkg/divreport/parser"
)

// List is a caller-supplied set of streams, such as browser uploads.
type List []Stream

// Streams returns the list in order. Every name must carry a supported extension.
func (l List) Streams() ([]Stream, error) {
	for _, s := range l {
		if !parser.IsSupported(s.Name) {
			return nil, fmt.Errorf("%s: %w: %q", s.Name, parser.ErrUnsupportedFormat, filepath.Ext(s.Name))
		}
	}
	return append([]Stream(nil), l...), nil
}
