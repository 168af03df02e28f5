package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ukaji3/divreport-go/pkg/divreport/parser"
)

// Dir scans one directory (non-recursively) for input files.
type Dir struct {
	// Path is the directory to scan.
	Path string
	// Exclude lists file names skipped by exact match, such as the
	// reference file and the report output.
	Exclude []string
}

// Streams returns every regular file in d.Path with a supported extension,
// sorted by name. Office lock files ("~$" prefix) are skipped.
func (d Dir) Streams() ([]Stream, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", d.Path, err)
	}

	excluded := make(map[string]bool, len(d.Exclude))
	for _, name := range d.Exclude {
		excluded[name] = true
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if excluded[name] || strings.HasPrefix(name, "~$") {
			continue
		}
		if parser.IsSupported(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	streams := make([]Stream, 0, len(names))
	for _, name := range names {
		streams = append(streams, FromFile(filepath.Join(d.Path, name)))
	}
	return streams, nil
}
