// Package divreport maps bag manifest records to divisions and builds the
// PL/SP/Summary division report.
package divreport

import (
	"fmt"

	"go.uber.org/zap"
)

// Default file names used by the batch run.
const (
	DefaultReferenceFile = "division wis.xlsx"
	DefaultOutputFile    = "division_mapped_output.xlsx"
)

// Bag type tags.
const (
	BagTypePL      = "PL"
	BagTypeSP      = "SP"
	BagTypeUnknown = "Unknown"
)

// UntaggedPolicy decides the bag type of rows whose file name carries no tag.
type UntaggedPolicy string

const (
	// UntaggedBlank leaves the bag type empty; such rows appear in neither
	// line-item sheet nor the summary.
	UntaggedBlank UntaggedPolicy = "blank"
	// UntaggedUnknown tags rows "Unknown"; they are summed in an extra
	// summary column.
	UntaggedUnknown UntaggedPolicy = "unknown"
)

// UnmatchedPolicy decides what happens to rows with no reference division.
type UnmatchedPolicy string

const (
	// UnmatchedDrop silently discards unmatched rows.
	UnmatchedDrop UnmatchedPolicy = "drop"
	// UnmatchedFail aborts the run with an UnmatchedError.
	UnmatchedFail UnmatchedPolicy = "fail"
)

// Options configures a report run.
type Options struct {
	// Untagged selects the bag type of untagged rows. Defaults to UntaggedBlank.
	Untagged UntaggedPolicy
	// Unmatched selects the unmatched-row policy. Defaults to UnmatchedDrop.
	Unmatched UnmatchedPolicy
	// Logger receives progress messages. Nil discards them.
	Logger *zap.Logger
}

// DefaultOptions returns the batch defaults: untagged rows stay blank and unmatched rows are dropped.
func DefaultOptions() Options {
	return Options{
		Untagged:  UntaggedBlank,
		Unmatched: UnmatchedDrop,
	}
}

// ParseUntaggedPolicy parses "blank" or "unknown".
func ParseUntaggedPolicy(s string) (UntaggedPolicy, error) {
	switch UntaggedPolicy(s) {
	case UntaggedBlank, UntaggedUnknown:
		return UntaggedPolicy(s), nil
	default:
		return "", fmt.Errorf("invalid untagged policy: %s (must be blank or unknown)", s)
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) untagged() UntaggedPolicy {
	if o.Untagged == "" {
		return UntaggedBlank
	}
	return o.Untagged
}

func (o Options) strict() bool {
	return o.Unmatched == UnmatchedFail
}
