package parser

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeHeader trims and lowercases a column name.
func NormalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// NormalizeKey folds an office name into its lookup key: NFC form,
// whitespace runs collapsed to one space, case folded.
func NormalizeKey(s string) string {
	s = strings.Join(strings.Fields(norm.NFC.String(s)), " ")
	return cases.Fold().String(s)
}
