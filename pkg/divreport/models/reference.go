package models

// ReferenceRecord maps one office to its division.
type ReferenceRecord struct {
	// OfficeName is the office name as written in the reference file.
	OfficeName string `json:"office_name"`
	// Division is the organizational division of the office.
	Division string `json:"division"`
}

// Reference is the office-to-division lookup table for one run.
type Reference struct {
	// Name is the reference file name.
	Name string `json:"name"`
	// Records holds the reference rows in file order.
	Records []ReferenceRecord `json:"records"`
	// Duplicates lists office names that appeared more than once.
	// Lookups resolve to the first occurrence.
	Duplicates []string `json:"duplicates,omitempty"`

	index map[string]int
}

// NewReference builds a Reference keyed by key(OfficeName).
// Records with an empty key are kept in Records but are not indexed.
func NewReference(name string, records []ReferenceRecord, key func(string) string) *Reference {
	ref := &Reference{
		Name:    name,
		Records: records,
		index:   make(map[string]int, len(records)),
	}
	seen := make(map[string]bool)
	for i, rec := range records {
		k := key(rec.OfficeName)
		if k == "" {
			continue
		}
		if _, ok := ref.index[k]; ok {
			if !seen[k] {
				ref.Duplicates = append(ref.Duplicates, rec.OfficeName)
				seen[k] = true
			}
			continue
		}
		ref.index[k] = i
	}
	return ref
}

// Lookup returns the reference record indexed under the normalized key.
func (r *Reference) Lookup(key string) (ReferenceRecord, bool) {
	i, ok := r.index[key]
	if !ok {
		return ReferenceRecord{}, false
	}
	return r.Records[i], true
}

// Len returns the number of indexed office names.
func (r *Reference) Len() int {
	return len(r.index)
}
