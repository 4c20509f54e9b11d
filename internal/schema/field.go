// Package schema builds ClickHouse onboarding documents from the
// field overview a collector reports: a CREATE TABLE schema and a
// matching output plugin configuration.
package schema

import (
	"fmt"
	"strings"
)

// Field is one discovered flow record field and the ClickHouse column
// it becomes.
type Field struct {
	Name               string
	DataType           string
	Note               string
	AliasOf            []string
	InPercentOfRecords float64
}

// Is reports whether the field carries the given name, either as its
// own name or as one of the names it supersedes.
func (f Field) Is(name string) bool {
	if f.Name == name {
		return true
	}
	for _, alias := range f.AliasOf {
		if alias == name {
			return true
		}
	}
	return false
}

// Comment renders the per-column annotation used in both documents.
func (f Field) Comment() string {
	var b strings.Builder
	if f.Note != "" {
		b.WriteString(f.Note)
		b.WriteString("; ")
	}
	fmt.Fprintf(&b, "in %.2f%% of records", f.InPercentOfRecords)
	if len(f.AliasOf) > 0 {
		b.WriteString("; alias of ")
		b.WriteString(strings.Join(f.AliasOf, "/"))
	}
	return b.String()
}

// FindField returns the first field matching any of the names, trying
// the names in priority order.
func FindField(fields []Field, anyOfNames []string) *Field {
	for _, name := range anyOfNames {
		for i := range fields {
			if fields[i].Is(name) {
				return &fields[i]
			}
		}
	}
	return nil
}

// ReplaceFields merges every field matching one of the names into the
// replacement, which takes the earliest position of the merged fields
// and the sum of their record percentages. Without a match the field
// list is returned unchanged.
func ReplaceFields(fields []Field, names []string, replacement Field) []Field {
	var indices []int
	for _, name := range names {
		for i := range fields {
			if fields[i].Is(name) {
				indices = append(indices, i)
				break
			}
		}
	}
	if len(indices) == 0 {
		return fields
	}

	minIndex := indices[0]
	percent := 0.0
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < minIndex {
			minIndex = i
		}
		percent += fields[i].InPercentOfRecords
		drop[i] = true
	}
	replacement.InPercentOfRecords = percent

	merged := make([]Field, 0, len(fields))
	for i, field := range fields {
		if i == minIndex {
			merged = append(merged, replacement)
		}
		if !drop[i] {
			merged = append(merged, field)
		}
	}
	return merged
}
