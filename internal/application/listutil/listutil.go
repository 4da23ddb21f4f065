// Package listutil derives filtered views over fetched collections. All
// functions are pure: the source slice is never mutated and its order is
// preserved in every derived view.
package listutil

import (
	"net/url"
	"strings"

	"portal/internal/domain/student"
)

// SectionAll is the section selector value that matches every section.
const SectionAll = "all"

// View mode constants for the student listing.
const (
	ViewGrid = "grid"
	ViewList = "list"
)

// ListQuery carries the student listing's filter controls.
type ListQuery struct {
	Search  string // free-text query against name and student ID
	Section string // section selector, SectionAll for no filtering
	View    string // ViewGrid or ViewList
}

// ParseListQuery extracts filter controls from URL query values, applying
// defaults for anything absent or unrecognised.
// PRE: none
// POST: Section is non-empty; View is ViewGrid or ViewList
func ParseListQuery(q url.Values) ListQuery {
	lq := ListQuery{
		Search:  q.Get("q"),
		Section: q.Get("section"),
		View:    q.Get("view"),
	}
	if lq.Section == "" {
		lq.Section = SectionAll
	}
	if lq.View != ViewList {
		lq.View = ViewGrid
	}
	return lq
}

// FilterStudents returns the subsequence of students whose name or student
// ID contains the query (case-insensitive) and whose section matches the
// selector. Both conditions must hold; SectionAll passes every section.
// PRE: none
// POST: Result preserves source order; source is not mutated
func FilterStudents(students []student.Student, search, section string) []student.Student {
	query := strings.ToLower(search)
	var out []student.Student
	for _, s := range students {
		matchesSearch := query == "" ||
			strings.Contains(strings.ToLower(s.Name), query) ||
			strings.Contains(strings.ToLower(s.StudentID), query)
		matchesSection := section == SectionAll || s.Section == section
		if matchesSearch && matchesSection {
			out = append(out, s)
		}
	}
	return out
}

// DistinctSections returns the distinct section values present in the
// collection, in first-seen order. The option set is derived from the data,
// not a fixed list, so it tracks whatever the upstream returns.
// PRE: none
// POST: Result contains no duplicates; source is not mutated
func DistinctSections(students []student.Student) []string {
	seen := make(map[string]bool, len(students))
	var out []string
	for _, s := range students {
		if seen[s.Section] {
			continue
		}
		seen[s.Section] = true
		out = append(out, s.Section)
	}
	return out
}
