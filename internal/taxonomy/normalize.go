// Package taxonomy turns the nested Course -> Field -> Program -> Career
// documents into flat views. Every function here is pure: no I/O, no
// shared state, same output for the same input.
package taxonomy

import (
	"course-explorer/internal/domain"
	"course-explorer/internal/textutil"
)

// DefaultIcon is used for every derived view; the backend ships no artwork.
const DefaultIcon = "/placeholder.svg"

// DefaultLegacyFieldKeys maps course titles to the per-track keys older
// backends used instead of "fields".
var DefaultLegacyFieldKeys = map[string]string{
	"General Science":      "science_fields",
	"General Arts":         "arts_fields",
	"Business":             "business_fields",
	"Visual Arts":          "visual_arts_fields",
	"Home Economics":       "home_economics_fields",
	"Technical/Vocational": "technical_fields",
}

// Slug derives the course id from its title: lowercase, whitespace runs
// become one hyphen. Slug(Slug(x)) == Slug(x).
func Slug(title string) string {
	return textutil.HyphenateSpace(textutil.Lower(title))
}

// Normalizer converts raw courses into CourseViews.
// The zero value only reads the "fields" mapping.
type Normalizer struct {
	// LegacyFieldKeys resolves a course title to its per-track key when the
	// course has no "fields" mapping. Titles not listed get no careers.
	LegacyFieldKeys map[string]string
}

// Normalize converts one course using the zero Normalizer.
func Normalize(title string, raw domain.RawCourse) domain.CourseView {
	return Normalizer{}.Normalize(title, raw)
}

// Normalize builds the CourseView for title. It never fails: missing
// collections are treated as empty.
func (n Normalizer) Normalize(title string, raw domain.RawCourse) domain.CourseView {
	return domain.CourseView{
		ID:          Slug(title),
		Title:       title,
		Description: raw.Description,
		Subjects:    cloneStrings(raw.Subjects),
		Careers:     careerNames(n.FieldsOf(title, raw)),
		Icon:        DefaultIcon,
	}
}

// FieldsOf returns the fields mapping to walk for the course, with
// repeated field names collapsed to their last value.
func (n Normalizer) FieldsOf(title string, raw domain.RawCourse) domain.Fields {
	if len(raw.Fields) > 0 {
		return raw.Fields.Unique()
	}
	if key, ok := n.LegacyFieldKeys[title]; ok {
		return raw.Legacy[key].Unique()
	}
	return domain.Fields{}
}

// NormalizeAll converts a whole /courses document in document order.
func (n Normalizer) NormalizeAll(doc domain.CourseDocument) []domain.CourseView {
	out := make([]domain.CourseView, 0, len(doc))
	for _, tc := range doc {
		out = append(out, n.Normalize(tc.Title, tc.Course))
	}
	return out
}

// careerNames walks Field -> Program -> Career and keeps each career name
// the first time it is seen.
func careerNames(fields domain.Fields) []string {
	names := newOrderedSet()
	for _, nf := range fields {
		for _, p := range nf.Field.Programs {
			for _, c := range p.Careers {
				names.add(c.CareerName)
			}
		}
	}
	return names.items
}

// orderedSet is an insertion-ordered set of strings.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}, items: []string{}}
}

func (s *orderedSet) has(v string) bool {
	_, ok := s.seen[v]
	return ok
}

func (s *orderedSet) add(v string) {
	if s.has(v) {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

// cloneStrings copies in; a nil input becomes an empty, non-nil slice.
func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
