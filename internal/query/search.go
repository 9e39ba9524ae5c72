package query

import (
	"course-explorer/internal/domain"
	"course-explorer/internal/textutil"
)

// matcher holds a folded search query.
type matcher string

func newMatcher(query string) matcher {
	return matcher(textutil.Fold(query))
}

// match reports whether the query occurs in title, description or any tag.
// The empty query matches everything.
func (m matcher) match(title, description string, tags []string) bool {
	if m == "" {
		return true
	}
	q := string(m)
	if textutil.ContainsFold(title, q) || textutil.ContainsFold(description, q) {
		return true
	}
	for _, t := range tags {
		if textutil.ContainsFold(t, q) {
			return true
		}
	}
	return false
}

// MatchCourse searches the title, description and career names of c.
func MatchCourse(c domain.CourseView, query string) bool {
	return newMatcher(query).match(c.Title, c.Description, c.Careers)
}

// MatchCareer searches the title, description and skills of c.
func MatchCareer(c domain.CareerView, query string) bool {
	return newMatcher(query).match(c.Title, c.Description, c.Skills)
}

// MatchUniversity searches the name, description, location and programs of u.
func MatchUniversity(u domain.UniversityView, query string) bool {
	return newMatcher(query).match(u.Name, u.Description, universityTags(u))
}

func universityTags(u domain.UniversityView) []string {
	return append([]string{u.Location}, u.Programs...)
}

// RelatedTo reports whether c lists course among its related courses.
// Matching is exact; a nil course matches every career.
func RelatedTo(c domain.CareerView, course *string) bool {
	if course == nil {
		return true
	}
	for _, rc := range c.RelatedCourses {
		if rc == *course {
			return true
		}
	}
	return false
}

// Courses returns the courses matching text.
func Courses(courses []domain.CourseView, text string) []domain.CourseView {
	m := newMatcher(text)
	return filter(courses, func(c domain.CourseView) bool {
		return m.match(c.Title, c.Description, c.Careers)
	})
}

// Careers returns the careers matching both the text query and the
// selected course of p.
func Careers(careers []domain.CareerView, p Params) []domain.CareerView {
	m := newMatcher(p.Text)
	return filter(careers, func(c domain.CareerView) bool {
		return m.match(c.Title, c.Description, c.Skills) && RelatedTo(c, p.SelectedCourse)
	})
}

// Universities returns the universities matching text.
func Universities(universities []domain.UniversityView, text string) []domain.UniversityView {
	m := newMatcher(text)
	return filter(universities, func(u domain.UniversityView) bool {
		return m.match(u.Name, u.Description, universityTags(u))
	})
}

// UniqueCourses lists every related course across careers, in order of
// first occurrence. It feeds the course filter buttons.
func UniqueCourses(careers []domain.CareerView) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, c := range careers {
		for _, rc := range c.RelatedCourses {
			if _, ok := seen[rc]; ok {
				continue
			}
			seen[rc] = struct{}{}
			out = append(out, rc)
		}
	}
	return out
}

// filter keeps the items accepted by keep, in input order. The result is
// always a fresh, non-nil slice.
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
