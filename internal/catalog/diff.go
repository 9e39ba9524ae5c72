package catalog

import (
	"slices"

	"course-explorer/internal/domain"
)

// Changes lists the course ids that differ between two catalogs.
type Changes struct {
	Added   []string
	Updated []string
	Removed []string
}

// Empty reports whether nothing changed.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}

// Diff compares the courses of prev and next by id. A nil prev reports every
// course of next as added. Ids are listed in the order of the catalog they
// come from.
func Diff(prev, next *Catalog) Changes {
	ch := Changes{Added: []string{}, Updated: []string{}, Removed: []string{}}
	if next == nil {
		return ch
	}

	before := map[string]domain.CourseView{}
	if prev != nil {
		for _, c := range prev.courses {
			if _, dup := before[c.ID]; !dup {
				before[c.ID] = c
			}
		}
	}

	after := map[string]bool{}
	for _, c := range next.courses {
		if after[c.ID] {
			continue
		}
		after[c.ID] = true
		old, ok := before[c.ID]
		if !ok {
			ch.Added = append(ch.Added, c.ID)
			continue
		}
		if courseChanged(old, c) {
			ch.Updated = append(ch.Updated, c.ID)
		}
	}

	if prev != nil {
		seen := map[string]bool{}
		for _, c := range prev.courses {
			if after[c.ID] || seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			ch.Removed = append(ch.Removed, c.ID)
		}
	}
	return ch
}

func courseChanged(a, b domain.CourseView) bool {
	return a.Title != b.Title ||
		a.Description != b.Description ||
		!slices.Equal(a.Subjects, b.Subjects) ||
		!slices.Equal(a.Careers, b.Careers)
}
