package query

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"course-explorer/internal/domain"
)

// BucketAll names the implicit bucket holding every item.
const BucketAll = "all"

//go:embed buckets.yaml
var defaultTableYAML []byte

// Classification is a closed value -> bucket table. Values outside the
// table belong to no named bucket.
type Classification struct {
	order   []string
	members map[string]string
}

// Buckets returns the named buckets in table order.
func (c Classification) Buckets() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// BucketOf returns the bucket value belongs to.
func (c Classification) BucketOf(value string) (string, bool) {
	b, ok := c.members[value]
	return b, ok
}

// Has reports whether bucket is a named bucket or BucketAll.
func (c Classification) Has(bucket string) bool {
	if bucket == BucketAll {
		return true
	}
	for _, b := range c.order {
		if b == bucket {
			return true
		}
	}
	return false
}

// Table holds the course and university classifications.
type Table struct {
	Courses      Classification
	Universities Classification
}

type tableFile struct {
	Courses      []bucketEntry `yaml:"courses"`
	Universities []bucketEntry `yaml:"universities"`
}

type bucketEntry struct {
	Bucket  string   `yaml:"bucket"`
	Members []string `yaml:"members"`
}

// DefaultTable returns the built-in classification.
func DefaultTable() Table {
	t, err := ParseTable(defaultTableYAML)
	if err != nil {
		panic(fmt.Sprintf("query: embedded buckets.yaml: %v", err))
	}
	return t
}

// LoadTable reads a classification table from a YAML file. An empty path
// returns DefaultTable.
func LoadTable(path string) (Table, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultTable(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("query: read table %s: %w", path, err)
	}
	t, err := ParseTable(b)
	if err != nil {
		return Table{}, fmt.Errorf("query: %s: %w", path, err)
	}
	return t, nil
}

// ParseTable decodes a classification table. A value may belong to at
// most one bucket and bucket names must be unique.
func ParseTable(b []byte) (Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Table{}, fmt.Errorf("parse table: %w", err)
	}
	courses, err := newClassification(f.Courses)
	if err != nil {
		return Table{}, fmt.Errorf("courses: %w", err)
	}
	universities, err := newClassification(f.Universities)
	if err != nil {
		return Table{}, fmt.Errorf("universities: %w", err)
	}
	return Table{Courses: courses, Universities: universities}, nil
}

func newClassification(entries []bucketEntry) (Classification, error) {
	c := Classification{order: []string{}, members: map[string]string{}}
	seen := map[string]bool{}
	for _, e := range entries {
		name := strings.TrimSpace(e.Bucket)
		if name == "" {
			return Classification{}, errors.New("bucket without a name")
		}
		if name == BucketAll {
			return Classification{}, fmt.Errorf("bucket name %q is reserved", BucketAll)
		}
		if seen[name] {
			return Classification{}, fmt.Errorf("duplicate bucket %q", name)
		}
		seen[name] = true
		c.order = append(c.order, name)
		for _, m := range e.Members {
			if prev, ok := c.members[m]; ok {
				return Classification{}, fmt.Errorf("%q is in both %q and %q", m, prev, name)
			}
			c.members[m] = name
		}
	}
	return c, nil
}

// Bucket returns the items of items whose key falls in bucket, in input
// order. BucketAll returns every item.
func Bucket[T any](items []T, c Classification, bucket string, key func(T) string) []T {
	if bucket == BucketAll {
		return filter(items, func(T) bool { return true })
	}
	return filter(items, func(it T) bool {
		b, ok := c.BucketOf(key(it))
		return ok && b == bucket
	})
}

// Group splits items into every named bucket of c. Buckets with no items
// map to an empty slice.
func Group[T any](items []T, c Classification, key func(T) string) map[string][]T {
	out := make(map[string][]T, len(c.order))
	for _, b := range c.order {
		out[b] = []T{}
	}
	for _, it := range items {
		if b, ok := c.BucketOf(key(it)); ok {
			out[b] = append(out[b], it)
		}
	}
	return out
}

// CourseKey classifies courses by title.
func CourseKey(c domain.CourseView) string { return c.Title }

// UniversityKey classifies universities by type.
func UniversityKey(u domain.UniversityView) string { return string(u.Type) }

// CourseBuckets groups courses by the course classification of t.
func (t Table) CourseBuckets(courses []domain.CourseView) map[string][]domain.CourseView {
	return Group(courses, t.Courses, CourseKey)
}

// UniversityBuckets groups universities by the university classification of t.
func (t Table) UniversityBuckets(universities []domain.UniversityView) map[string][]domain.UniversityView {
	return Group(universities, t.Universities, UniversityKey)
}
