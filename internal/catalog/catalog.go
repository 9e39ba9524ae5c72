// Package catalog holds one loaded, normalized copy of the taxonomy
// documents and answers page-level questions over it.
package catalog

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"course-explorer/internal/domain"
	"course-explorer/internal/query"
	"course-explorer/internal/taxonomy"
)

// HomeLimit is how many items of each collection the home page shows.
const HomeLimit = 3

// Catalog is immutable once built. Index caches per-course indexes and is
// safe for concurrent use.
type Catalog struct {
	source        string
	loadedAt      time.Time
	courses       []domain.CourseView
	careers       []domain.CareerView
	universities  []domain.UniversityView
	uniqueCourses []string
	raw           map[string]domain.TitledCourse
	table         query.Table
	normalizer    taxonomy.Normalizer
	indexes       *lru.Cache[string, *taxonomy.Index]
}

// Options configures New.
type Options struct {
	Source         string
	LoadedAt       time.Time
	Table          query.Table
	Normalizer     taxonomy.Normalizer
	IndexCacheSize int
}

// Home is the landing page preview.
type Home struct {
	Courses      []domain.CourseView     `json:"courses"`
	Careers      []domain.CareerView     `json:"careers"`
	Universities []domain.UniversityView `json:"universities"`
}

// Detail is everything the course page renders.
type Detail struct {
	Course   domain.CourseView              `json:"course"`
	Subjects []taxonomy.SubjectSummary      `json:"subjects"`
	Careers  []domain.FlattenedCareerRecord `json:"careers"`
	Overview taxonomy.Overview              `json:"overview"`
}

// New assembles a catalog from already normalized courses. doc must be the
// document the courses were normalized from, in the same order. When two
// titles share a slug the first one owns the id.
func New(doc domain.CourseDocument, courses []domain.CourseView, careers []domain.CareerView, universities []domain.UniversityView, opts Options) (*Catalog, error) {
	size := opts.IndexCacheSize
	if size <= 0 {
		size = 64
	}
	cache, err := lru.New[string, *taxonomy.Index](size)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]domain.TitledCourse, len(doc))
	for i, tc := range doc {
		id := courses[i].ID
		if _, dup := raw[id]; dup {
			continue
		}
		raw[id] = tc
	}

	if careers == nil {
		careers = []domain.CareerView{}
	}
	if universities == nil {
		universities = []domain.UniversityView{}
	}

	return &Catalog{
		source:        opts.Source,
		loadedAt:      opts.LoadedAt,
		courses:       courses,
		careers:       careers,
		universities:  universities,
		uniqueCourses: query.UniqueCourses(careers),
		raw:           raw,
		table:         opts.Table,
		normalizer:    opts.Normalizer,
		indexes:       cache,
	}, nil
}

func (c *Catalog) Source() string      { return c.source }
func (c *Catalog) LoadedAt() time.Time { return c.loadedAt }
func (c *Catalog) Table() query.Table  { return c.table }

// Courses lists the courses matching text, optionally narrowed to bucket.
func (c *Catalog) Courses(text, bucket string) []domain.CourseView {
	out := query.Courses(c.courses, text)
	if bucket != "" {
		out = query.Bucket(out, c.table.Courses, bucket, query.CourseKey)
	}
	return out
}

// CourseBuckets groups every course by the course classification.
func (c *Catalog) CourseBuckets() map[string][]domain.CourseView {
	return c.table.CourseBuckets(c.courses)
}

// Careers lists the careers matching p.
func (c *Catalog) Careers(p query.Params) []domain.CareerView {
	return query.Careers(c.careers, p)
}

// UniqueCourses lists the course titles referenced by any career.
func (c *Catalog) UniqueCourses() []string {
	out := make([]string, len(c.uniqueCourses))
	copy(out, c.uniqueCourses)
	return out
}

// Universities lists the universities matching text, optionally narrowed to
// bucket.
func (c *Catalog) Universities(text, bucket string) []domain.UniversityView {
	out := query.Universities(c.universities, text)
	if bucket != "" {
		out = query.Bucket(out, c.table.Universities, bucket, query.UniversityKey)
	}
	return out
}

func (c *Catalog) Home() Home {
	return Home{
		Courses:      head(c.courses, HomeLimit),
		Careers:      head(c.careers, HomeLimit),
		Universities: head(c.universities, HomeLimit),
	}
}

// Course returns the view with the given id.
func (c *Catalog) Course(id string) (domain.CourseView, bool) {
	for _, v := range c.courses {
		if v.ID == id {
			return v, true
		}
	}
	return domain.CourseView{}, false
}

// Index returns the index of the course with the given id, building and
// caching it on first use.
func (c *Catalog) Index(id string) (*taxonomy.Index, bool) {
	if idx, ok := c.indexes.Get(id); ok {
		return idx, true
	}
	tc, ok := c.raw[id]
	if !ok {
		return nil, false
	}
	idx := c.normalizer.NewIndex(tc.Title, tc.Course)
	c.indexes.Add(id, idx)
	return idx, true
}

// Detail builds the course page for id.
func (c *Catalog) Detail(id string) (Detail, bool) {
	idx, ok := c.Index(id)
	if !ok {
		return Detail{}, false
	}
	return c.detail(idx), true
}

func (c *Catalog) detail(idx *taxonomy.Index) Detail {
	return Detail{
		Course:   c.normalizer.Normalize(idx.Title(), idx.Raw()),
		Subjects: idx.SubjectSummaries(),
		Careers:  idx.AllCareers(),
		Overview: idx.Overview(),
	}
}

func head[T any](items []T, n int) []T {
	n = min(n, len(items))
	out := make([]T, n)
	copy(out, items[:n])
	return out
}
