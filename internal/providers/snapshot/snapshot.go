// Package snapshot serves the taxonomy documents from JSON files on disk,
// for offline runs and tests. A directory holds courses.json, careers.json
// and universities.json in the upstream wire format.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"course-explorer/internal/domain"
	"course-explorer/internal/taxonomy"
)

const (
	CoursesFile      = "courses.json"
	CareersFile      = "careers.json"
	UniversitiesFile = "universities.json"
)

type Source struct {
	Dir string
}

func New(dir string) Source { return Source{Dir: dir} }

func (s Source) Name() string { return "snapshot" }

func (s Source) Courses(ctx context.Context) (domain.CourseDocument, error) {
	var doc domain.CourseDocument
	if err := s.read(ctx, CoursesFile, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s Source) Careers(ctx context.Context) ([]domain.CareerView, error) {
	var out []domain.CareerView
	if err := s.read(ctx, CareersFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s Source) Universities(ctx context.Context) ([]domain.UniversityView, error) {
	var out []domain.UniversityView
	if err := s.read(ctx, UniversitiesFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Course finds the first course whose slug is id.
func (s Source) Course(ctx context.Context, id string) (domain.RawCourse, error) {
	doc, err := s.Courses(ctx)
	if err != nil {
		return domain.RawCourse{}, err
	}
	for _, tc := range doc {
		if taxonomy.Slug(tc.Title) == id {
			raw := tc.Course
			raw.Name = tc.Title
			return raw, nil
		}
	}
	return domain.RawCourse{}, fmt.Errorf("snapshot: course %q: %w", id, domain.ErrNotFound)
}

func (s Source) read(ctx context.Context, name string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(s.Dir, name)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("snapshot: %s: %w", path, domain.ErrUnavailable)
	}
	if err != nil {
		return fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("snapshot: parse %s: %w", path, err)
	}
	return nil
}
