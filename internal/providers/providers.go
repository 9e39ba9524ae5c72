// Package providers defines where raw taxonomy documents come from.
package providers

import (
	"context"

	"course-explorer/internal/domain"
)

// TaxonomySource serves the three upstream documents plus single-course
// lookups. Course returns domain.ErrNotFound for an unknown id.
type TaxonomySource interface {
	Name() string
	Courses(ctx context.Context) (domain.CourseDocument, error)
	Careers(ctx context.Context) ([]domain.CareerView, error)
	Universities(ctx context.Context) ([]domain.UniversityView, error)
	Course(ctx context.Context, id string) (domain.RawCourse, error)
}
