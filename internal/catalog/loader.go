package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"course-explorer/internal/concurrency"
	"course-explorer/internal/domain"
	"course-explorer/internal/providers"
	"course-explorer/internal/query"
	"course-explorer/internal/taxonomy"
)

// Loader fetches the upstream documents and builds a Catalog.
type Loader struct {
	Source         providers.TaxonomySource
	Normalizer     taxonomy.Normalizer
	Table          query.Table
	Workers        int
	IndexCacheSize int
	// DeriveCareers skips GET /careers and derives the list from courses.
	DeriveCareers bool
	Log           *slog.Logger
	Now           func() time.Time
}

// Load fetches the three documents concurrently and normalizes the courses
// on the worker pool.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	if l.Source == nil {
		return nil, errors.New("catalog: no source")
	}
	log := l.logger()
	start := l.now()

	var (
		doc          domain.CourseDocument
		careers      []domain.CareerView
		universities []domain.UniversityView
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		doc, err = l.Source.Courses(gctx)
		if err != nil {
			return fmt.Errorf("fetch courses: %w", err)
		}
		return nil
	})

	if !l.DeriveCareers {
		g.Go(func() error {
			var err error
			careers, err = l.Source.Careers(gctx)
			if err != nil {
				return fmt.Errorf("fetch careers: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		var err error
		universities, err = l.Source.Universities(gctx)
		if err != nil {
			return fmt.Errorf("fetch universities: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	courses, errs := concurrency.ProcessParallel(ctx, doc, concurrency.ParallelOptions{MaxWorkers: l.Workers},
		func(_ context.Context, _ int, tc domain.TitledCourse) (domain.CourseView, error) {
			return l.Normalizer.Normalize(tc.Title, tc.Course), nil
		})
	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog: normalize: %w", errors.Join(errs...))
	}

	if l.DeriveCareers {
		careers = l.Normalizer.DeriveCareers(doc)
	}

	cat, err := New(doc, courses, careers, universities, Options{
		Source:         l.Source.Name(),
		LoadedAt:       l.now(),
		Table:          l.Table,
		Normalizer:     l.Normalizer,
		IndexCacheSize: l.IndexCacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	log.Info("catalog loaded",
		slog.String("source", cat.Source()),
		slog.Int("courses", len(courses)),
		slog.Int("careers", len(cat.careers)),
		slog.Int("universities", len(cat.universities)),
		slog.Bool("derived_careers", l.DeriveCareers),
		slog.Duration("duration", l.now().Sub(start)),
	)
	return cat, nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Log != nil {
		return l.Log
	}
	return slog.Default()
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}
