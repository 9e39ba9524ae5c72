package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"course-explorer/internal/domain"
)

// Service keeps the current catalog and replaces it on refresh. Readers
// always see a complete catalog; a failed refresh keeps the previous one.
type Service struct {
	loader  *Loader
	current atomic.Pointer[Catalog]
	log     *slog.Logger

	// RefreshTimeout bounds each refresh started by Run. Zero means no limit.
	RefreshTimeout time.Duration
	// RetryInterval replaces the refresh interval while no catalog has been
	// loaded yet, when it is shorter.
	RetryInterval time.Duration
}

func NewService(loader *Loader, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{loader: loader, log: log}
}

// Current returns the loaded catalog or domain.ErrUnavailable.
func (s *Service) Current() (*Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, domain.ErrUnavailable
	}
	return c, nil
}

// Ready reports whether a catalog has been loaded.
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

// Refresh loads a new catalog and swaps it in.
func (s *Service) Refresh(ctx context.Context) error {
	c, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}
	prev := s.current.Swap(c)
	if prev != nil {
		if ch := Diff(prev, c); !ch.Empty() {
			s.log.Info("catalog changed",
				slog.Any("added", ch.Added),
				slog.Any("updated", ch.Updated),
				slog.Any("removed", ch.Removed),
			)
		}
	}
	return nil
}

// Run refreshes every interval until ctx is done. A non-positive interval
// returns immediately.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTimer(s.nextRefresh(interval))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.refreshBounded(ctx); err != nil && ctx.Err() == nil {
				s.log.Error("catalog refresh failed", slog.String("error", err.Error()))
			}
			t.Reset(s.nextRefresh(interval))
		}
	}
}

func (s *Service) refreshBounded(ctx context.Context) error {
	if s.RefreshTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RefreshTimeout)
		defer cancel()
	}
	return s.Refresh(ctx)
}

func (s *Service) nextRefresh(interval time.Duration) time.Duration {
	if !s.Ready() && s.RetryInterval > 0 && s.RetryInterval < interval {
		return s.RetryInterval
	}
	return interval
}

// Detail returns the course page for id. Ids missing from the loaded
// catalog are looked up on the source, which returns domain.ErrNotFound
// for unknown courses.
func (s *Service) Detail(ctx context.Context, id string) (Detail, error) {
	c, err := s.Current()
	if err != nil {
		return Detail{}, err
	}
	if d, ok := c.Detail(id); ok {
		return d, nil
	}

	raw, err := s.loader.Source.Course(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Detail{}, err
		}
		return Detail{}, fmt.Errorf("catalog: detail %q: %w", id, err)
	}
	title := raw.Name
	if title == "" {
		title = id
	}
	s.log.Debug("course detail served from source", slog.String("id", id))
	return c.detail(c.normalizer.NewIndex(title, raw)), nil
}
