// Package backend reads the taxonomy documents from the course REST backend.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"course-explorer/internal/domain"
	"course-explorer/internal/httpx"
)

// DefaultBaseURL is where the backend listens during local development.
const DefaultBaseURL = "http://localhost:5000/api"

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Retry   httpx.RetryConfig
}

// New returns a client for baseURL. A non-positive timeout falls back to two
// minutes per request.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	tr := &http.Transport{
		MaxIdleConns:        32,
		MaxIdleConnsPerHost: 32,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		Retry: httpx.DefaultRetryConfig(),
	}
}

// WithLogger routes retry logs to log.
func (c *Client) WithLogger(log *slog.Logger) *Client {
	c.Retry.Logger = log
	return c
}

func (c *Client) Name() string { return "backend" }

func (c *Client) Courses(ctx context.Context) (domain.CourseDocument, error) {
	var doc domain.CourseDocument
	if err := c.get(ctx, "/courses", &doc); err != nil {
		return nil, fmt.Errorf("backend: courses: %w", err)
	}
	return doc, nil
}

func (c *Client) Careers(ctx context.Context) ([]domain.CareerView, error) {
	var out []domain.CareerView
	if err := c.get(ctx, "/careers", &out); err != nil {
		return nil, fmt.Errorf("backend: careers: %w", err)
	}
	return out, nil
}

func (c *Client) Universities(ctx context.Context) ([]domain.UniversityView, error) {
	var out []domain.UniversityView
	if err := c.get(ctx, "/universities", &out); err != nil {
		return nil, fmt.Errorf("backend: universities: %w", err)
	}
	return out, nil
}

// Course fetches one course by id. A 404 maps to domain.ErrNotFound.
func (c *Client) Course(ctx context.Context, id string) (domain.RawCourse, error) {
	if strings.TrimSpace(id) == "" {
		return domain.RawCourse{}, fmt.Errorf("backend: course: empty id: %w", domain.ErrNotFound)
	}
	var out domain.RawCourse
	err := c.get(ctx, "/courses/"+url.PathEscape(id), &out)
	if httpx.IsStatus(err, http.StatusNotFound) {
		return domain.RawCourse{}, fmt.Errorf("backend: course %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.RawCourse{}, fmt.Errorf("backend: course %q: %w", id, err)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.BaseURL == "" {
		return errors.New("missing base url")
	}
	return httpx.DoJSON(ctx, c.HTTP, httpx.NewGet(c.BaseURL+path), out, c.Retry)
}
