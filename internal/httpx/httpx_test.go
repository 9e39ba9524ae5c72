package httpx

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippet(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		max      int
		expected string
	}{
		{"short text", 100, "short text"},
		{"", 100, ""},
		{"  trimmed  ", 100, "trimmed"},
		{"long text that should be truncated", 10, "long text ..."},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, snippet([]byte(tc.input), tc.max), "snippet(%q, %d)", tc.input, tc.max)
	}
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	err := &HTTPError{
		Method:     "GET",
		URL:        "http://localhost:5000/api/courses/x",
		StatusCode: 404,
		Body:       []byte("Not Found"),
	}
	assert.Equal(t, "http error: GET http://localhost:5000/api/courses/x status=404 body=Not Found", err.Error())

	wrapped := fmt.Errorf("backend: course: %w", err)
	assert.True(t, IsStatus(wrapped, http.StatusNotFound))
	assert.False(t, IsStatus(wrapped, http.StatusBadGateway))
	assert.False(t, IsStatus(errors.New("plain"), http.StatusNotFound))
}

func TestDefaultRetryConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultRetryConfig()

	assert.Equal(t, 8, cfg.MaxAttempts)
	assert.Equal(t, 700*time.Millisecond, cfg.BaseDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.True(t, cfg.Retry5xx)
	assert.Nil(t, cfg.Logger)
	for _, status := range []int{429, 408, 425, 503, 502, 504} {
		assert.True(t, cfg.RetryStatuses[status], "status %d", status)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	cfg := DefaultRetryConfig()
	for i := 500; i <= 599; i++ {
		assert.True(t, isRetryableStatus(i, cfg), "status %d", i)
	}
	for _, status := range []int{400, 401, 403, 404, 422} {
		assert.False(t, isRetryableStatus(status, cfg), "status %d", status)
	}

	cfg.Retry5xx = false
	assert.False(t, isRetryableStatus(500, cfg))
	assert.True(t, isRetryableStatus(429, cfg), "explicit statuses ignore Retry5xx")
}

func TestIsRetryableNetErr(t *testing.T) {
	t.Parallel()

	assert.False(t, isRetryableNetErr(context.Canceled))
	assert.True(t, isRetryableNetErr(context.DeadlineExceeded))
	assert.True(t, isRetryableNetErr(&timeoutError{}))
	assert.True(t, isRetryableNetErr(errors.New("connection reset by peer")))
	assert.True(t, isRetryableNetErr(errors.New("write: broken pipe")))
	assert.True(t, isRetryableNetErr(errors.New("unexpected EOF")))
	assert.False(t, isRetryableNetErr(errors.New("some other error")))
}

const retryAfterHeader = "Retry-After"

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	resp := &http.Response{Header: http.Header{}}

	resp.Header.Set(retryAfterHeader, "30")
	assert.Equal(t, 30*time.Second, ParseRetryAfter(resp))

	resp.Header.Set(retryAfterHeader, time.Now().Add(-60*time.Second).UTC().Format(http.TimeFormat))
	assert.Zero(t, ParseRetryAfter(resp), "past date")

	resp.Header.Set(retryAfterHeader, "invalid")
	assert.Zero(t, ParseRetryAfter(resp))

	resp.Header.Del(retryAfterHeader)
	assert.Zero(t, ParseRetryAfter(resp))
}

func TestNewGet(t *testing.T) {
	t.Parallel()

	req, err := NewGet("http://localhost:5000/api/courses")(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, AcceptEncoding, req.Header.Get("Accept-Encoding"))

	_, err = NewGet("://bad")(context.Background())
	assert.Error(t, err)
}

func TestReadBody_Encodings(t *testing.T) {
	t.Parallel()

	const payload = `{"General Science":{"description":"d"}}`

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var br bytes.Buffer
	bw := brotli.NewWriter(&br)
	_, err = bw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, bw.Close())

	tests := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{name: "identity", encoding: "", body: []byte(payload)},
		{name: "gzip", encoding: "gzip", body: gz.Bytes()},
		{name: "brotli", encoding: "br", body: br.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := newMockResponse(200, string(tt.body), map[string]string{"Content-Encoding": tt.encoding})
			got, err := readBody(resp)
			require.NoError(t, err)
			assert.Equal(t, payload, string(got))
		})
	}

	_, err = readBody(newMockResponse(200, "x", map[string]string{"Content-Encoding": "zstd"}))
	assert.ErrorContains(t, err, "unsupported content encoding")
}

// timeoutError implements net.Error.
type timeoutError struct{}

func (e *timeoutError) Error() string   { return "timeout error" }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return true }
