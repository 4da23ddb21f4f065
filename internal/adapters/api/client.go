// Package api is the client for the upstream attendance REST API. The API
// is an opaque collaborator: the portal forwards credentials and renders
// whatever records come back.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"portal/internal/adapters/http/perf"
	"portal/internal/domain/course"
	domainSession "portal/internal/domain/session"
	"portal/internal/domain/student"
)

// DefaultTimeout bounds every upstream call so a request that never
// resolves cannot pin a screen in its submitting state forever.
const DefaultTimeout = 15 * time.Second

// Error is an upstream failure. Message is safe to show to the user: it is
// either the server's own {"error": ...} text or the caller's generic
// fallback. Transport failures and unparsable bodies carry only the
// fallback.
type Error struct {
	StatusCode int    // 0 for transport-level failures
	Message    string // user-visible message
	cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("upstream: %s (status %d): %v", e.Message, e.StatusCode, e.cause)
	}
	return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.StatusCode)
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error { return e.cause }

// Client calls the upstream attendance API.
type Client struct {
	baseURL   string
	http      *http.Client
	collector *perf.Collector
}

// NewClient creates a client for the given base URL.
// PRE: baseURL is non-empty, without a trailing slash
// POST: Returns a ready client with the default timeout applied
func NewClient(baseURL string, collector *perf.Collector) *Client {
	return &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: DefaultTimeout},
		collector: collector,
	}
}

// errorBody is the upstream error response shape.
type errorBody struct {
	Error string `json:"error"`
}

// do runs one request and decodes a successful JSON body into out.
// Non-2xx responses become an *Error carrying the server's message when one
// is present, otherwise fallback. Transport failures become an *Error with
// status 0 and the fallback message.
func (c *Client) do(ctx context.Context, method, endpoint string, payload any, out any, fallback string) error {
	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return fmt.Errorf("encode request for %s: %w", endpoint, err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.record(method, endpoint, resp, start)
	if err != nil {
		slog.Warn("upstream_unreachable", "method", method, "endpoint", endpoint, "error", err)
		return &Error{Message: fallback, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		msg := fallback
		if decodeErr := json.NewDecoder(resp.Body).Decode(&eb); decodeErr == nil && eb.Error != "" {
			msg = eb.Error
		}
		slog.Info("upstream_error", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "message", msg)
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.Warn("upstream_bad_body", "method", method, "endpoint", endpoint, "error", err)
		return &Error{StatusCode: resp.StatusCode, Message: fallback, cause: err}
	}
	return nil
}

// record stores an upstream timing entry, ignoring nil collectors.
func (c *Client) record(method, endpoint string, resp *http.Response, start time.Time) {
	if c.collector == nil {
		return
	}
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.collector.Record(perf.Entry{
		Kind:       perf.KindUpstream,
		Path:       method + " " + endpoint,
		StatusCode: status,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Timestamp:  start,
	})
}

// Login posts credentials to the given endpoint and extracts the session
// record from the response field named by envelopeKey.
// PRE: payload carries the completed login form
// POST: Returns the record verbatim, or an *Error with a user-visible message
func (c *Client) Login(ctx context.Context, endpoint string, payload map[string]string, envelopeKey string) (domainSession.Record, error) {
	var envelope map[string]domainSession.Record
	if err := c.do(ctx, http.MethodPost, endpoint, payload, &envelope, "Login failed"); err != nil {
		return nil, err
	}
	rec, ok := envelope[envelopeKey]
	if !ok || rec == nil {
		return nil, &Error{StatusCode: http.StatusOK, Message: "Login failed"}
	}
	return rec, nil
}

// Signup posts a registration payload. A successful signup returns no body
// of interest and creates no session.
// PRE: payload carries the completed signup form minus the confirm field
// POST: nil on success, or an *Error with a user-visible message
func (c *Client) Signup(ctx context.Context, endpoint string, payload map[string]string) error {
	return c.do(ctx, http.MethodPost, endpoint, payload, nil, "Registration failed")
}

// studentsBody is the faculty student-listing response shape.
type studentsBody struct {
	Students []student.Student `json:"students"`
}

// Students fetches the student listing for a faculty member.
// PRE: facultyID is non-empty
// POST: Returns the listing in upstream order (possibly empty, never nil)
func (c *Client) Students(ctx context.Context, facultyID string) ([]student.Student, error) {
	var body studentsBody
	endpoint := "/api/faculty/students/" + url.PathEscape(facultyID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &body, "Failed to fetch students"); err != nil {
		return nil, err
	}
	if body.Students == nil {
		return []student.Student{}, nil
	}
	return body.Students, nil
}

// coursesBody is the section course-listing response shape.
type coursesBody struct {
	Courses []course.Course `json:"courses"`
}

// Courses fetches the course listing for a section.
// PRE: section is non-empty
// POST: Returns the listing in upstream order (possibly empty, never nil)
func (c *Client) Courses(ctx context.Context, section string) ([]course.Course, error) {
	var body coursesBody
	endpoint := "/api/courses/" + url.PathEscape(section)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &body, "Error loading courses. Please try again later."); err != nil {
		return nil, err
	}
	if body.Courses == nil {
		return []course.Course{}, nil
	}
	return body.Courses, nil
}

// UserMessage returns the user-visible message for an upstream error, or
// the fallback for any other error value.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallback
}
