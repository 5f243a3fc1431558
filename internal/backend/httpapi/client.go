// Package httpapi implements the service.Service interface over the task API's HTTP/JSON endpoints.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskman/internal/metrics"
	"taskman/internal/service"
)

const (
	// DefaultTimeout is used when the caller does not set one.
	DefaultTimeout = 5 * time.Second

	// RequestIDHeader carries a per-request id for server-side correlation.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 64 << 10
)

// Client implements service.Service against the task API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every API call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListTasks returns all tasks, optionally scoped to a storage partition.
func (c *Client) ListTasks(ctx context.Context, storageType string) ([]service.Task, error) {
	q := url.Values{}
	if storageType != "" {
		q.Set("storage_type", storageType)
	}

	var tasks []service.Task
	if err := c.doJSON(ctx, "load tasks", http.MethodGet, "/tasks", "/tasks", q, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// GetTask returns one task from the given partition.
func (c *Client) GetTask(ctx context.Context, id, storageType string) (service.Task, error) {
	var task service.Task
	err := c.doJSON(ctx, "get task", http.MethodGet, "/tasks/"+url.PathEscape(id), "/tasks/{id}",
		storageQuery(storageType), nil, &task)
	if err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, req service.CreateRequest) (service.Task, error) {
	var task service.Task
	if err := c.doJSON(ctx, "add task", http.MethodPost, "/tasks/add", "/tasks/add", nil, req, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask sends a partial update. The storage type goes in both the query and the body.
func (c *Client) UpdateTask(ctx context.Context, id string, req service.UpdateRequest) (service.Task, error) {
	var task service.Task
	err := c.doJSON(ctx, "update task", http.MethodPut, "/tasks/update/"+url.PathEscape(id), "/tasks/update/{id}",
		storageQuery(req.StorageType), req, &task)
	if err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task. The confirmation body is discarded.
func (c *Client) DeleteTask(ctx context.Context, id, storageType string) error {
	return c.doJSON(ctx, "delete task", http.MethodDelete, "/tasks/"+url.PathEscape(id), "/tasks/{id}",
		storageQuery(storageType), nil, nil)
}

// ExportTasks opens the export stream. The timeout keeps running until the stream is closed.
func (c *Client) ExportTasks(ctx context.Context, req service.ExportRequest) (io.ReadCloser, error) {
	q := url.Values{}
	q.Set("filename", req.Filename)
	q.Set("format", req.Format)
	if req.StorageType != "" {
		q.Set("storage_type", req.StorageType)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	resp, err := c.send(ctx, "export tasks", http.MethodGet, "/tasks/export", "/tasks/export", q, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	return &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, nil
}

// doJSON performs a request bounded by the client timeout and decodes the response into out.
func (c *Client) doJSON(ctx context.Context, op, method, path, route string, q url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.send(ctx, op, method, path, route, q, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to %s: invalid response: %w", op, wrapError(err))
	}
	return nil
}

// send issues the request and converts transport failures and non-2xx statuses to errors.
// On success the caller owns resp.Body.
func (c *Client) send(ctx context.Context, op, method, path, route string, q url.Values, body any) (*http.Response, error) {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to %s: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	log := c.log.With(zap.String("op", op), zap.String("request_id", requestID))
	log.Debug("Sending request", zap.String("method", method), zap.String("url", target))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		metrics.RecordAPIRequest(method, route, "error", latency)
		log.Debug("Request failed", zap.Error(err), zap.Duration("latency", latency))
		return nil, fmt.Errorf("failed to %s: %w", op, wrapError(err))
	}
	metrics.RecordAPIRequest(method, route, strconv.Itoa(resp.StatusCode), latency)
	log.Debug("Response received", zap.Int("status", resp.StatusCode), zap.Duration("latency", latency))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &service.APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       errorBody(resp.Body),
		}
	}
	return resp, nil
}

// errorBody returns the server's JSON error verbatim, or "{}" if it is absent or not JSON.
func errorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return "{}"
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || !json.Valid(data) {
		return "{}"
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return "{}"
	}
	return compact.String()
}

func storageQuery(storageType string) url.Values {
	q := url.Values{}
	if storageType != "" {
		q.Set("storage_type", storageType)
	}
	return q
}

// wrapError replaces transport errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.New("request timed out")
	}
	if errors.Is(err, context.Canceled) {
		return errors.New("cancelled")
	}
	return err
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *cancelOnClose) Close() error {
	err := r.ReadCloser.Close()
	r.cancel()
	return err
}
