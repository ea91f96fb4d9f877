package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Spok95/supply-console/internal/infra/metrics"
	"github.com/google/uuid"
)

const maxErrorBody = 4 << 10

// Checker: проверка схемы ответа на границе чтения.
type Checker interface {
	Check() error
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL string, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

// Delete тело ответа не разбирает.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RequestError{Method: method, Endpoint: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(method, resourceOf(path), "error", time.Since(started).Seconds())
		c.log.Warn("api request failed", "method", method, "endpoint", path, "err", err)
		return &RequestError{Method: method, Endpoint: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	c.metrics.ObserveRequest(method, resourceOf(path), strconv.Itoa(resp.StatusCode), time.Since(started).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		re := &RequestError{
			Method:   method,
			Endpoint: path,
			Status:   resp.StatusCode,
			Detail:   errorDetail(raw),
		}
		c.log.Warn("api request rejected", "method", method, "endpoint", path, "status", resp.StatusCode)
		return re
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ParseError{Endpoint: path, Err: err}
	}
	if err := check(out); err != nil {
		return &ParseError{Endpoint: path, Err: err}
	}
	c.log.Debug("api request ok", "method", method, "endpoint", path)
	return nil
}

// errorDetail достаёт "detail" из тела ошибки (формат бэкенда), иначе пусто.
func errorDetail(raw []byte) string {
	var body struct {
		Detail any    `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	switch d := body.Detail.(type) {
	case string:
		return d
	case nil:
		return body.Error
	default:
		b, _ := json.Marshal(d)
		return string(b)
	}
}

// resourceOf: "/api/products/42" -> "products"
func resourceOf(path string) string {
	p := strings.TrimPrefix(path, "/api/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	return p
}
