package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

// Observer records backend calls (metrics.Collector satisfies it).
type Observer interface {
	ObserveBackend(method string, status int, elapsed time.Duration)
}

// Client talks JSON to the brewery REST backend on behalf of one browser
// session at a time; the session's credentials travel in the context.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *slog.Logger
	observer Observer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type credentialsKey struct{}

// WithCredentials attaches the backend session cookies that every request
// made with ctx must carry.
func WithCredentials(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, credentialsKey{}, cookies)
}

func credentials(ctx context.Context) []*http.Cookie {
	cookies, _ := ctx.Value(credentialsKey{}).([]*http.Cookie)
	return cookies
}

// response is what do hands back besides the decoded body.
type response struct {
	status  int
	cookies []*http.Cookie
}

// Get issues a GET and decodes the JSON body into a new T. A 204 yields nil.
func Get[T any](ctx context.Context, c *Client, endpoint string, params any) (*T, error) {
	var out T
	res, err := c.do(ctx, http.MethodGet, endpoint, params, nil, &out)
	return decoded(res, &out, err)
}

func Post[T any](ctx context.Context, c *Client, endpoint string, body any) (*T, error) {
	var out T
	res, err := c.do(ctx, http.MethodPost, endpoint, nil, body, &out)
	return decoded(res, &out, err)
}

func Patch[T any](ctx context.Context, c *Client, endpoint string, body any) (*T, error) {
	var out T
	res, err := c.do(ctx, http.MethodPatch, endpoint, nil, body, &out)
	return decoded(res, &out, err)
}

func Delete[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	var out T
	res, err := c.do(ctx, http.MethodDelete, endpoint, nil, nil, &out)
	return decoded(res, &out, err)
}

func decoded[T any](res response, out *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if res.status == http.StatusNoContent {
		return nil, nil
	}
	return out, nil
}

// GetText returns the raw response body, used for the warehouse SVG.
func (c *Client) GetText(ctx context.Context, endpoint string, params any) (string, error) {
	var buf bytes.Buffer
	if _, err := c.do(ctx, http.MethodGet, endpoint, params, nil, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PostForCookies posts body and returns the cookies the backend set, used
// by login to capture the backend session.
func (c *Client) PostForCookies(ctx context.Context, endpoint string, body, out any) ([]*http.Cookie, error) {
	res, err := c.do(ctx, http.MethodPost, endpoint, nil, body, out)
	if err != nil {
		return nil, err
	}
	return res.cookies, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, params, body, out any) (response, error) {
	target, err := c.url(endpoint, params)
	if err != nil {
		return response{}, err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range credentials(ctx) {
		req.AddCookie(ck)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, 0, start)
		c.logger.WarnContext(ctx, "backend unreachable", "method", method, "endpoint", endpoint, "err", err)
		return response{}, &APIError{Endpoint: endpoint, Message: networkMessage, cause: err}
	}
	defer resp.Body.Close()
	c.observe(method, resp.StatusCode, start)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, &APIError{Endpoint: endpoint, Message: networkMessage, cause: err}
	}

	c.logger.DebugContext(ctx, "backend call",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return response{status: resp.StatusCode}, parseAPIError(endpoint, resp.StatusCode, raw)
	}

	res := response{status: resp.StatusCode, cookies: resp.Cookies()}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 || out == nil {
		if resp.StatusCode != http.StatusNoContent && len(bytes.TrimSpace(raw)) == 0 {
			res.status = http.StatusNoContent
		}
		return res, nil
	}
	if buf, ok := out.(*bytes.Buffer); ok {
		buf.Write(raw)
		return res, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return res, fmt.Errorf("decode %s %s response: %w", method, endpoint, err)
	}
	return res, nil
}

func (c *Client) url(endpoint string, params any) (string, error) {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	values, err := encodeParams(params)
	if err != nil {
		return "", fmt.Errorf("encode params for %s: %w", endpoint, err)
	}
	if enc := values.Encode(); enc != "" {
		target += "?" + enc
	}
	return target, nil
}

func encodeParams(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		return p, nil
	default:
		v, err := query.Values(p)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func (c *Client) observe(method string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveBackend(method, status, time.Since(start))
	}
}

// PathID formats an entity path such as /api/materials/12/toggle-active.
func PathID(base string, id int64, action ...string) string {
	p := fmt.Sprintf("%s/%d", strings.TrimRight(base, "/"), id)
	for _, a := range action {
		p += "/" + a
	}
	return p
}
