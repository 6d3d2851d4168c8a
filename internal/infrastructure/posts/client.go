// Package posts fetches the post collection from its remote source.
package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/tesso57/postview/internal/application/settings"
	"github.com/tesso57/postview/internal/application/usecase"
	"github.com/tesso57/postview/internal/domain/post"
)

const (
	defaultUserAgent = "postview/1.0"
	jsonAcceptHeader = "application/json, */*;q=0.5"
	feedAcceptHeader = "application/atom+xml, application/rss+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"
)

var _ usecase.PostFetcher = (*Client)(nil)

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

type acceptTransport struct {
	base   http.RoundTripper
	accept string
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", t.accept)
	}
	return base.RoundTrip(clone)
}

// Client reads posts from a single configured URL.
type Client struct {
	url       string
	format    string
	http      *http.Client
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = acceptTransport{base: rt, accept: acceptFor(c.format)}
	}
}

// NewClient builds a Client from source settings.
func NewClient(cfg settings.SourceConfig, opts ...Option) *Client {
	format := strings.TrimSpace(cfg.Format)
	if format == "" {
		format = settings.FormatJSON
	}
	c := &Client{
		url:    strings.TrimSpace(cfg.URL),
		format: format,
		http: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: acceptTransport{base: http.DefaultTransport, accept: acceptFor(format)},
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func acceptFor(format string) string {
	if format == settings.FormatFeed {
		return feedAcceptHeader
	}
	return jsonAcceptHeader
}

// URL returns the source URL.
func (c *Client) URL() string { return c.url }

// FetchPosts retrieves and decodes the post collection.
func (c *Client) FetchPosts(ctx context.Context) ([]post.Post, error) {
	if c == nil {
		return nil, errors.New("client is nil")
	}
	if c.url == "" {
		return nil, errors.New("source url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	switch c.format {
	case settings.FormatJSON:
		return c.fetchJSON(ctx)
	case settings.FormatFeed:
		return c.fetchFeed(ctx)
	default:
		return nil, fmt.Errorf("unknown source format %q", c.format)
	}
}

type postPayload struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (c *Client) fetchJSON(ctx context.Context) ([]post.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var payload []postPayload
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("decode posts: unexpected data after the post array")
	}

	result := make([]post.Post, len(payload))
	for i, p := range payload {
		result[i] = post.Post{ID: p.ID, Title: p.Title, Body: p.Body}
	}
	return result, nil
}

func (c *Client) fetchFeed(ctx context.Context) ([]post.Post, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = c.userAgent
	fp.Client = c.http

	parsed, err := fp.ParseURLWithContext(c.url, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &StatusError{StatusCode: httpErr.StatusCode, Status: httpErr.Status}
		}
		return nil, fmt.Errorf("parse feed %s: %w", c.url, err)
	}
	return postsFromFeed(parsed), nil
}

func postsFromFeed(feed *gofeed.Feed) []post.Post {
	if feed == nil {
		return []post.Post{}
	}
	result := make([]post.Post, 0, len(feed.Items))
	for i, item := range feed.Items {
		if item == nil {
			continue
		}
		body := item.Description
		if strings.TrimSpace(body) == "" {
			body = item.Content
		}
		result = append(result, post.Post{ID: i + 1, Title: item.Title, Body: body})
	}
	return result
}
