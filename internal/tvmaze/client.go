// Package tvmaze fetches show metadata and episode lists from the TVmaze API.
package tvmaze

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/javiermolinar/showcal/internal/show"
)

const (
	// DefaultBaseURL is the public TVmaze API endpoint.
	DefaultBaseURL = "https://api.tvmaze.com"

	// DefaultTimeout bounds a single show request.
	DefaultTimeout = 15 * time.Second

	// DefaultUserAgent identifies showcal to the API.
	DefaultUserAgent = "showcal/1.0"

	maxErrorBody = 512
)

// ErrNotFound is returned when TVmaze does not know the show.
var ErrNotFound = errors.New("show not found on tvmaze")

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("tvmaze request failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("tvmaze request failed (status %d): %s", e.StatusCode, e.Body)
}

// Source is anything that can produce a show with its episodes.
type Source interface {
	FetchShow(ctx context.Context, id string) (*show.Show, error)
}

// Client talks to the TVmaze REST API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a TVmaze client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchShow loads a show and its embedded episode list.
// An empty episode list yields a loaded-empty show.
func (c *Client) FetchShow(ctx context.Context, id string) (*show.Show, error) {
	id, err := show.NormalizeID(id)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/shows/" + url.PathEscape(id) + "?embed=episodes"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching show %s: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	sh, err := ParseShow(body)
	if err != nil {
		return nil, fmt.Errorf("parsing show %s: %w", id, err)
	}
	sh.ID = id
	return sh, nil
}
