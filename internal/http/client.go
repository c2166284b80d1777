package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "poddl"

// DefaultFeedTimeout bounds GetString. Media streams are only bounded by the
// caller's context since episodes can take a long time to download.
const DefaultFeedTimeout = 60 * time.Second

// NetworkError is returned when a request fails or the server answers with a
// non-200 status.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client wraps HTTP operations used to fetch feeds and episodes.
//
// Client provides:
//   - Configured User-Agent header
//   - Optional request pacing (requests per second)
//   - Streaming downloads into any io.Writer with progress tracking
//
// Example usage:
//
//	client := NewClient(WithRequestsPerSecond(2))
//
//	// Fetch the feed
//	xml, err := client.GetString(ctx, "https://example.com/feed.xml")
//
//	// Stream an episode into an open file
//	err = client.StreamToFile(ctx, mp3URL, file)
type Client struct {
	httpClient  *http.Client
	userAgent   string
	feedTimeout time.Duration
	limiter     *rate.Limiter

	// OnProgress is called while streaming with (bytesWritten, totalBytes).
	// totalBytes is -1 when the server sends no Content-Length.
	OnProgress func(written, total int64)
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRequestsPerSecond paces requests. A value <= 0 disables pacing.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithFeedTimeout sets the timeout for GetString and Get.
func WithFeedTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.feedTimeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new HTTP client.
//
// The client is configured with:
//   - no overall timeout for media streams
//   - 60 second timeout for feed and small file requests
//   - "poddl" User-Agent header
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{},
		userAgent:   DefaultUserAgent,
		feedTimeout: DefaultFeedTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProgressWriter wraps a writer to track download progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// do sends a GET request and returns the response when the status is 200 OK.
// The caller must close the body.
func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{URL: url, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	return resp, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns a *NetworkError if the request fails, the response status is not
// 200 OK, or reading the body fails.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.feedTimeout)
	defer cancel()

	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	return body, nil
}

// GetString performs a GET request and returns the response body as a string.
//
// This is used to fetch the feed XML.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// StreamToFile streams the content at url into w without buffering it in
// memory. The writer is not closed.
//
// Example:
//
//	f, _ := os.Create("/podcasts/tmp/001.mp3")
//	defer f.Close()
//	err := client.StreamToFile(ctx, mp3URL, f)
func (c *Client) StreamToFile(ctx context.Context, url string, w io.Writer) error {
	resp, err := c.do(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	writer := w
	if c.OnProgress != nil {
		writer = &ProgressWriter{
			Writer:   w,
			Total:    resp.ContentLength,
			OnUpdate: c.OnProgress,
		}
	}

	if _, err := io.Copy(writer, resp.Body); err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	return nil
}
