// Package fetch retrieves web pages over HTTP and converts HTML to Markdown.
//
// Pages are fetched with a bounded client: a fixed timeout, a configurable
// User-Agent and a cap on the body size. Non-2xx responses are errors.
// Bodies are decoded to UTF-8 using the declared or sniffed charset.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html/charset"
)

// Timeout bounds a whole request, body included.
const Timeout = 20 * time.Second

var (
	// ErrStatus is returned for responses outside the 2xx range.
	ErrStatus = errors.New("unexpected status")

	// ErrTooLarge is returned when the body exceeds the configured limit.
	ErrTooLarge = errors.New("response body too large")

	// ErrScheme is returned for URLs that are not http or https.
	ErrScheme = errors.New("unsupported URL scheme")
)

// Page is a fetched document.
type Page struct {
	URL         *url.URL // final URL after redirects
	ContentType string
	Body        []byte // UTF-8
}

// Client fetches pages.
type Client struct {
	http      *http.Client
	userAgent string
	maxBody   int64
}

// New returns a client sending userAgent and refusing bodies over maxBody
// bytes.
func New(userAgent string, maxBody int64) *Client {
	return &Client{
		http:      &http.Client{Timeout: Timeout},
		userAgent: userAgent,
		maxBody:   maxBody,
	}
}

// Get fetches rawURL.
func (c *Client) Get(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrScheme, u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(raw)) > c.maxBody {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, c.maxBody)
	}

	ct := resp.Header.Get("Content-Type")
	body, err := decode(raw, ct)
	if err != nil {
		return nil, err
	}
	return &Page{URL: resp.Request.URL, ContentType: ct, Body: body}, nil
}

// decode converts raw to UTF-8 using contentType or, failing that, the
// document's own charset declaration.
func decode(raw []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		// Unknown charset: pass the bytes through.
		return raw, nil
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decoding body: %w", err)
	}
	return body, nil
}
