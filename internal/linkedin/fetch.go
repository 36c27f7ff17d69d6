package linkedin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnexpectedStatus is returned when the profile page answers with a non-2xx code.
var ErrUnexpectedStatus = errors.New("unexpected status fetching profile page")

// maxPageSize caps how much of the profile page is read.
const maxPageSize = 4 << 20

// Fetcher retrieves the markup of a profile page.
type Fetcher interface {
	Fetch(ctx context.Context, profileURL string) (string, error)
}

// HTTPFetcher fetches profile pages with browser-like headers.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	Timeout   time.Duration
}

// NewHTTPFetcher returns an HTTPFetcher using http.DefaultClient.
func NewHTTPFetcher(userAgent string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		Client:    http.DefaultClient,
		UserAgent: userAgent,
		Timeout:   timeout,
	}
}

// Fetch performs a single GET bounded by f.Timeout.
func (f *HTTPFetcher) Fetch(ctx context.Context, profileURL string) (string, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", profileURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("read profile page: %w", err)
	}
	return string(body), nil
}
