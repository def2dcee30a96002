// Package scraper turns a web URL into article data: a structured parse of the
// page, a raw-HTML fallback, or Markdown from the Firecrawl extraction API.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"blogcms/internal/errs"
)

// maxPageBytes caps how much of a remote page is read into memory.
const maxPageBytes = 10 << 20

type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{client: client, userAgent: userAgent}
}

// open issues a browser-like GET and returns the body for 2xx responses only.
func (f *Fetcher) open(ctx context.Context, pageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, errs.Wrap(errs.Validation, "invalid URL", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, errs.Wrap(errs.UpstreamTimeout, "timed out connecting to the website", err)
		}
		return nil, errs.Wrap(errs.Upstream, "failed to load the website", err).WithDetails(err.Error())
	}
	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close()
		return nil, errs.UpstreamStatus(resp.StatusCode, fmt.Sprintf("failed to load the website: %s", resp.Status), nil)
	}
	return resp.Body, nil
}

// FetchRaw returns the page body as-is.
func (f *Fetcher) FetchRaw(ctx context.Context, pageURL string) (string, error) {
	body, err := f.open(ctx, pageURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, maxPageBytes))
	if err != nil {
		if isTimeout(err) {
			return "", errs.Wrap(errs.UpstreamTimeout, "timed out reading the website", err)
		}
		return "", errs.Wrap(errs.Upstream, "failed to read the website", err)
	}
	return string(raw), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
