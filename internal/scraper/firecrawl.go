package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"blogcms/internal/config"
	"blogcms/internal/errs"
)

// MarkdownDoc is the main content of a page as Markdown plus page metadata.
type MarkdownDoc struct {
	Markdown string
	Metadata map[string]any
}

// Meta returns a metadata value as a string. Firecrawl reports repeated meta
// tags as arrays; the first element wins.
func (d *MarkdownDoc) Meta(key string) string {
	switch v := d.Metadata[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

type FirecrawlClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewFirecrawlClient(cfg *config.Config) *FirecrawlClient {
	return &FirecrawlClient{
		endpoint:   cfg.FirecrawlURL,
		apiKey:     cfg.FirecrawlAPIKey,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

type firecrawlRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
	ParsePDF        bool     `json:"parsePDF"`
	MaxAge          int64    `json:"maxAge"`
}

type firecrawlResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string         `json:"markdown"`
		Metadata map[string]any `json:"metadata"`
	} `json:"data"`
}

func (c *FirecrawlClient) Scrape(ctx context.Context, pageURL string) (*MarkdownDoc, error) {
	body, err := json.Marshal(firecrawlRequest{
		URL:             pageURL,
		Formats:         []string{"markdown"},
		OnlyMainContent: true,
		ParsePDF:        true,
		MaxAge:          (4 * time.Hour).Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal firecrawl payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, errs.Wrap(errs.UpstreamTimeout, "timed out connecting to Firecrawl API", err)
		}
		return nil, errs.Wrap(errs.Upstream, "failed to scrape content", err).WithDetails(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, errs.Wrap(errs.Upstream, "failed to read Firecrawl response", err).WithDetails(err.Error())
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errs.UpstreamStatus(resp.StatusCode,
			fmt.Sprintf("Firecrawl API error: %s", resp.Status), jsonOrText(raw))
	}

	var out firecrawlResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errs.Wrap(errs.Upstream, "invalid Firecrawl response", err).WithDetails(err.Error())
	}
	if !out.Success || strings.TrimSpace(out.Data.Markdown) == "" {
		return nil, errs.New(errs.Validation, "could not extract content from URL").WithDetails(jsonOrText(raw))
	}

	meta := out.Data.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return &MarkdownDoc{Markdown: out.Data.Markdown, Metadata: meta}, nil
}

// jsonOrText keeps an upstream body readable inside our own JSON error.
func jsonOrText(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	return strings.TrimSpace(string(raw))
}
