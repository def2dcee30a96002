package scraper

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"blogcms/internal/models"
	"blogcms/internal/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"
)

// Parser extracts article fields from a page the way reader-mode tools do:
// Open Graph and meta tags first, then the main content container.
type Parser struct {
	fetcher *Fetcher
	text    *bluemonday.Policy
}

func NewParser(fetcher *Fetcher) *Parser {
	return &Parser{fetcher: fetcher, text: bluemonday.StrictPolicy()}
}

var contentSelectors = []string{"article", "main", "[role=main]", "#content", ".post-content", ".entry-content", "body"}

const noiseSelectors = "script, style, noscript, nav, header, footer, aside, form, iframe, svg"

func (p *Parser) Parse(ctx context.Context, pageURL string) (*models.ScrapeResult, error) {
	body, err := p.fetcher.open(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return p.parseDocument(io.LimitReader(body, maxPageBytes), pageURL)
}

func (p *Parser) parseDocument(r io.Reader, pageURL string) (*models.ScrapeResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	res := &models.ScrapeResult{URL: pageURL, Parsed: true}

	res.Title = firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		metaContent(doc, `meta[name="twitter:title"]`),
		strings.TrimSpace(doc.Find("title").First().Text()),
		strings.TrimSpace(doc.Find("h1").First().Text()),
	)
	res.Author = firstNonEmpty(
		metaContent(doc, `meta[name="author"]`),
		metaContent(doc, `meta[property="article:author"]`),
		strings.TrimSpace(doc.Find(`[rel="author"]`).First().Text()),
	)
	res.Excerpt = firstNonEmpty(
		metaContent(doc, `meta[property="og:description"]`),
		metaContent(doc, `meta[name="description"]`),
	)
	res.LeadImageURL = resolveURL(pageURL, firstNonEmpty(
		metaContent(doc, `meta[property="og:image"]`),
		metaContent(doc, `meta[name="twitter:image"]`),
		metaContent(doc, `meta[name="twitter:image:src"]`),
	))

	rawDate := firstNonEmpty(
		metaContent(doc, `meta[property="article:published_time"]`),
		metaContent(doc, `meta[name="date"]`),
		metaContent(doc, `meta[itemprop="datePublished"]`),
		attr(doc, "time[datetime]", "datetime"),
	)
	if rawDate != "" {
		if t, err := dateparse.ParseAny(rawDate); err == nil {
			res.DatePublished = t.UTC().Format(time.RFC3339)
		}
	}

	var main *goquery.Selection
	for _, sel := range contentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			main = s
			break
		}
	}
	if main == nil {
		return nil, fmt.Errorf("no content container found")
	}
	main.Find(noiseSelectors).Remove()

	contentHTML, err := main.Html()
	if err != nil {
		return nil, fmt.Errorf("serialize content: %w", err)
	}
	res.Content = strings.TrimSpace(contentHTML)
	res.WordCount = utils.WordCount(p.text.Sanitize(res.Content))
	if res.WordCount == 0 {
		return nil, fmt.Errorf("no readable content")
	}

	return res, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	return attr(doc, selector, "content")
}

func attr(doc *goquery.Document, selector, name string) string {
	v, _ := doc.Find(selector).First().Attr(name)
	return strings.TrimSpace(v)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
