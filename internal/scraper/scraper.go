package scraper

import (
	"context"
	"net/http"
	"time"

	"blogcms/internal/config"
	"blogcms/internal/logger"
	"blogcms/internal/models"

	"go.uber.org/zap"
)

const rawFallbackMessage = "Could not parse the content, returning raw HTML"

// Scraper tries a structured parse and falls back to the raw page.
type Scraper struct {
	parser  *Parser
	fetcher *Fetcher
}

func NewScraper(cfg *config.Config) *Scraper {
	timeout, err := time.ParseDuration(cfg.Ingest.FetchTimeout)
	if err != nil || timeout <= 0 {
		timeout = 15 * time.Second
	}
	fetcher := NewFetcher(&http.Client{Timeout: timeout}, cfg.Ingest.UserAgent)
	return &Scraper{parser: NewParser(fetcher), fetcher: fetcher}
}

func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*models.ScrapeResult, error) {
	log := logger.WithCtx(ctx)

	res, err := s.parser.Parse(ctx, pageURL)
	if err == nil {
		log.Info("page parsed",
			zap.String("url", pageURL),
			zap.Int("word_count", res.WordCount),
			zap.Bool("has_title", res.Title != ""),
		)
		return res, nil
	}
	log.Warn("structured parse failed, falling back to raw HTML", zap.String("url", pageURL), zap.Error(err))

	raw, err := s.fetcher.FetchRaw(ctx, pageURL)
	if err != nil {
		log.Error("raw fetch failed", zap.String("url", pageURL), zap.Error(err))
		return nil, err
	}

	log.Info("raw HTML fetched", zap.String("url", pageURL), zap.Int("bytes", len(raw)))
	return &models.ScrapeResult{
		URL:     pageURL,
		HTML:    raw,
		Message: rawFallbackMessage,
	}, nil
}
