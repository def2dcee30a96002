package services

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"blogcms/internal/config"
	"blogcms/internal/errs"
	"blogcms/internal/logger"
	"blogcms/internal/models"
	"blogcms/internal/scraper"
	"blogcms/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type PageScraper interface {
	Scrape(ctx context.Context, pageURL string) (*models.ScrapeResult, error)
}

type MarkdownScraper interface {
	Scrape(ctx context.Context, pageURL string) (*scraper.MarkdownDoc, error)
}

// GenerateInput is scraped content handed back by the editor for rewriting.
// Title and Excerpt, when present, are used as-is instead of being generated.
type GenerateInput struct {
	Content      string `json:"content"`
	WordCount    int    `json:"word_count"`
	LeadImageURL string `json:"lead_image_url"`
	Title        string `json:"title"`
	Excerpt      string `json:"excerpt"`
}

type IngestService struct {
	pages    PageScraper
	markdown MarkdownScraper
	llm      TextGenerator
	cfg      config.IngestConfig
}

func NewIngestService(pages PageScraper, markdown MarkdownScraper, llm TextGenerator, cfg config.IngestConfig) *IngestService {
	return &IngestService{pages: pages, markdown: markdown, llm: llm, cfg: cfg}
}

// ValidateURL accepts absolute http(s) URLs with a host.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errs.Validationf("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errs.Validationf("url is not well-formed").WithDetails(map[string]string{"url": raw})
	}
	return u.String(), nil
}

func (s *IngestService) Scrape(ctx context.Context, rawURL string) (*models.ScrapeResult, error) {
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}
	logger.WithCtx(ctx).Info("scraping url", zap.String("url", pageURL))
	return s.pages.Scrape(ctx, pageURL)
}

func (s *IngestService) Generate(ctx context.Context, in GenerateInput) (*models.Draft, error) {
	log := logger.WithCtx(ctx)
	if strings.TrimSpace(in.Content) == "" {
		return nil, errs.Validationf("content is required")
	}
	log.Info("generating draft from content",
		zap.Int("content_len", len(in.Content)),
		zap.Int("source_word_count", in.WordCount),
	)

	draft, err := s.rewrite(ctx, in.Content, strings.TrimSpace(in.Title), strings.TrimSpace(in.Excerpt))
	if err != nil {
		log.Error("draft generation failed", zap.Error(err))
		return nil, err
	}
	draft.ImageURL = in.LeadImageURL

	log.Info("draft generated", zap.Int("word_count", draft.WordCount), zap.Int("read_time", draft.ReadTime))
	return draft, nil
}

// ImportURL runs the Markdown extraction path straight into the rewrite.
func (s *IngestService) ImportURL(ctx context.Context, rawURL string) (*models.Draft, error) {
	log := logger.WithCtx(ctx)
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}
	log.Info("importing url", zap.String("url", pageURL))

	doc, err := s.markdown.Scrape(ctx, pageURL)
	if err != nil {
		log.Error("markdown extraction failed", zap.String("url", pageURL), zap.Error(err))
		return nil, err
	}

	draft, err := s.rewrite(ctx, doc.Markdown, doc.Meta("title"), doc.Meta("description"))
	if err != nil {
		log.Error("draft generation failed", zap.String("url", pageURL), zap.Error(err))
		return nil, err
	}
	draft.ImageURL = doc.Meta("twitter:image:src")
	if draft.ImageURL == "" {
		draft.ImageURL = doc.Meta("og:image")
	}

	log.Info("url imported", zap.String("url", pageURL), zap.Int("word_count", draft.WordCount))
	return draft, nil
}

// rewrite fans out the rewrite, title and excerpt calls and joins them. Any
// failure cancels the siblings and discards every result.
func (s *IngestService) rewrite(ctx context.Context, body, knownTitle, knownExcerpt string) (*models.Draft, error) {
	var content, title, excerpt string
	title, excerpt = knownTitle, knownExcerpt

	summaryInput := utils.Truncate(body, s.cfg.SummaryInputCap)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := s.llm.Generate(gctx, buildPrompt(s.cfg.Prompts.Rewrite, utils.Truncate(body, s.cfg.RewriteInputCap)))
		content = out
		return err
	})
	if knownTitle == "" {
		g.Go(func() error {
			out, err := s.llm.Generate(gctx, buildPrompt(s.cfg.Prompts.Title, summaryInput))
			title = strings.TrimSpace(out)
			return err
		})
	}
	if knownExcerpt == "" {
		g.Go(func() error {
			out, err := s.llm.Generate(gctx, buildPrompt(s.cfg.Prompts.Excerpt, summaryInput))
			excerpt = strings.TrimSpace(out)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, processingError(err)
	}

	words := utils.WordCount(content)
	return &models.Draft{
		Title:     title,
		Content:   content,
		Excerpt:   excerpt,
		WordCount: words,
		ReadTime:  utils.ReadTime(words, s.cfg.WordsPerMinute),
	}, nil
}

func (s *IngestService) Translate(ctx context.Context, content string) (*models.Translation, error) {
	log := logger.WithCtx(ctx)
	if strings.TrimSpace(content) == "" {
		return nil, errs.Validationf("content is required")
	}
	if n := utf8.RuneCountInString(content); s.cfg.TranslateCap > 0 && n > s.cfg.TranslateCap {
		return nil, errs.Validationf("content is too long, limit is %d characters", s.cfg.TranslateCap).
			WithDetails(map[string]int{"length": n, "limit": s.cfg.TranslateCap})
	}
	log.Info("translating content", zap.Int("content_len", len(content)))

	out, err := s.llm.Generate(ctx, buildPrompt(s.cfg.Prompts.Translate, content))
	if err != nil {
		log.Error("translation failed", zap.Error(err))
		return nil, processingError(err)
	}

	log.Info("content translated", zap.Int("translated_len", len(out)))
	return &models.Translation{
		Original:       content,
		Translated:     out,
		SourceLanguage: "Vietnamese",
		TargetLanguage: "English",
	}, nil
}

// buildPrompt substitutes the first %s; templates come from config, so fmt
// verbs elsewhere in them must stay literal.
func buildPrompt(tpl, input string) string {
	if strings.Contains(tpl, "%s") {
		return strings.Replace(tpl, "%s", input, 1)
	}
	return tpl + "\n\n" + input
}

// processingError keeps timeouts distinguishable and folds the rest into a
// generic upstream failure carrying the cause as details.
func processingError(err error) error {
	if errs.Is(err, errs.UpstreamTimeout) {
		return err
	}
	return errs.Wrap(errs.Upstream, "failed to process content", err).WithDetails(err.Error())
}
