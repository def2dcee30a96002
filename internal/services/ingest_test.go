package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"blogcms/internal/config"
	"blogcms/internal/errs"
	"blogcms/internal/models"
	"blogcms/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (string, error)
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.reply(prompt)
}

func (f *fakeGenerator) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

type fakePageScraper struct {
	called bool
	result *models.ScrapeResult
	err    error
}

func (f *fakePageScraper) Scrape(_ context.Context, pageURL string) (*models.ScrapeResult, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	r := *f.result
	r.URL = pageURL
	return &r, nil
}

type fakeMarkdownScraper struct {
	called bool
	doc    *scraper.MarkdownDoc
	err    error
}

func (f *fakeMarkdownScraper) Scrape(_ context.Context, _ string) (*scraper.MarkdownDoc, error) {
	f.called = true
	return f.doc, f.err
}

func testIngestConfig() config.IngestConfig {
	return config.IngestConfig{
		RewriteInputCap: 100000,
		SummaryInputCap: 5000,
		TranslateCap:    100,
		WordsPerMinute:  225,
		Prompts: config.PromptConfig{
			Rewrite:   "REWRITE:%s",
			Title:     "TITLE:%s",
			Excerpt:   "EXCERPT:%s",
			Translate: "TRANSLATE:%s",
		},
	}
}

// byPrefix answers each prompt kind with a fixed reply.
func byPrefix(replies map[string]string) func(string) (string, error) {
	return func(prompt string) (string, error) {
		for prefix, reply := range replies {
			if strings.HasPrefix(prompt, prefix) {
				return reply, nil
			}
		}
		return "", errors.New("unexpected prompt")
	}
}

func TestValidateURL(t *testing.T) {
	ok := []string{"https://example.com/a", "http://example.com", "  https://example.com/x?y=1  "}
	for _, u := range ok {
		_, err := ValidateURL(u)
		assert.NoError(t, err, u)
	}

	bad := []string{"", "not-a-url", "ftp://example.com/file", "https://", "/relative/path"}
	for _, u := range bad {
		_, err := ValidateURL(u)
		assert.True(t, errs.Is(err, errs.Validation), "%q: %v", u, err)
	}
}

func TestScrape_InvalidURLSkipsScraper(t *testing.T) {
	pages := &fakePageScraper{}
	svc := NewIngestService(pages, &fakeMarkdownScraper{}, &fakeGenerator{}, testIngestConfig())

	_, err := svc.Scrape(context.Background(), "not-a-url")
	assert.True(t, errs.Is(err, errs.Validation))
	assert.False(t, pages.called)
}

func TestScrape_PassesThrough(t *testing.T) {
	pages := &fakePageScraper{result: &models.ScrapeResult{Parsed: true, Title: "T", WordCount: 3}}
	svc := NewIngestService(pages, &fakeMarkdownScraper{}, &fakeGenerator{}, testIngestConfig())

	res, err := svc.Scrape(context.Background(), "https://example.com/post")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/post", res.URL)
	assert.Equal(t, "T", res.Title)
}

func TestGenerate_AllThreeCalls(t *testing.T) {
	gen := &fakeGenerator{reply: byPrefix(map[string]string{
		"REWRITE:": "# Heading\n\none two three four",
		"TITLE:":   "  Generated title \n",
		"EXCERPT:": "Short excerpt.",
	})}
	svc := NewIngestService(&fakePageScraper{}, &fakeMarkdownScraper{}, gen, testIngestConfig())

	draft, err := svc.Generate(context.Background(), GenerateInput{
		Content:      "source text",
		LeadImageURL: "https://example.com/img.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "Generated title", draft.Title)
	assert.Equal(t, "Short excerpt.", draft.Excerpt)
	assert.Equal(t, "# Heading\n\none two three four", draft.Content)
	assert.Equal(t, 6, draft.WordCount)
	assert.Equal(t, 1, draft.ReadTime)
	assert.Equal(t, "https://example.com/img.png", draft.ImageURL)
	assert.ElementsMatch(t, []string{"REWRITE:source text", "TITLE:source text", "EXCERPT:source text"}, gen.calls())
}

func TestGenerate_KnownTitleAndExcerptSkipCalls(t *testing.T) {
	gen := &fakeGenerator{reply: byPrefix(map[string]string{"REWRITE:": "body"})}
	svc := NewIngestService(&fakePageScraper{}, &fakeMarkdownScraper{}, gen, testIngestConfig())

	draft, err := svc.Generate(context.Background(), GenerateInput{
		Content: "source",
		Title:   "Known",
		Excerpt: "Known excerpt",
	})
	require.NoError(t, err)
	assert.Equal(t, "Known", draft.Title)
	assert.Equal(t, "Known excerpt", draft.Excerpt)
	assert.Equal(t, []string{"REWRITE:source"}, gen.calls())
}

func TestGenerate_OneFailureDiscardsDraft(t *testing.T) {
	gen := &fakeGenerator{reply: func(prompt string) (string, error) {
		if strings.HasPrefix(prompt, "TITLE:") {
			return "", errors.New("quota exceeded")
		}
		return "ok", nil
	}}
	svc := NewIngestService(&fakePageScraper{}, &fakeMarkdownScraper{}, gen, testIngestConfig())

	draft, err := svc.Generate(context.Background(), GenerateInput{Content: "source"})
	assert.Nil(t, draft)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.Upstream, e.Kind)
	assert.Equal(t, "failed to process content", e.Message)
	assert.Contains(t, e.Details, "quota exceeded")
}

func TestGenerate_TimeoutKeepsKind(t *testing.T) {
	gen := &fakeGenerator{reply: func(string) (string, error) {
		return "", errs.New(errs.UpstreamTimeout, "generation timed out")
	}}
	svc := NewIngestService(&fakePageScraper{}, &fakeMarkdownScraper{}, gen, testIngestConfig())

	_, err := svc.Generate(context.Background(), GenerateInput{Content: "source"})
	assert.True(t, errs.Is(err, errs.UpstreamTimeout))
}

func TestGenerate_EmptyContent(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewIngestService(&fakePageScraper{}, &fakeMarkdownScraper{}, gen, testIngestConfig())

	_, err := svc.Generate(context.Background(), GenerateInput{Content: "  "})
	assert.True(t, errs.Is(err, errs.Validation))
	assert.Empty(t, gen.calls())
}

func TestGenerate_TruncatesInputs(t *testing.T) {
	cfg := testIngestConfig()
	cfg.RewriteInputCap = 10
	cfg.SummaryInputCap = 4
	gen := &fakeGenerator{reply: func(string) (string, error) { return "x", nil }}
	svc := NewIngestService(&fakePageScraper{}, &fakeMarkdownScraper{}, gen, cfg)

	_, err := svc.Generate(context.Background(), GenerateInput{Content: strings.Repeat("á", 50)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"REWRITE:" + strings.Repeat("á", 10),
		"TITLE:" + strings.Repeat("á", 4),
		"EXCERPT:" + strings.Repeat("á", 4),
	}, gen.calls())
}

func TestImportURL_UsesMetadata(t *testing.T) {
	gen := &fakeGenerator{reply: byPrefix(map[string]string{"REWRITE:": "one two"})}
	md := &fakeMarkdownScraper{doc: &scraper.MarkdownDoc{
		Markdown: "# Page",
		Metadata: map[string]any{
			"title":       "Page title",
			"description": "Page description",
			"og:image":    "https://example.com/og.png",
		},
	}}
	svc := NewIngestService(&fakePageScraper{}, md, gen, testIngestConfig())

	draft, err := svc.ImportURL(context.Background(), "https://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, "Page title", draft.Title)
	assert.Equal(t, "Page description", draft.Excerpt)
	assert.Equal(t, "https://example.com/og.png", draft.ImageURL)
	assert.Equal(t, []string{"REWRITE:# Page"}, gen.calls())
}

func TestImportURL_PrefersTwitterImage(t *testing.T) {
	gen := &fakeGenerator{reply: func(string) (string, error) { return "x", nil }}
	md := &fakeMarkdownScraper{doc: &scraper.MarkdownDoc{
		Markdown: "body",
		Metadata: map[string]any{
			"twitter:image:src": "https://example.com/tw.png",
			"og:image":          "https://example.com/og.png",
		},
	}}
	svc := NewIngestService(&fakePageScraper{}, md, gen, testIngestConfig())

	draft, err := svc.ImportURL(context.Background(), "https://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/tw.png", draft.ImageURL)
	assert.Len(t, gen.calls(), 3)
}

func TestImportURL_InvalidURLAndExtractionError(t *testing.T) {
	md := &fakeMarkdownScraper{err: errs.Validationf("could not extract content from URL")}
	gen := &fakeGenerator{}
	svc := NewIngestService(&fakePageScraper{}, md, gen, testIngestConfig())

	_, err := svc.ImportURL(context.Background(), "not-a-url")
	assert.True(t, errs.Is(err, errs.Validation))
	assert.False(t, md.called)

	_, err = svc.ImportURL(context.Background(), "https://example.com")
	assert.True(t, errs.Is(err, errs.Validation))
	assert.True(t, md.called)
	assert.Empty(t, gen.calls())
}

func TestTranslate(t *testing.T) {
	gen := &fakeGenerator{reply: byPrefix(map[string]string{"TRANSLATE:": "Hello"})}
	svc := NewIngestService(&fakePageScraper{}, &fakeMarkdownScraper{}, gen, testIngestConfig())

	tr, err := svc.Translate(context.Background(), "Xin chào")
	require.NoError(t, err)
	assert.Equal(t, "Xin chào", tr.Original)
	assert.Equal(t, "Hello", tr.Translated)
	assert.Equal(t, "Vietnamese", tr.SourceLanguage)
	assert.Equal(t, "English", tr.TargetLanguage)

	_, err = svc.Translate(context.Background(), "")
	assert.True(t, errs.Is(err, errs.Validation))

	_, err = svc.Translate(context.Background(), strings.Repeat("ư", 101))
	assert.True(t, errs.Is(err, errs.Validation))
	assert.Len(t, gen.calls(), 1)
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, "A x B %s", buildPrompt("A %s B %s", "x"))
	assert.Equal(t, "Prompt\n\ninput", buildPrompt("Prompt", "input"))
	assert.Equal(t, "100% %d", buildPrompt("%s %d", "100%"))
}
