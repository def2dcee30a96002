package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("BLOG_CONFIG", "")
	t.Setenv("PORT", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gem-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gem-key", cfg.LLMAPIKey)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, []string{"image/jpeg", "image/png", "image/webp", "image/gif"}, cfg.Upload.AllowedTypes)
	assert.Equal(t, 100000, cfg.Ingest.RewriteInputCap)
	assert.Equal(t, 5000, cfg.Ingest.SummaryInputCap)
	assert.Equal(t, 225, cfg.Ingest.WordsPerMinute)
	assert.Contains(t, cfg.Ingest.Prompts.Rewrite, "%s")
}

func TestLoadConfig_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.yaml")
	yaml := `
ingest:
  summaryInputCap: 1200
  wordsPerMinute: 200
  prompts:
    title: "Title for: %s"
upload:
  maxBytes: 1048576
  allowedTypes: ["image/png"]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("BLOG_CONFIG", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 1200, cfg.Ingest.SummaryInputCap)
	assert.Equal(t, 200, cfg.Ingest.WordsPerMinute)
	assert.Equal(t, "Title for: %s", cfg.Ingest.Prompts.Title)
	// untouched keys keep their defaults
	assert.Equal(t, 100000, cfg.Ingest.RewriteInputCap)
	assert.Equal(t, defaultExcerptPrompt, cfg.Ingest.Prompts.Excerpt)
	assert.Equal(t, int64(1<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, []string{"image/png"}, cfg.Upload.AllowedTypes)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ingest: [unclosed"), 0o644))
	t.Setenv("BLOG_CONFIG", path)

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Validate()
	assert.Error(t, err)

	cfg = &Config{DbHost: "localhost", DbUser: "blog", DbName: "blog", Port: "8080", S3Bucket: "media"}
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Contains(t, warnings, "JWT_SECRET is empty")
	assert.Contains(t, warnings, "S3_PUBLIC_PREFIX is empty, falling back to the bucket URL")
}

func TestGetDSNSafe(t *testing.T) {
	cfg := &Config{DbUser: "blog", DbPass: "hunter2", DbHost: "db", DbPort: "5432", DbName: "blog", DbSSLMode: "disable"}
	assert.Equal(t, "postgres://blog:hunter2@db:5432/blog?sslmode=disable", cfg.GetDSN())
	assert.NotContains(t, cfg.GetDSNSafe(), "hunter2")
}
