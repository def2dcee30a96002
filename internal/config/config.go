package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	JWTSecret      string
	AccessTokenTTL string
	CookieSecure   bool

	Log      string
	LogLevel string
	LogDir   string
	Env      string // dev|prod

	SiteURL string

	// Generative-text service (OpenAI-compatible chat completions).
	LLMEndpoint string
	LLMModel    string
	LLMAPIKey   string
	LLMTimeout  string

	FirecrawlURL    string
	FirecrawlAPIKey string

	// Storage: s3 when S3Bucket is set, local directory otherwise.
	S3Bucket       string
	S3Region       string
	S3PublicPrefix string
	UploadDir      string
	UploadURLBase  string
	TmpDir         string

	Ingest IngestConfig `yaml:"ingest"`
	Upload UploadConfig `yaml:"upload"`
}

// IngestConfig tunes the scrape → rewrite pipeline. Overridable from the YAML file.
type IngestConfig struct {
	RewriteInputCap int          `yaml:"rewriteInputCap"`
	SummaryInputCap int          `yaml:"summaryInputCap"`
	TranslateCap    int          `yaml:"translateCap"`
	WordsPerMinute  int          `yaml:"wordsPerMinute"`
	FetchTimeout    string       `yaml:"fetchTimeout"`
	UserAgent       string       `yaml:"userAgent"`
	Prompts         PromptConfig `yaml:"prompts"`
}

// PromptConfig holds fmt templates; each receives the (truncated) input once.
type PromptConfig struct {
	Rewrite   string `yaml:"rewrite"`
	Title     string `yaml:"title"`
	Excerpt   string `yaml:"excerpt"`
	Translate string `yaml:"translate"`
}

type UploadConfig struct {
	MaxBytes     int64    `yaml:"maxBytes"`
	AllowedTypes []string `yaml:"allowedTypes"`
}

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	defaultRewritePrompt = `Rewrite the following content into a high-quality blog post formatted with Markdown:

%s

Requirements:
1. Use Markdown properly with suitable h1, h2 and h3 headings
2. Write professional, SEO-friendly content
3. Expand every part with useful information, examples, research and extra detail
4. Include an introduction, a main body split into clearly separated sections (at least 5-7 sections), and a conclusion
5. Focus on quality and completeness of the content
6. Do NOT add any JSON structure, return Markdown only`

	defaultTitlePrompt = `Based on the following content, write an engaging, concise, SEO-optimised title:

%s

Return only the title, without any explanation or extra formatting.`

	defaultExcerptPrompt = `Based on the following content, write a short excerpt (1-2 sentences) summarising the main points:

%s

Return only the excerpt, without any explanation or extra formatting.`

	defaultTranslatePrompt = `Translate the following Vietnamese content to professional, high-quality English.
Maintain the original formatting including Markdown if present.
Return only the translated content without any explanations or comments.

Vietnamese content:
%s`
)

// LoadConfig reads .env and the environment and fills in defaults.
// A YAML file named by BLOG_CONFIG overrides the ingest/upload blocks only.
// Nothing is logged here so config stays independent of logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "8080"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    os.Getenv("DB_NAME"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: def(os.Getenv("ACCESS_TOKEN_EXPIRY"), "24h"),
		CookieSecure:   strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		LogDir:   def(os.Getenv("LOG_DIR"), "logs"),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		SiteURL: strings.TrimRight(os.Getenv("SITEURL"), "/"),

		LLMEndpoint: def(os.Getenv("LLM_ENDPOINT"), "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions"),
		LLMModel:    def(os.Getenv("LLM_MODEL"), "gemini-2.0-flash"),
		LLMAPIKey:   def(os.Getenv("LLM_API_KEY"), os.Getenv("GEMINI_API_KEY")),
		LLMTimeout:  def(os.Getenv("LLM_TIMEOUT"), "120s"),

		FirecrawlURL:    def(os.Getenv("FIRECRAWL_URL"), "https://api.firecrawl.dev/v1/scrape"),
		FirecrawlAPIKey: os.Getenv("FIRECRAWL_API_KEY"),

		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       def(os.Getenv("S3_REGION"), "us-west-1"),
		S3PublicPrefix: os.Getenv("S3_PUBLIC_PREFIX"),
		UploadDir:      def(os.Getenv("UPLOAD_DIR"), "uploaded"),
		UploadURLBase:  def(os.Getenv("UPLOAD_URL_BASE"), "/uploads"),
		TmpDir:         def(os.Getenv("TMP_DIR"), "tmp"),

		Ingest: defaultIngest(),
		Upload: UploadConfig{
			MaxBytes:     envInt64("UPLOAD_MAX_BYTES", 5<<20),
			AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
		},
	}

	if path := strings.TrimSpace(os.Getenv("BLOG_CONFIG")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func defaultIngest() IngestConfig {
	return IngestConfig{
		RewriteInputCap: 100000,
		SummaryInputCap: 5000,
		TranslateCap:    100000,
		WordsPerMinute:  225,
		FetchTimeout:    "15s",
		UserAgent:       defaultUserAgent,
		Prompts: PromptConfig{
			Rewrite:   defaultRewritePrompt,
			Title:     defaultTitlePrompt,
			Excerpt:   defaultExcerptPrompt,
			Translate: defaultTranslatePrompt,
		},
	}
}

type fileConfig struct {
	Ingest IngestConfig `yaml:"ingest"`
	Upload UploadConfig `yaml:"upload"`
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Ingest = mergeIngest(c.Ingest, fc.Ingest)
	if fc.Upload.MaxBytes > 0 {
		c.Upload.MaxBytes = fc.Upload.MaxBytes
	}
	if len(fc.Upload.AllowedTypes) > 0 {
		c.Upload.AllowedTypes = fc.Upload.AllowedTypes
	}
	return nil
}

func mergeIngest(base, override IngestConfig) IngestConfig {
	if override.RewriteInputCap > 0 {
		base.RewriteInputCap = override.RewriteInputCap
	}
	if override.SummaryInputCap > 0 {
		base.SummaryInputCap = override.SummaryInputCap
	}
	if override.TranslateCap > 0 {
		base.TranslateCap = override.TranslateCap
	}
	if override.WordsPerMinute > 0 {
		base.WordsPerMinute = override.WordsPerMinute
	}
	if override.FetchTimeout != "" {
		base.FetchTimeout = override.FetchTimeout
	}
	if override.UserAgent != "" {
		base.UserAgent = override.UserAgent
	}
	if override.Prompts.Rewrite != "" {
		base.Prompts.Rewrite = override.Prompts.Rewrite
	}
	if override.Prompts.Title != "" {
		base.Prompts.Title = override.Prompts.Title
	}
	if override.Prompts.Excerpt != "" {
		base.Prompts.Excerpt = override.Prompts.Excerpt
	}
	if override.Prompts.Translate != "" {
		base.Prompts.Translate = override.Prompts.Translate
	}
	return base
}

func envInt64(key string, d int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return d
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return d
	}
	return n
}

// Validate returns soft warnings, and an error only for unusable config.
func (c *Config) Validate() (warnings []string, err error) {
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty")
	}
	if c.LLMAPIKey == "" {
		warnings = append(warnings, "LLM_API_KEY is not set, generate/translate endpoints will fail")
	}
	if c.FirecrawlAPIKey == "" {
		warnings = append(warnings, "FIRECRAWL_API_KEY is not set, URL import will fail")
	}
	if c.S3Bucket != "" && c.S3PublicPrefix == "" {
		warnings = append(warnings, "S3_PUBLIC_PREFIX is empty, falling back to the bucket URL")
	}
	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 8080")
	}

	return warnings, nil
}

// GetDSN returns the full DSN including the password.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe masks the password for logs.
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
