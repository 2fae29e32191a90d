package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	DoccheckAPIKey string

	// Claude comparison
	AnthropicAPIKey string
	AnthropicModel  string

	// Template storage
	TemplateDir string

	// Run processing
	WorkerCount          int
	MaxQueueSize         int
	MaxConcurrentCompare int
	RunTTL               time.Duration

	// Upload limits
	MaxUploadBytes int64

	// Segmentation
	HeadingMaxLen int

	// Prompt budget
	MaxPromptTokens int

	// Status word table extensions: "label=Status,label=Status".
	StatusSynonyms string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		DoccheckAPIKey: os.Getenv("DOCCHECK_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		TemplateDir: envOr("TEMPLATE_DIR", "./templates"),

		WorkerCount:          envInt("WORKER_COUNT", 2),
		MaxQueueSize:         envInt("MAX_QUEUE_SIZE", 50),
		MaxConcurrentCompare: envInt("MAX_CONCURRENT_COMPARE", 4),
		RunTTL:               envDuration("RUN_TTL", 1*time.Hour),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		HeadingMaxLen:   envInt("HEADING_MAX_LEN", 60),
		MaxPromptTokens: envInt("MAX_PROMPT_TOKENS", 12000),

		StatusSynonyms: os.Getenv("STATUS_SYNONYMS"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxConcurrentCompare <= 0 {
		cfg.MaxConcurrentCompare = 4
	}
	if cfg.RunTTL <= 0 {
		cfg.RunTTL = 1 * time.Hour
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.HeadingMaxLen <= 0 {
		cfg.HeadingMaxLen = 60
	}
	if cfg.MaxPromptTokens <= 0 {
		cfg.MaxPromptTokens = 12000
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DoccheckAPIKey == "" {
		return fmt.Errorf("DOCCHECK_API_KEY is required")
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if c.TemplateDir == "" {
		return fmt.Errorf("TEMPLATE_DIR must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
