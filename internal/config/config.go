package config

import (
	"fmt"
	"os"
	"strings"
)

// ModerationPolicy decides what happens to a submission when the AI
// moderation call itself fails.
type ModerationPolicy string

const (
	// ModerationApprove auto-approves on moderation failure (fail-open).
	ModerationApprove ModerationPolicy = "approve"
	// ModerationReject auto-rejects on moderation failure.
	ModerationReject ModerationPolicy = "reject"
	// ModerationQueue leaves the submission pending for human review.
	ModerationQueue ModerationPolicy = "queue"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTIssuer string

	BaseURL string // public URL used in magic-link emails

	GeminiAPIKey      string
	ModerationModel   string
	OnModerationError ModerationPolicy

	ResendAPIKey string
	EmailFrom    string

	PaddleWebhookSecret string
	DodoWebhookSecret   string
	IntakeWebhookSecret string

	AllowedOrigins []string
}

// Load reads configuration from environment variables. Callers load a
// .env file first if one exists (see cmd/server).
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTIssuer:           getEnv("JWT_ISSUER", "launchlist"),
		BaseURL:             getEnv("BASE_URL", "http://localhost:8080"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		ModerationModel:     getEnv("MODERATION_MODEL", "gemini-2.0-flash"),
		ResendAPIKey:        os.Getenv("RESEND_API_KEY"),
		EmailFrom:           getEnv("EMAIL_FROM", "Launch List <login@launchlist.dev>"),
		PaddleWebhookSecret: os.Getenv("PADDLE_WEBHOOK_SECRET"),
		DodoWebhookSecret:   os.Getenv("DODO_WEBHOOK_SECRET"),
		IntakeWebhookSecret: os.Getenv("INTAKE_WEBHOOK_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	switch policy := ModerationPolicy(getEnv("MODERATION_ON_ERROR", string(ModerationApprove))); policy {
	case ModerationApprove, ModerationReject, ModerationQueue:
		cfg.OnModerationError = policy
	default:
		return nil, fmt.Errorf("invalid MODERATION_ON_ERROR %q (want approve, reject, or queue)", policy)
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
