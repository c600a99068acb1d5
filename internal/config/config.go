package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// MailAccount describes one IMAP mailbox the ingester polls.
type MailAccount struct {
	Address  string
	Username string
	Password string
}

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Server ports
	APIPort  int
	SMTPPort int

	// IMAP ingestion
	IMAPHost     string
	IMAPPort     int
	MailAccounts []MailAccount
	FetchLimit   int

	// AI classification
	GeminiAPIKey string
	GeminiModel  string

	// Outbound mail
	ResendAPIKey     string
	DigestFrom       string
	DigestRecipients []string

	// Logging
	LogLevel string

	// Security
	APIKey         string
	AllowedOrigins string
	AppEnv         string

	// Rate Limiting
	RateLimitRequests float64
	RateLimitBurst    int

	// Classifier pacing (requests per second against the AI API)
	ClassifyRate float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Required: DATABASE_URL
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	// API_PORT (default: 8080)
	apiPort := os.Getenv("API_PORT")
	if apiPort == "" {
		cfg.APIPort = 8080
	} else {
		port, err := strconv.Atoi(apiPort)
		if err != nil {
			return nil, fmt.Errorf("API_PORT must be a valid integer: %w", err)
		}
		cfg.APIPort = port
	}

	// SMTP_PORT (default: 2525)
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpPort == "" {
		cfg.SMTPPort = 2525
	} else {
		port, err := strconv.Atoi(smtpPort)
		if err != nil {
			return nil, fmt.Errorf("SMTP_PORT must be a valid integer: %w", err)
		}
		cfg.SMTPPort = port
	}

	// IMAP_HOST (default: the hosting provider all mailboxes live on)
	cfg.IMAPHost = os.Getenv("IMAP_HOST")
	if cfg.IMAPHost == "" {
		cfg.IMAPHost = "imap.mail.hostpoint.ch"
	}

	// IMAP_PORT (default: 993)
	imapPort := os.Getenv("IMAP_PORT")
	if imapPort == "" {
		cfg.IMAPPort = 993
	} else {
		port, err := strconv.Atoi(imapPort)
		if err != nil {
			return nil, fmt.Errorf("IMAP_PORT must be a valid integer: %w", err)
		}
		cfg.IMAPPort = port
	}

	// Mailboxes are numbered: IMAP_USER_1/IMAP_PASS_1, IMAP_USER_2/... Gaps
	// end the scan. The username doubles as the account address.
	for i := 1; ; i++ {
		user := os.Getenv(fmt.Sprintf("IMAP_USER_%d", i))
		if user == "" {
			break
		}
		pass := os.Getenv(fmt.Sprintf("IMAP_PASS_%d", i))
		if pass == "" {
			return nil, fmt.Errorf("IMAP_PASS_%d is required when IMAP_USER_%d is set", i, i)
		}
		cfg.MailAccounts = append(cfg.MailAccounts, MailAccount{
			Address:  user,
			Username: user,
			Password: pass,
		})
	}

	// FETCH_LIMIT (default: 50 messages per account per run)
	if limit := os.Getenv("FETCH_LIMIT"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil {
			return nil, fmt.Errorf("FETCH_LIMIT must be a valid integer: %w", err)
		}
		cfg.FetchLimit = v
	} else {
		cfg.FetchLimit = 50
	}

	// AI classification
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}

	// Outbound mail
	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.DigestFrom = os.Getenv("DIGEST_FROM")
	if cfg.DigestFrom == "" {
		cfg.DigestFrom = "MailHub <digest@inclusions.zone>"
	}
	if recipients := os.Getenv("DIGEST_RECIPIENTS"); recipients != "" {
		for _, r := range strings.Split(recipients, ",") {
			if r = strings.TrimSpace(r); r != "" {
				cfg.DigestRecipients = append(cfg.DigestRecipients, r)
			}
		}
	}

	// LOG_LEVEL (default: info)
	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	// Security configuration
	cfg.APIKey = os.Getenv("API_KEY")
	cfg.AllowedOrigins = os.Getenv("ALLOWED_ORIGINS")
	cfg.AppEnv = os.Getenv("APP_ENV")
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}

	// Rate limiting configuration
	if rps := os.Getenv("RATE_LIMIT_REQUESTS"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil {
			cfg.RateLimitRequests = v
		}
	} else {
		cfg.RateLimitRequests = 10.0
	}

	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		if v, err := strconv.Atoi(burst); err == nil {
			cfg.RateLimitBurst = v
		}
	} else {
		cfg.RateLimitBurst = 20
	}

	// CLASSIFY_RATE (default: 2 calls per second)
	if rate := os.Getenv("CLASSIFY_RATE"); rate != "" {
		if v, err := strconv.ParseFloat(rate, 64); err == nil {
			cfg.ClassifyRate = v
		}
	} else {
		cfg.ClassifyRate = 2.0
	}

	return cfg, nil
}

// LoadWithValidation loads and validates configuration, failing fast on errors
func LoadWithValidation() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Production-specific validation
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProduction(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DatabaseURL cannot be empty")
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("APIPort must be between 1 and 65535")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("SMTPPort must be between 1 and 65535")
	}
	if c.IMAPPort <= 0 || c.IMAPPort > 65535 {
		return fmt.Errorf("IMAPPort must be between 1 and 65535")
	}
	if c.FetchLimit <= 0 {
		return fmt.Errorf("FetchLimit must be positive")
	}
	return nil
}

// ValidateProduction performs additional validation for production environment
func (c *Config) ValidateProduction() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY is required in production")
	}

	if c.AllowedOrigins == "" {
		return fmt.Errorf("ALLOWED_ORIGINS is required in production")
	}

	// Check for wildcard in production
	if strings.Contains(c.AllowedOrigins, "*") {
		return fmt.Errorf("wildcard (*) origins are not allowed in production")
	}

	// Check for sslmode=disable in database URL
	if strings.Contains(c.DatabaseURL, "sslmode=disable") {
		return fmt.Errorf("sslmode=disable is not allowed in production")
	}

	if len(c.MailAccounts) == 0 {
		return fmt.Errorf("at least one IMAP_USER_n/IMAP_PASS_n pair is required in production")
	}

	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required in production")
	}

	return nil
}

// LogConfig logs configuration values (excluding secrets)
func (c *Config) LogConfig(logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.Int("api_port", c.APIPort),
		slog.Int("smtp_port", c.SMTPPort),
		slog.String("imap_host", c.IMAPHost),
		slog.Int("imap_port", c.IMAPPort),
		slog.Int("mail_accounts", len(c.MailAccounts)),
		slog.Int("fetch_limit", c.FetchLimit),
		slog.String("gemini_model", c.GeminiModel),
		slog.Bool("gemini_key_set", c.GeminiAPIKey != ""),
		slog.Bool("resend_key_set", c.ResendAPIKey != ""),
		slog.Int("digest_recipients", len(c.DigestRecipients)),
		slog.String("log_level", c.LogLevel),
		slog.String("app_env", c.AppEnv),
		slog.Bool("api_key_set", c.APIKey != ""),
		slog.Bool("allowed_origins_set", c.AllowedOrigins != ""),
		slog.Float64("rate_limit_rps", c.RateLimitRequests),
		slog.Int("rate_limit_burst", c.RateLimitBurst),
		slog.Float64("classify_rate", c.ClassifyRate),
	)
}
