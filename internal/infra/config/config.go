package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Ledger backends and email providers selectable via environment.
const (
	LedgerBackendCSV      = "csv"
	LedgerBackendPostgres = "postgres"

	EmailProviderSMTP   = "smtp"
	EmailProviderResend = "resend"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	// Google Contacts
	GroupName       string // contact group holding the club members
	FallbackGroupID string // resourceName used when the name lookup fails
	CredentialsPath string // OAuth installed-app client secrets JSON
	TokenPath       string // cached OAuth token JSON

	// Email transport
	EmailProvider string // "smtp" or "resend"
	SMTPServer    string
	SMTPPort      int
	EmailUser     string // SMTP login, also the From address for SMTP
	EmailPassword string
	ResendAPIKey  string
	FromAddress   string // From address for the resend provider
	CardImagePath string // pre-rendered birthday card attached inline

	// Send ledger
	LedgerBackend string // "csv" or "postgres"
	LedgerPath    string // CSV file location
	DatabaseURL   string // Postgres DSN

	// Optional run summary to a club admin over Telegram
	TelegramToken   string
	AdminTelegramID int64

	CronSpecDaily string
	LogLevel      string
	Environment   string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.GroupName = os.Getenv("GMAIL_GROUP_NAME")
	if cfg.GroupName == "" {
		return nil, fmt.Errorf("GMAIL_GROUP_NAME is not set")
	}
	cfg.FallbackGroupID = os.Getenv("GMAIL_FALLBACK_ID")

	cfg.CredentialsPath = os.Getenv("GOOGLE_CREDENTIALS_PATH")
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = "credentials.json"
	}
	cfg.TokenPath = os.Getenv("GOOGLE_TOKEN_PATH")
	if cfg.TokenPath == "" {
		cfg.TokenPath = "token.json"
	}

	cfg.EmailProvider = strings.ToLower(os.Getenv("EMAIL_PROVIDER"))
	if cfg.EmailProvider == "" {
		cfg.EmailProvider = EmailProviderSMTP
	}
	switch cfg.EmailProvider {
	case EmailProviderSMTP:
		cfg.EmailUser = os.Getenv("EMAIL_USER")
		if cfg.EmailUser == "" {
			return nil, fmt.Errorf("EMAIL_USER is not set")
		}
		cfg.EmailPassword = os.Getenv("EMAIL_PASSWORD")
		if cfg.EmailPassword == "" {
			return nil, fmt.Errorf("EMAIL_PASSWORD is not set")
		}
		cfg.SMTPServer = os.Getenv("SMTP_SERVER")
		if cfg.SMTPServer == "" {
			cfg.SMTPServer = "smtp.gmail.com"
		}
		portStr := os.Getenv("SMTP_PORT")
		if portStr == "" {
			portStr = "465" // implicit TLS
		}
		cfg.SMTPPort, err = strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		cfg.FromAddress = cfg.EmailUser
	case EmailProviderResend:
		cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("RESEND_API_KEY is not set")
		}
		cfg.FromAddress = os.Getenv("EMAIL_FROM")
		if cfg.FromAddress == "" {
			return nil, fmt.Errorf("EMAIL_FROM is not set")
		}
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER: %q", cfg.EmailProvider)
	}

	cfg.CardImagePath = os.Getenv("CARD_IMAGE_PATH")

	cfg.LedgerBackend = strings.ToLower(os.Getenv("LEDGER_BACKEND"))
	if cfg.LedgerBackend == "" {
		cfg.LedgerBackend = LedgerBackendCSV
	}
	switch cfg.LedgerBackend {
	case LedgerBackendCSV:
		cfg.LedgerPath = os.Getenv("LEDGER_PATH")
		if cfg.LedgerPath == "" {
			cfg.LedgerPath = "sent_birthdays.csv"
		}
	case LedgerBackendPostgres:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
	default:
		return nil, fmt.Errorf("unknown LEDGER_BACKEND: %q", cfg.LedgerBackend)
	}

	// Telegram summary is optional: both vars must be present to enable it.
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if cfg.TelegramToken != "" && adminIDStr == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is set but ADMIN_TELEGRAM_ID is not")
	}
	if adminIDStr != "" {
		cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	cfg.CronSpecDaily = os.Getenv("CRON_SPEC_DAILY")
	if cfg.CronSpecDaily == "" {
		cfg.CronSpecDaily = "0 9 * * *" // Default: 9:00 AM daily
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

// SummaryEnabled reports whether the optional Telegram run summary is configured.
func (c *AppConfig) SummaryEnabled() bool {
	return c.TelegramToken != "" && c.AdminTelegramID != 0
}
