package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredSMTPEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GMAIL_GROUP_NAME", "DIFUSION SOCIOS 2025")
	t.Setenv("EMAIL_USER", "club@x.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredSMTPEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EmailProviderSMTP, cfg.EmailProvider)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPServer)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, "club@x.com", cfg.FromAddress)
	assert.Equal(t, LedgerBackendCSV, cfg.LedgerBackend)
	assert.Equal(t, "sent_birthdays.csv", cfg.LedgerPath)
	assert.Equal(t, "0 9 * * *", cfg.CronSpecDaily)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.SummaryEnabled())
}

func TestLoadRequiresGroupName(t *testing.T) {
	t.Setenv("GMAIL_GROUP_NAME", "")
	t.Setenv("EMAIL_USER", "club@x.com")
	t.Setenv("EMAIL_PASSWORD", "pw")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GMAIL_GROUP_NAME")
}

func TestLoadResendProvider(t *testing.T) {
	t.Setenv("GMAIL_GROUP_NAME", "socios")
	t.Setenv("EMAIL_PROVIDER", "resend")
	t.Setenv("RESEND_API_KEY", "re_123")
	t.Setenv("EMAIL_FROM", "Club Discóbolo <saludos@discobolo.club>")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EmailProviderResend, cfg.EmailProvider)
	assert.Equal(t, "Club Discóbolo <saludos@discobolo.club>", cfg.FromAddress)
}

func TestLoadResendRequiresAPIKey(t *testing.T) {
	t.Setenv("GMAIL_GROUP_NAME", "socios")
	t.Setenv("EMAIL_PROVIDER", "resend")
	t.Setenv("RESEND_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestLoadPostgresLedgerRequiresDSN(t *testing.T) {
	setRequiredSMTPEnv(t)
	t.Setenv("LEDGER_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRejectsUnknownBackends(t *testing.T) {
	setRequiredSMTPEnv(t)
	t.Setenv("LEDGER_BACKEND", "redis")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEDGER_BACKEND")
}

func TestLoadTelegramSummary(t *testing.T) {
	setRequiredSMTPEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("ADMIN_TELEGRAM_ID", "42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.SummaryEnabled())
	assert.Equal(t, int64(42), cfg.AdminTelegramID)
}

func TestLoadTelegramTokenWithoutAdminFails(t *testing.T) {
	setRequiredSMTPEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("ADMIN_TELEGRAM_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_TELEGRAM_ID")
}
