package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var envKeys = []string{
	"SENDER_EMAIL", "SENDER_PASSWORD", "RECIPIENT_EMAILS",
	"WEBHOOK_URL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
	"MOVIE_NAME", "CHECK_INTERVAL",
}

// clearEnv pins every recognized override to empty so the real process
// environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
url: "https://example.com/listing"
movie_name: "File Movie"
check_interval: 60
email:
  enabled: true
  sender_email: "file@example.com"
  sender_password: "file-secret"
  recipient_emails: ["file-rcpt@example.com"]
`)

	t.Setenv("SENDER_EMAIL", "env@example.com")
	t.Setenv("SENDER_PASSWORD", "env-secret")
	t.Setenv("RECIPIENT_EMAILS", "a@example.com, b@example.com")
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/x")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-10042")
	t.Setenv("MOVIE_NAME", "Env Movie")
	t.Setenv("CHECK_INTERVAL", "120")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Email.SenderEmail != "env@example.com" {
		t.Errorf("sender_email = %q, want env value", cfg.Email.SenderEmail)
	}
	if cfg.Email.SenderPassword != "env-secret" {
		t.Errorf("sender_password = %q, want env value", cfg.Email.SenderPassword)
	}
	if want := []string{"a@example.com", "b@example.com"}; !reflect.DeepEqual(cfg.Email.RecipientEmails, want) {
		t.Errorf("recipient_emails = %v, want %v", cfg.Email.RecipientEmails, want)
	}
	if !cfg.Webhook.Enabled || cfg.Webhook.URL != "https://hooks.example.com/x" {
		t.Errorf("webhook = %+v, want enabled with env URL", cfg.Webhook)
	}
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken != "123:abc" || cfg.Telegram.ChatID != "-10042" {
		t.Errorf("telegram = %+v, want enabled with env token and chat", cfg.Telegram)
	}
	if cfg.MovieName != "Env Movie" {
		t.Errorf("movie_name = %q, want env value", cfg.MovieName)
	}
	if cfg.CheckInterval != 120 {
		t.Errorf("check_interval = %d, want 120", cfg.CheckInterval)
	}
}

func TestFileValuesAndDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
url: "https://example.com/listing"
movie_name: "File Movie"
check_interval: 60
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MovieName != "File Movie" {
		t.Errorf("movie_name = %q, want file value", cfg.MovieName)
	}
	if cfg.CheckInterval != 60 {
		t.Errorf("check_interval = %d, want file value 60", cfg.CheckInterval)
	}
	if cfg.Email.SMTPServer != "smtp.gmail.com" || cfg.Email.SMTPPort != 587 {
		t.Errorf("smtp defaults = %s:%d, want smtp.gmail.com:587", cfg.Email.SMTPServer, cfg.Email.SMTPPort)
	}
	if cfg.FetchTimeout != 30 {
		t.Errorf("fetch_timeout_seconds = %d, want default 30", cfg.FetchTimeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q, want default info", cfg.Logging.Level)
	}
}

func TestMissingFileFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CheckInterval != 300 {
		t.Errorf("check_interval = %d, want default 300", cfg.CheckInterval)
	}
	if cfg.MovieName == "" || cfg.URL == "" {
		t.Errorf("defaults missing: movie_name=%q url=%q", cfg.MovieName, cfg.URL)
	}
}

func TestNonNumericIntervalEnvIsConfigError(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHECK_INTERVAL", "five minutes")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNonNumericIntervalInFileIsConfigError(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
check_interval: "not-a-number"
`)
	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestUnparseableFileIsConfigError(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "url: [unclosed\n")
	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestEnabledChannelMissingFieldsIsConfigError(t *testing.T) {
	cases := map[string]string{
		"webhook no url": `
webhook:
  enabled: true
`,
		"telegram no chat": `
telegram:
  enabled: true
  bot_token: "123:abc"
`,
		"email no recipients": `
email:
  enabled: true
  sender_email: "x@example.com"
  sender_password: "secret"
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadConfig(writeConfig(t, content))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseRecipientList(t *testing.T) {
	got := ParseRecipientList(" a@example.com ,, b@example.com , ")
	want := []string{"a@example.com", "b@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseRecipientList = %v, want %v", got, want)
	}
	if out := ParseRecipientList(""); out != nil {
		t.Fatalf("ParseRecipientList(empty) = %v, want nil", out)
	}
}
