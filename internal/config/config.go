package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidConfig marks any configuration failure: unparseable file,
// non-numeric interval, or an enabled channel missing required fields.
var ErrInvalidConfig = errors.New("invalid configuration")

type EmailConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	SMTPServer      string   `mapstructure:"smtp_server"`
	SMTPPort        int      `mapstructure:"smtp_port"`
	SenderEmail     string   `mapstructure:"sender_email"`
	SenderPassword  string   `mapstructure:"sender_password"`
	RecipientEmails []string `mapstructure:"recipient_emails"`
}

type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	URL           string         `mapstructure:"url"`
	MovieName     string         `mapstructure:"movie_name"`
	TitleSelector string         `mapstructure:"title_selector"`
	CheckInterval int            `mapstructure:"check_interval"`
	FetchTimeout  int            `mapstructure:"fetch_timeout_seconds"`
	Email         EmailConfig    `mapstructure:"email"`
	Webhook       WebhookConfig  `mapstructure:"webhook"`
	Telegram      TelegramConfig `mapstructure:"telegram"`
	Logging       LoggingConfig  `mapstructure:"logging"`
}

// LoadConfig reads the config file (an absent file falls back to defaults),
// applies environment overrides, and validates the result. Precedence per
// field: env var set and non-empty > file value > default.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("url", "https://in.bookmyshow.com/explore/movies-bengaluru?languages=tamil")
	v.SetDefault("movie_name", "Coolie")
	v.SetDefault("title_selector", "div.sc-7o7nez-0.elfplV")
	v.SetDefault("check_interval", 300)
	v.SetDefault("fetch_timeout_seconds", 30)
	v.SetDefault("email.smtp_server", "smtp.gmail.com")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "reelwatch.log")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: decoding %s: %v", ErrInvalidConfig, path, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if s := envValue("SENDER_EMAIL"); s != "" {
		cfg.Email.SenderEmail = s
	}
	if s := envValue("SENDER_PASSWORD"); s != "" {
		cfg.Email.SenderPassword = s
	}
	if s := envValue("RECIPIENT_EMAILS"); s != "" {
		cfg.Email.RecipientEmails = ParseRecipientList(s)
	}
	if s := envValue("WEBHOOK_URL"); s != "" {
		cfg.Webhook.Enabled = true
		cfg.Webhook.URL = s
	}
	if s := envValue("TELEGRAM_BOT_TOKEN"); s != "" {
		cfg.Telegram.BotToken = s
	}
	if s := envValue("TELEGRAM_CHAT_ID"); s != "" {
		cfg.Telegram.ChatID = s
	}
	if envValue("TELEGRAM_BOT_TOKEN") != "" && envValue("TELEGRAM_CHAT_ID") != "" {
		cfg.Telegram.Enabled = true
	}
	if s := envValue("MOVIE_NAME"); s != "" {
		cfg.MovieName = s
	}
	if s := envValue("CHECK_INTERVAL"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%w: CHECK_INTERVAL %q is not an integer", ErrInvalidConfig, s)
		}
		cfg.CheckInterval = n
	}
	return nil
}

func envValue(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// ParseRecipientList splits a comma-separated address list, trimming
// whitespace and dropping empty entries.
func ParseRecipientList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func (c Config) validate() error {
	if c.URL == "" {
		return fmt.Errorf("%w: url is not set", ErrInvalidConfig)
	}
	if c.MovieName == "" {
		return fmt.Errorf("%w: movie_name is not set", ErrInvalidConfig)
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("%w: check_interval must be positive, got %d", ErrInvalidConfig, c.CheckInterval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch_timeout_seconds must be positive, got %d", ErrInvalidConfig, c.FetchTimeout)
	}

	// An enabled channel with missing required fields is a hard error,
	// never a silent skip.
	if c.Email.Enabled {
		switch {
		case c.Email.SMTPServer == "":
			return fmt.Errorf("%w: email enabled but smtp_server is empty", ErrInvalidConfig)
		case c.Email.SMTPPort <= 0:
			return fmt.Errorf("%w: email enabled but smtp_port is invalid", ErrInvalidConfig)
		case c.Email.SenderEmail == "":
			return fmt.Errorf("%w: email enabled but sender_email is empty", ErrInvalidConfig)
		case c.Email.SenderPassword == "":
			return fmt.Errorf("%w: email enabled but sender_password is empty", ErrInvalidConfig)
		case len(c.Email.RecipientEmails) == 0:
			return fmt.Errorf("%w: email enabled but recipient_emails is empty", ErrInvalidConfig)
		}
	}
	if c.Webhook.Enabled && c.Webhook.URL == "" {
		return fmt.Errorf("%w: webhook enabled but url is empty", ErrInvalidConfig)
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("%w: telegram enabled but bot_token is empty", ErrInvalidConfig)
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("%w: telegram enabled but chat_id is empty", ErrInvalidConfig)
		}
	}
	return nil
}
