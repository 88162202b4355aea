package notify

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"reelwatch/internal/config"
)

const (
	telegramAPIBase = "https://api.telegram.org"
	telegramTimeout = 10 * time.Second
)

type TelegramChannel struct {
	cfg     config.TelegramConfig
	apiBase string
	resty   *resty.Client
}

func NewTelegramChannel(cfg config.TelegramConfig) *TelegramChannel {
	return &TelegramChannel{
		cfg:     cfg,
		apiBase: telegramAPIBase,
		resty:   resty.New().SetTimeout(telegramTimeout),
	}
}

func (c *TelegramChannel) Name() string { return "telegram" }

// Send posts one message to the bot API sendMessage endpoint. A non-2xx
// response or a transport error fails the channel.
func (c *TelegramChannel) Send(ev Event) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.cfg.BotToken)
	text := fmt.Sprintf("🎬 Movie Alert! %q is now available for booking.\nBook here: %s\nTime: %s",
		ev.MovieName, ev.URL, ev.DetectedAt.Format("2006-01-02 15:04:05"))

	resp, err := c.resty.R().
		SetFormData(map[string]string{
			"chat_id": c.cfg.ChatID,
			"text":    text,
		}).
		Post(endpoint)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("telegram sendMessage: status %s", resp.Status())
	}
	return nil
}
