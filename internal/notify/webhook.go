package notify

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"reelwatch/internal/config"
)

const webhookTimeout = 10 * time.Second

// webhookPayload carries a Discord/Slack-friendly content line plus the
// structured event fields for generic consumers.
type webhookPayload struct {
	Content    string `json:"content"`
	MovieName  string `json:"movie_name"`
	URL        string `json:"url"`
	DetectedAt string `json:"detected_at"`
}

type WebhookChannel struct {
	cfg   config.WebhookConfig
	resty *resty.Client
}

func NewWebhookChannel(cfg config.WebhookConfig) *WebhookChannel {
	return &WebhookChannel{cfg: cfg, resty: resty.New().SetTimeout(webhookTimeout)}
}

func (c *WebhookChannel) Name() string { return "webhook" }

// Send POSTs one JSON body to the configured URL. A non-2xx response or a
// transport error fails the channel.
func (c *WebhookChannel) Send(ev Event) error {
	payload := webhookPayload{
		Content: fmt.Sprintf("🎬 **Movie Alert!** The movie **%s** is now available for booking!\nBook here: %s",
			ev.MovieName, ev.URL),
		MovieName:  ev.MovieName,
		URL:        ev.URL,
		DetectedAt: ev.DetectedAt.Format(time.RFC3339),
	}
	resp, err := c.resty.R().SetBody(payload).Post(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("webhook POST %s: %w", c.cfg.URL, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("webhook POST %s: status %s", c.cfg.URL, resp.Status())
	}
	return nil
}
