package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"reelwatch/internal/config"
)

type EmailChannel struct {
	cfg config.EmailConfig

	// sendMail is smtp.SendMail unless a test swaps it out.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailChannel(cfg config.EmailConfig) *EmailChannel {
	return &EmailChannel{cfg: cfg, sendMail: smtp.SendMail}
}

func (c *EmailChannel) Name() string { return "email" }

// Send opens one authenticated SMTP session and delivers a single message
// to all recipients. Any failure is one channel-level failure; there is no
// per-recipient retry.
func (c *EmailChannel) Send(ev Event) error {
	addr := fmt.Sprintf("%s:%d", c.cfg.SMTPServer, c.cfg.SMTPPort)
	auth := smtp.PlainAuth("", c.cfg.SenderEmail, c.cfg.SenderPassword, c.cfg.SMTPServer)
	msg := buildEmailMessage(c.cfg.SenderEmail, c.cfg.RecipientEmails, ev)
	if err := c.sendMail(addr, auth, c.cfg.SenderEmail, c.cfg.RecipientEmails, msg); err != nil {
		return fmt.Errorf("smtp send via %s: %w", addr, err)
	}
	return nil
}

func buildEmailMessage(from string, to []string, ev Event) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: Movie Alert: %s is now available!\r\n", ev.MovieName)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "Great news! The movie %q is now available for booking.\r\n\r\n", ev.MovieName)
	fmt.Fprintf(&b, "Book your tickets here: %s\r\n\r\n", ev.URL)
	fmt.Fprintf(&b, "Time: %s\r\n", ev.DetectedAt.Format("2006-01-02 15:04:05"))
	return []byte(b.String())
}
