// Package notify fans a detection event out across the configured
// notification channels. Channels are attempted independently: one
// channel failing never stops the others, and nothing is retried.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"reelwatch/internal/config"
)

// Event is the payload delivered on a positive detection. Built once per
// detection and never mutated.
type Event struct {
	MovieName  string
	URL        string
	DetectedAt time.Time
}

// Channel is one delivery mechanism (email, webhook, Telegram).
type Channel interface {
	Name() string
	Send(ev Event) error
}

// Outcome records one channel's delivery attempt.
type Outcome struct {
	Channel string
	Err     error
}

func (o Outcome) OK() bool { return o.Err == nil }

// Report aggregates per-channel outcomes for a single dispatch.
type Report struct {
	Outcomes []Outcome
}

func (r Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

func (r Report) Failed() int { return len(r.Outcomes) - r.Succeeded() }

func (r Report) Summary() string {
	if len(r.Outcomes) == 0 {
		return "no channels enabled"
	}
	parts := make([]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.OK() {
			parts = append(parts, o.Channel+": ok")
		} else {
			parts = append(parts, fmt.Sprintf("%s: %v", o.Channel, o.Err))
		}
	}
	return strings.Join(parts, " | ")
}

type Dispatcher struct {
	channels []Channel
	logger   zerolog.Logger
}

func NewDispatcher(logger zerolog.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels, logger: logger}
}

// ChannelsFromConfig builds the enabled channels. Config validation has
// already guaranteed that enabled channels carry their required fields.
func ChannelsFromConfig(cfg config.Config) []Channel {
	var channels []Channel
	if cfg.Email.Enabled {
		channels = append(channels, NewEmailChannel(cfg.Email))
	}
	if cfg.Webhook.Enabled {
		channels = append(channels, NewWebhookChannel(cfg.Webhook))
	}
	if cfg.Telegram.Enabled {
		channels = append(channels, NewTelegramChannel(cfg.Telegram))
	}
	return channels
}

// Dispatch attempts delivery of ev on every channel and reports each
// outcome. With no channels it performs zero outbound calls.
func (d *Dispatcher) Dispatch(ev Event) Report {
	var report Report
	for _, ch := range d.channels {
		err := ch.Send(ev)
		if err != nil {
			d.logger.Error().Err(err).Str("channel", ch.Name()).Msg("notification failed")
		} else {
			d.logger.Info().Str("channel", ch.Name()).Msg("notification sent")
		}
		report.Outcomes = append(report.Outcomes, Outcome{Channel: ch.Name(), Err: err})
	}
	return report
}
