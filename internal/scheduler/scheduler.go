// Package scheduler drives the two run modes: a single probe mapped to a
// process exit code, and a fixed-cadence loop that stops after the first
// successful detection.
package scheduler

import (
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"reelwatch/internal/config"
	"reelwatch/internal/notify"
	"reelwatch/internal/prober"
)

type Prober interface {
	Check(url, movieName string) (prober.Result, error)
}

type Dispatcher interface {
	Dispatch(ev notify.Event) notify.Report
}

// RunOnce performs exactly one probe and returns the process exit code:
// 0 when the movie was found and dispatch attempted, 1 when it was not
// found or the probe itself failed. A probe error and a clean not-found
// deliberately share the failure code.
func RunOnce(cfg config.Config, p Prober, d Dispatcher, logger zerolog.Logger) int {
	found, err := checkAndNotify(cfg, p, d, logger)
	if err != nil {
		return 1
	}
	if !found {
		logger.Info().Str("movie", cfg.MovieName).Msg("movie not found yet")
		return 1
	}
	return 0
}

// Run checks immediately, then on the configured interval via cron until
// the movie is found. Probe errors are logged and the schedule continues;
// the first positive detection is dispatched once and ends the run.
func Run(cfg config.Config, p Prober, d Dispatcher, logger zerolog.Logger) error {
	logger.Info().
		Str("movie", cfg.MovieName).
		Int("interval_seconds", cfg.CheckInterval).
		Msg("starting monitor")

	if found, err := checkAndNotify(cfg, p, d, logger); err == nil && found {
		return nil
	}

	done := make(chan struct{})
	var once sync.Once

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	spec := fmt.Sprintf("@every %ds", cfg.CheckInterval)
	_, err := c.AddFunc(spec, func() {
		if found, err := checkAndNotify(cfg, p, d, logger); err == nil && found {
			once.Do(func() { close(done) })
		}
	})
	if err != nil {
		return fmt.Errorf("adding cron job %q: %w", spec, err)
	}

	c.Start()
	<-done
	<-c.Stop().Done()
	logger.Info().Msg("movie found, stopping monitor")
	return nil
}

// checkAndNotify runs one probe and, on a hit, one dispatch. A probe
// error is logged and returned; dispatch failures are carried in the
// report and logged, never escalated.
func checkAndNotify(cfg config.Config, p Prober, d Dispatcher, logger zerolog.Logger) (bool, error) {
	res, err := p.Check(cfg.URL, cfg.MovieName)
	if err != nil {
		if errors.Is(err, prober.ErrFetchFailed) {
			logger.Error().Err(err).Msg("probe failed")
		} else {
			logger.Error().Err(err).Msg("unexpected probe error")
		}
		return false, err
	}
	if !res.Found {
		return false, nil
	}

	logger.Info().Str("movie", cfg.MovieName).Str("title", res.MatchedTitle).Msg("movie is available")
	report := d.Dispatch(notify.Event{
		MovieName:  cfg.MovieName,
		URL:        cfg.URL,
		DetectedAt: res.CheckedAt,
	})
	logger.Info().
		Int("ok", report.Succeeded()).
		Int("failed", report.Failed()).
		Str("outcome", report.Summary()).
		Msg("dispatch complete")
	return true, nil
}
