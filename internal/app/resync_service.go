package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/duskringd/internal/clock"
	"github.com/dokzlo13/duskringd/internal/config"
	"github.com/dokzlo13/duskringd/internal/telemetry"
)

// ResyncService refreshes the internal clock from the external chip on a
// long interval. Bus I/O is expensive next to minute-level scheduling, so
// the chip is read once at startup and then hourly, never on the tick path.
type ResyncService struct {
	cfg *config.Config
	clk *clock.Source
	pub telemetry.Publisher
}

// NewResyncService creates the clock resync service.
func NewResyncService(cfg *config.Config, clk *clock.Source, pub telemetry.Publisher) *ResyncService {
	return &ResyncService{cfg: cfg, clk: clk, pub: pub}
}

// SyncOnce performs a single sync attempt, logging the outcome. Failures
// are non-fatal: the internal clock keeps its previous value.
func (s *ResyncService) SyncOnce() {
	err := s.clk.SyncFromExternal()
	switch {
	case err == nil:
		log.Info().Time("utc", s.clk.Now()).Msg("Internal clock synced from external RTC")
	case errors.Is(err, clock.ErrUnavailable):
		log.Debug().Msg("No external RTC, internal clock unchanged")
	default:
		log.Warn().Err(err).Msg("External RTC sync failed, internal clock unchanged")
		ev := telemetry.NewEvent(telemetry.EventClockError)
		ev.Detail = err.Error()
		if perr := s.pub.Publish(ev); perr != nil {
			log.Debug().Err(perr).Msg("Failed to publish clock error")
		}
	}
}

// Start begins periodic resyncing when an external clock is present.
func (s *ResyncService) Start(ctx context.Context) {
	if !s.clk.HasExternal() {
		return
	}
	go s.run(ctx)
}

func (s *ResyncService) run(ctx context.Context) {
	interval := s.cfg.Clock.ResyncInterval.Duration()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SyncOnce()
		}
	}
}
