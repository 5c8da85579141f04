package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/duskringd/internal/clock"
	"github.com/dokzlo13/duskringd/internal/config"
	"github.com/dokzlo13/duskringd/internal/led"
	"github.com/dokzlo13/duskringd/internal/schedule"
	"github.com/dokzlo13/duskringd/internal/settings"
	"github.com/dokzlo13/duskringd/internal/telemetry"
	"github.com/dokzlo13/duskringd/internal/timezone"
)

// TickerService runs the scheduling loop: read the clock, resolve local
// time, evaluate the schedule and hand the frame to the LED driver. The loop
// is single-threaded; a tick always runs to completion and always produces
// an output frame, whatever else fails.
type TickerService struct {
	cfg   *config.Config
	store *settings.Store
	clk   *clock.Source
	strip led.Strip
	pub   telemetry.Publisher

	engine *schedule.Engine

	mu        sync.Mutex
	last      schedule.VisualState
	lastState schedule.State

	warnedConfig bool
}

// NewTickerService creates the scheduling loop service.
func NewTickerService(cfg *config.Config, store *settings.Store, clk *clock.Source, strip led.Strip, pub telemetry.Publisher) *TickerService {
	return &TickerService{
		cfg:    cfg,
		store:  store,
		clk:    clk,
		strip:  strip,
		pub:    pub,
		engine: schedule.NewEngine(),
	}
}

// Start begins the tick loop.
func (s *TickerService) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *TickerService) run(ctx context.Context) {
	poll := s.cfg.Ticker.Poll.Duration()
	evaluate := s.cfg.Ticker.Evaluate.Duration()

	log.Info().Dur("poll", poll).Dur("evaluate", evaluate).Msg("Starting scheduling loop")

	// First evaluation immediately so the ring shows a state at startup.
	s.Tick()

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	lastEval := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.blank()
			return
		case now := <-ticker.C:
			flashing := s.FlashActive()
			// Flash toggles are sub-second; while a session runs, evaluate
			// on every poll instead of the coarse interval.
			if !flashing && now.Sub(lastEval) < evaluate {
				continue
			}
			s.Tick()
			lastEval = now
		}
	}
}

// Tick performs one scheduling evaluation and pushes the resulting frame to
// the strip.
func (s *TickerService) Tick() {
	snap := s.store.Snapshot()
	now := s.clk.Now()
	local := timezone.Resolve(now, snap.UTCOffsetMinutes, snap.DSTEnabled, snap.DSTRegion)

	cfg, err := snap.ScheduleConfig()
	if err != nil {
		if errors.Is(err, settings.ErrInvalidSchedule) && !s.warnedConfig {
			log.Warn().Err(err).Msg("Schedule configuration invalid, using fallback times")
			s.warnedConfig = true
		}
	} else {
		s.warnedConfig = false
	}

	vs := s.engine.Evaluate(now, local.MinuteOfDay(), cfg)

	frame := led.BuildFrame(vs.Color, vs.Brightness, snap.NumLEDs, snap.ColorOrder)
	if err := s.strip.Write(frame); err != nil {
		log.Error().Err(err).Msg("Failed to write LED frame")
	}

	s.publishTransition(vs)

	s.mu.Lock()
	s.last = vs
	s.mu.Unlock()
}

// publishTransition emits a telemetry event when the logical state changes.
func (s *TickerService) publishTransition(vs schedule.VisualState) {
	s.mu.Lock()
	changed := vs.State != s.lastState
	s.lastState = vs.State
	s.mu.Unlock()
	if !changed {
		return
	}

	ev := telemetry.NewEvent(telemetry.EventStateChanged)
	ev.State = string(vs.State)
	ev.Color = fmt.Sprintf("#%02x%02x%02x", vs.Color.R, vs.Color.G, vs.Color.B)
	ev.Brightness = vs.Brightness
	ev.Flashing = vs.FlashTick
	if err := s.pub.Publish(ev); err != nil {
		log.Debug().Err(err).Msg("Failed to publish state change")
	}

	log.Info().Str("state", string(vs.State)).Str("color", ev.Color).
		Float64("brightness", vs.Brightness).Msg("Schedule state changed")
}

// blank turns the ring off on shutdown.
func (s *TickerService) blank() {
	snap := s.store.Snapshot()
	if err := s.strip.Write(led.OffFrame(snap.NumLEDs, snap.ColorOrder)); err != nil {
		log.Debug().Err(err).Msg("Failed to blank LEDs on shutdown")
	}
}

// LastState returns the most recent evaluation result.
func (s *TickerService) LastState() schedule.VisualState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// FlashActive reports whether a bedtime flash session is running.
func (s *TickerService) FlashActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.FlashTick
}
