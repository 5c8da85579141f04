package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/duskringd/internal/clock"
	"github.com/dokzlo13/duskringd/internal/config"
	"github.com/dokzlo13/duskringd/internal/led"
	"github.com/dokzlo13/duskringd/internal/settings"
	"github.com/dokzlo13/duskringd/internal/telemetry"
)

// Services is a container for all application services.
// It manages service initialization order and dependencies.
type Services struct {
	cfg *config.Config

	// Core infrastructure
	Store *settings.Store
	Clock *clock.Source
	Strip led.Strip

	// Telemetry
	Publisher telemetry.Publisher

	// High-level services
	Ticker *TickerService
	Resync *ResyncService
	Web    *WebService
}

// NewServices creates all services with proper dependency injection.
func NewServices(cfg *config.Config) (*Services, error) {
	s := &Services{cfg: cfg}

	// Settings store (loads persisted record or defaults)
	store, err := settings.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	s.Store = store

	// Clock source: external chip only when a bus is configured and the
	// stored settings ask for it. Every failure here degrades to the
	// internal clock; scheduling never depends on the chip being present.
	s.Clock = clock.NewSource(openExternalClock(cfg, store.Snapshot()))

	// LED strip driver. The wire transport is a separate component; the
	// daemon computes frames and hands them to whatever driver is attached.
	s.Strip = led.NullStrip{}

	// Telemetry publisher
	s.Publisher = openPublisher(cfg)

	// High-level services
	s.Ticker = NewTickerService(cfg, store, s.Clock, s.Strip, s.Publisher)
	s.Resync = NewResyncService(cfg, s.Clock, s.Publisher)
	s.Web = NewWebService(cfg, store, s.Clock, s.Ticker)

	return s, nil
}

func openExternalClock(cfg *config.Config, snap settings.Settings) *clock.DS3231 {
	if cfg.Clock.I2CDevice == "" {
		log.Info().Msg("No I2C device configured, running on internal clock")
		return nil
	}
	if !snap.UseExternalRTC {
		log.Info().Msg("External RTC disabled in settings, running on internal clock")
		return nil
	}

	bus, err := clock.OpenI2C(cfg.Clock.I2CDevice, cfg.Clock.BusTimeout.Duration())
	if err != nil {
		log.Warn().Err(err).Str("device", cfg.Clock.I2CDevice).
			Msg("Failed to open I2C bus, falling back to internal clock")
		return nil
	}

	log.Info().Str("device", cfg.Clock.I2CDevice).Int("addr", cfg.Clock.Address).
		Msg("External RTC configured")
	return clock.NewDS3231(bus, byte(cfg.Clock.Address))
}

func openPublisher(cfg *config.Config) telemetry.Publisher {
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Broker == "" {
		return telemetry.NopPublisher{}
	}
	pub, err := telemetry.NewMQTTPublisher(cfg.Telemetry.Broker, cfg.Telemetry.ClientID, cfg.Telemetry.TopicPrefix)
	if err != nil {
		log.Warn().Err(err).Str("broker", cfg.Telemetry.Broker).
			Msg("Telemetry broker unreachable, events will be dropped")
		return telemetry.NopPublisher{}
	}
	return pub
}

// Start starts all services in the correct order.
func (s *Services) Start(ctx context.Context) error {
	// Prime the internal clock from the external chip before the first tick.
	s.Resync.SyncOnce()

	ev := telemetry.NewEvent(telemetry.EventStartup)
	if err := s.Publisher.Publish(ev); err != nil {
		log.Warn().Err(err).Msg("Failed to publish startup event")
	}

	s.Ticker.Start(ctx)
	s.Resync.Start(ctx)
	s.Web.Start(ctx)

	return nil
}

// Stop gracefully stops all services.
func (s *Services) Stop() error {
	s.Close()
	return nil
}

// Close releases all resources.
func (s *Services) Close() {
	if s.Publisher != nil {
		ev := telemetry.NewEvent(telemetry.EventShutdown)
		if err := s.Publisher.Publish(ev); err != nil {
			log.Debug().Err(err).Msg("Failed to publish shutdown event")
		}
		s.Publisher.Close()
	}
	if s.Strip != nil {
		s.Strip.Close()
	}
	if s.Store != nil {
		s.Store.Close()
	}
}
