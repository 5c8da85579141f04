package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/duskringd/internal/clock"
	"github.com/dokzlo13/duskringd/internal/config"
	"github.com/dokzlo13/duskringd/internal/settings"
	"github.com/dokzlo13/duskringd/internal/web"
)

// WebService wraps the configuration HTTP server.
type WebService struct {
	cfg    *config.Config
	server *web.Server
}

// NewWebService creates the configuration server service.
func NewWebService(cfg *config.Config, store *settings.Store, clk *clock.Source, state web.StateProvider) *WebService {
	return &WebService{
		cfg:    cfg,
		server: web.NewServer(cfg.HTTP.Host, cfg.HTTP.Port, store, clk, state),
	}
}

// Start begins the configuration server if enabled.
func (s *WebService) Start(ctx context.Context) {
	if !s.cfg.HTTP.Enabled {
		log.Info().Msg("Configuration server is disabled")
		return
	}

	go func() {
		if err := s.server.Run(ctx, s.cfg.GetShutdownTimeout()); err != nil {
			log.Error().Err(err).Msg("Configuration server error")
		}
	}()
}
