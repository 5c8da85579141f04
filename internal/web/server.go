// Package web serves the configuration page. It is the only writer of the
// settings record; the scheduling core picks changes up on its next tick.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/dokzlo13/duskringd/internal/clock"
	"github.com/dokzlo13/duskringd/internal/schedule"
	"github.com/dokzlo13/duskringd/internal/settings"
	"github.com/dokzlo13/duskringd/internal/timezone"
)

// StateProvider exposes the most recent scheduling evaluation for display.
type StateProvider interface {
	LastState() schedule.VisualState
}

// Server is the configuration HTTP server.
type Server struct {
	addr       string
	store      *settings.Store
	clk        *clock.Source
	state      StateProvider
	limiter    *rate.Limiter
	httpServer *http.Server
}

// NewServer creates the server. state may be nil when no tick loop is
// attached (tests).
func NewServer(host string, port int, store *settings.Store, clk *clock.Source, state StateProvider) *Server {
	s := &Server{
		addr:  fmt.Sprintf("%s:%d", host, port),
		store: store,
		clk:   clk,
		state: state,
		// The original device served one connection at a time; a small rate
		// limit on form submissions approximates that on a real listener.
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/update", s.handleUpdate)
	mux.HandleFunc("/status.json", s.handleStatus)

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}
	return s
}

// Handler returns the server's HTTP handler. Useful for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	log.Info().Str("addr", s.addr).Msg("Starting configuration server")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Configuration server shutdown error")
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, s.pageData()); err != nil {
		log.Error().Err(err).Msg("Failed to render configuration page")
	}
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.limiter.Allow() {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	updated, timeSet, err := decodeForm(r.PostForm, s.store.Snapshot())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if timeSet != nil {
		if err := s.clk.SetTime(*timeSet); err != nil {
			if errors.Is(err, clock.ErrWriteFailure) {
				// Internal clock is already corrected; the battery-backed
				// copy just won't survive power loss.
				log.Warn().Err(err).Msg("Time set, but external clock write failed")
			} else {
				log.Error().Err(err).Msg("Failed to set time")
			}
		} else {
			log.Info().Time("utc", *timeSet).Msg("Clock set from web form")
		}
	}

	if err := s.store.Save(updated); err != nil {
		log.Error().Err(err).Msg("Failed to save settings")
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	log.Info().Int64("version", s.store.Version()).Msg("Settings updated")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// statusResponse is the machine-readable snapshot served at /status.json.
type statusResponse struct {
	UTC         string            `json:"utc"`
	LocalTime   string            `json:"local_time"`
	LocalDate   string            `json:"local_date"`
	DSTActive   bool              `json:"dst_active"`
	ExternalRTC bool              `json:"external_rtc"`
	State       string            `json:"state,omitempty"`
	Color       string            `json:"color,omitempty"`
	Brightness  float64           `json:"brightness"`
	Flashing    bool              `json:"flashing"`
	Settings    settings.Settings `json:"settings"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	now := s.clk.Now()
	lt := timezone.Resolve(now, snap.UTCOffsetMinutes, snap.DSTEnabled, snap.DSTRegion)

	resp := statusResponse{
		UTC:         now.Format(time.RFC3339),
		LocalTime:   lt.Clock(),
		LocalDate:   lt.Date(),
		DSTActive:   dstActive(now, snap),
		ExternalRTC: s.clk.HasExternal(),
		Settings:    snap,
	}
	if s.state != nil {
		vs := s.state.LastState()
		resp.State = string(vs.State)
		resp.Color = fmt.Sprintf("#%02x%02x%02x", vs.Color.R, vs.Color.G, vs.Color.B)
		resp.Brightness = vs.Brightness
		resp.Flashing = vs.FlashTick
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("Failed to encode status")
	}
}

func dstActive(now time.Time, snap settings.Settings) bool {
	if !snap.DSTEnabled {
		return false
	}
	rule, ok := timezone.RuleFor(snap.DSTRegion)
	return ok && timezone.IsDSTActive(now, rule)
}
