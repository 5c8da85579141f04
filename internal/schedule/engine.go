// Package schedule turns local wall-clock time plus a configuration snapshot
// into a target LED state. It is pure arithmetic over injected time values:
// no clocks, no I/O, no shared state beyond the engine's own flash session,
// so every behavior is testable with fixed instants.
package schedule

import "time"

// State labels which phase of the day/night cycle is current.
type State string

const (
	// StateNight shows the stay color.
	StateNight State = "NIGHT"
	// StateTransition eases from stay color to wake color before wake time.
	StateTransition State = "TRANSITION"
	// StateDay shows the wake color, optionally ramping brightness.
	StateDay State = "DAY"
)

// Color is an RGB triple as handed to the LED layer, before brightness
// scaling and channel reordering.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Off is the all-dark color.
var Off = Color{}

// Config is one immutable evaluation snapshot of the schedule settings.
// Times of day are minutes since local midnight.
type Config struct {
	WakeMinute        int
	TransitionMinutes int
	BedtimeMinute     int
	BedtimeEnabled    bool

	StayColor Color
	WakeColor Color

	Brightness  int // base brightness percent, 0-100
	RampEnabled bool
	RampMinutes int
	RampStart   int // percent at the moment wake color is reached

	FlashEnabled  bool
	FlashDuration time.Duration
	FlashInterval time.Duration

	LEDsEnabled bool
}

// VisualState is the outcome of one evaluation.
type VisualState struct {
	// State is the logical phase, reported even while a flash overlay or the
	// LEDs-disabled override blanks the output.
	State State
	// Color is the final output color, after flash and disable overrides.
	Color Color
	// Brightness is the output brightness percentage.
	Brightness float64
	// FlashTick is true while a bedtime flash session is active.
	FlashTick bool
}

// Engine evaluates the schedule. It owns the single flash session; at most
// one exists at a time and it is cleared as soon as flashing becomes
// ineligible or the local minute moves off the bedtime minute.
type Engine struct {
	flashActive bool
	flashStart  time.Time
}

// NewEngine returns an engine with no active flash session.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate computes the visual state for the local minute of day m at the
// given instant. It always returns a usable state; configuration problems
// degrade (a non-positive transition window collapses to an instantaneous
// switch at wake time).
func (e *Engine) Evaluate(now time.Time, m int, cfg Config) VisualState {
	state, color := e.resolvePhase(m, cfg)

	brightness := float64(cfg.Brightness)
	if state == StateDay {
		brightness = rampBrightness(m, cfg)
	}

	vs := VisualState{State: state, Color: color, Brightness: brightness}

	if active, blank := e.flashPhase(now, m, cfg); active {
		vs.FlashTick = true
		if blank {
			vs.Color = Off
		}
	}

	if !cfg.LEDsEnabled {
		// Safety default: disabled LEDs always produce an all-off output,
		// whatever the computed state says.
		vs.Color = Off
		vs.Brightness = 0
		vs.FlashTick = false
	}

	return vs
}

// resolvePhase picks exactly one of NIGHT, TRANSITION, DAY for the minute.
func (e *Engine) resolvePhase(m int, cfg Config) (State, Color) {
	transitionStart := cfg.WakeMinute - cfg.TransitionMinutes

	if cfg.BedtimeEnabled && inNightPeriod(m, cfg.BedtimeMinute, transitionStart, cfg.WakeMinute) {
		return StateNight, cfg.StayColor
	}

	switch {
	case m >= cfg.WakeMinute:
		return StateDay, cfg.WakeColor
	case cfg.TransitionMinutes > 0 && m >= transitionStart:
		progress := float64(m-transitionStart) / float64(cfg.TransitionMinutes)
		return StateTransition, Blend(cfg.StayColor, cfg.WakeColor, progress)
	default:
		return StateNight, cfg.StayColor
	}
}

// inNightPeriod decides whether the minute falls in the bedtime-to-morning
// window. The bedtime-numerically-before-wake branch keeps the historical
// behavior: the night period is strictly between bedtime and the transition
// start, which is an empty window when the transition starts at or before
// bedtime. See the engine tests for the documented cases.
func inNightPeriod(m, bedtime, transitionStart, wake int) bool {
	if bedtime > wake {
		return m >= bedtime || m < transitionStart
	}
	return m >= bedtime && m < transitionStart
}

// flashPhase manages the bedtime flash session and reports whether a session
// is active and whether the current phase blanks the output. The phase is
// derived from the absolute time divided by the flash interval, so repeated
// evaluations within one interval agree on the phase.
func (e *Engine) flashPhase(now time.Time, m int, cfg Config) (active, blank bool) {
	if !cfg.FlashEnabled || !cfg.BedtimeEnabled || m != cfg.BedtimeMinute {
		e.clearFlash()
		return false, false
	}

	if !e.flashActive {
		e.flashActive = true
		e.flashStart = now
	}

	if now.Sub(e.flashStart) >= cfg.FlashDuration {
		e.clearFlash()
		return false, false
	}

	interval := cfg.FlashInterval
	if interval <= 0 {
		return true, false
	}
	phase := (now.UnixMilli() / interval.Milliseconds()) % 2
	return true, phase != 0
}

func (e *Engine) clearFlash() {
	e.flashActive = false
	e.flashStart = time.Time{}
}

// FlashActive reports whether a flash session is currently running.
func (e *Engine) FlashActive() bool {
	return e.flashActive
}
