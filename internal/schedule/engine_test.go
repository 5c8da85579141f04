package schedule

import (
	"testing"
	"time"
)

var (
	red   = Color{R: 255, G: 0, B: 0}
	green = Color{R: 0, G: 255, B: 0}
)

// baseConfig is the reference schedule: wake 07:00, bedtime 21:00,
// 30-minute transition.
func baseConfig() Config {
	return Config{
		WakeMinute:        420,
		TransitionMinutes: 30,
		BedtimeMinute:     1260,
		BedtimeEnabled:    true,
		StayColor:         red,
		WakeColor:         green,
		Brightness:        100,
		LEDsEnabled:       true,
	}
}

func evalAt(e *Engine, m int, cfg Config) VisualState {
	return e.Evaluate(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), m, cfg)
}

func TestStatePartitionCoversWholeDay(t *testing.T) {
	cfg := baseConfig()
	e := NewEngine()

	for m := 0; m < 1440; m++ {
		vs := evalAt(e, m, cfg)

		var want State
		switch {
		case m >= 1260 || m < 390:
			want = StateNight
		case m < 420:
			want = StateTransition
		default:
			want = StateDay
		}
		if vs.State != want {
			t.Fatalf("minute %d: state = %s, want %s", m, vs.State, want)
		}
	}
}

func TestScheduleScenario(t *testing.T) {
	cfg := baseConfig()

	tests := []struct {
		name      string
		m         int
		wantState State
		wantColor *Color
	}{
		{"0630_transition_start_still_red", 390, StateTransition, &red},
		{"0700_exactly_green", 420, StateDay, &green},
		{"2100_bedtime_back_to_red", 1260, StateNight, &red},
		{"midnight_night", 0, StateNight, &red},
		{"2330_night", 1410, StateNight, &red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := evalAt(NewEngine(), tt.m, cfg)
			if vs.State != tt.wantState {
				t.Errorf("state = %s, want %s", vs.State, tt.wantState)
			}
			if tt.wantColor != nil && vs.Color != *tt.wantColor {
				t.Errorf("color = %+v, want %+v", vs.Color, *tt.wantColor)
			}
		})
	}
}

func TestTransitionMidpointIsBlended(t *testing.T) {
	vs := evalAt(NewEngine(), 405, baseConfig()) // 06:45, halfway
	if vs.State != StateTransition {
		t.Fatalf("state = %s, want TRANSITION", vs.State)
	}
	if vs.Color == red || vs.Color == green {
		t.Errorf("midpoint color %+v should be partway between endpoints", vs.Color)
	}
	want := Color{R: 127, G: 127, B: 0}
	if vs.Color != want {
		t.Errorf("midpoint color = %+v, want %+v", vs.Color, want)
	}
}

func TestZeroTransitionSwitchesInstantly(t *testing.T) {
	cfg := baseConfig()
	cfg.TransitionMinutes = 0

	if vs := evalAt(NewEngine(), 419, cfg); vs.State != StateNight {
		t.Errorf("minute before wake: state = %s, want NIGHT", vs.State)
	}
	if vs := evalAt(NewEngine(), 420, cfg); vs.State != StateDay {
		t.Errorf("wake minute: state = %s, want DAY", vs.State)
	}
}

// TestNightPeriodBedtimeBeforeWake pins down the historical handling of a
// bedtime that is numerically before wake time: the night period is the
// window from bedtime up to the transition start, and it is empty whenever
// the transition starts at or before bedtime. This mirrors the device's
// long-standing behavior and is deliberately not "fixed" to an overnight
// wraparound.
func TestNightPeriodBedtimeBeforeWake(t *testing.T) {
	cfg := baseConfig()
	cfg.BedtimeMinute = 300 // 05:00, before 07:00 wake

	tests := []struct {
		name string
		m    int
		want State
	}{
		{"inside_bedtime_window", 350, StateNight},
		{"before_bedtime_plain_night", 200, StateNight},
		{"transition_still_runs", 400, StateTransition},
		{"day_after_wake", 500, StateDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if vs := evalAt(NewEngine(), tt.m, cfg); vs.State != tt.want {
				t.Errorf("minute %d: state = %s, want %s", tt.m, vs.State, tt.want)
			}
		})
	}

	// Transition start at or before bedtime makes the window empty: the
	// minute right after bedtime already belongs to the transition.
	cfg.BedtimeMinute = 400
	if vs := evalAt(NewEngine(), 405, cfg); vs.State != StateTransition {
		t.Errorf("empty night window: state = %s, want TRANSITION", vs.State)
	}
}

func TestDayBrightnessUsesRamp(t *testing.T) {
	cfg := baseConfig()
	cfg.RampEnabled = true
	cfg.RampMinutes = 15
	cfg.RampStart = 10

	if vs := evalAt(NewEngine(), 420, cfg); vs.Brightness != 10 {
		t.Errorf("brightness at wake = %v, want ramp start 10", vs.Brightness)
	}
	if vs := evalAt(NewEngine(), 435, cfg); vs.Brightness != 100 {
		t.Errorf("brightness after ramp = %v, want base 100", vs.Brightness)
	}
	// Ramp never applies before wake.
	if vs := evalAt(NewEngine(), 405, cfg); vs.Brightness != 100 {
		t.Errorf("brightness during transition = %v, want base 100", vs.Brightness)
	}
}

func TestLEDsDisabledForcesAllOff(t *testing.T) {
	cfg := baseConfig()
	cfg.LEDsEnabled = false

	for _, m := range []int{0, 390, 405, 420, 1260} {
		vs := evalAt(NewEngine(), m, cfg)
		if vs.Color != Off {
			t.Errorf("minute %d: color = %+v, want all off", m, vs.Color)
		}
		if vs.Brightness != 0 {
			t.Errorf("minute %d: brightness = %v, want 0", m, vs.Brightness)
		}
	}
}

func flashConfig() Config {
	cfg := baseConfig()
	cfg.FlashEnabled = true
	cfg.FlashDuration = 10 * time.Second
	cfg.FlashInterval = 500 * time.Millisecond
	return cfg
}

func TestFlashSessionLifecycle(t *testing.T) {
	cfg := flashConfig()
	e := NewEngine()
	t0 := time.UnixMilli(1_700_000_000_000)

	// At bedtime a session starts.
	vs := e.Evaluate(t0, 1260, cfg)
	if !vs.FlashTick {
		t.Fatal("expected flash session at bedtime minute")
	}
	if !e.FlashActive() {
		t.Fatal("FlashActive() = false during session")
	}

	// Session survives within the duration.
	if vs := e.Evaluate(t0.Add(5*time.Second), 1260, cfg); !vs.FlashTick {
		t.Error("expected session alive at 5s")
	}

	// Session expires after the configured duration.
	if vs := e.Evaluate(t0.Add(11*time.Second), 1260, cfg); vs.FlashTick {
		t.Error("expected session expired at 11s")
	}
	if e.FlashActive() {
		t.Error("FlashActive() = true after expiry")
	}
}

func TestFlashSessionClearedWhenMinuteMoves(t *testing.T) {
	cfg := flashConfig()
	e := NewEngine()
	t0 := time.UnixMilli(1_700_000_000_000)

	e.Evaluate(t0, 1260, cfg)
	if vs := e.Evaluate(t0.Add(time.Second), 1261, cfg); vs.FlashTick {
		t.Error("session must clear once the minute leaves bedtime")
	}
	if e.FlashActive() {
		t.Error("FlashActive() = true after minute moved")
	}
}

func TestFlashRequiresBedtimeEnabled(t *testing.T) {
	cfg := flashConfig()
	cfg.BedtimeEnabled = false
	e := NewEngine()
	t0 := time.UnixMilli(1_700_000_000_000)

	if vs := e.Evaluate(t0, 1260, cfg); vs.FlashTick {
		t.Error("flash must not run with bedtime disabled")
	}
}

func TestFlashPhaseStableWithinInterval(t *testing.T) {
	cfg := flashConfig()
	e := NewEngine()
	// Aligned to an even 500ms slot so the first phase is "on".
	t0 := time.UnixMilli(1_700_000_000_000)

	a := e.Evaluate(t0, 1260, cfg)
	b := e.Evaluate(t0.Add(200*time.Millisecond), 1260, cfg)
	if (a.Color == Off) != (b.Color == Off) {
		t.Error("evaluations 200ms apart must share a flash phase")
	}

	c := e.Evaluate(t0.Add(600*time.Millisecond), 1260, cfg)
	if (a.Color == Off) == (c.Color == Off) {
		t.Error("evaluations 600ms apart must be in different flash phases")
	}
}

func TestFlashAlternatesColorAndOff(t *testing.T) {
	cfg := flashConfig()
	e := NewEngine()
	t0 := time.UnixMilli(1_700_000_000_000) // even slot: on-phase

	on := e.Evaluate(t0, 1260, cfg)
	if on.Color != red {
		t.Errorf("on-phase color = %+v, want stay color %+v", on.Color, red)
	}
	off := e.Evaluate(t0.Add(500*time.Millisecond), 1260, cfg)
	if off.Color != Off {
		t.Errorf("off-phase color = %+v, want all off", off.Color)
	}
}
