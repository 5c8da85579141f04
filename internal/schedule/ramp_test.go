package schedule

import "testing"

func rampConfig() Config {
	return Config{
		WakeMinute:  420, // 07:00
		Brightness:  100,
		RampEnabled: true,
		RampMinutes: 15,
		RampStart:   10,
	}
}

func TestRampBrightness(t *testing.T) {
	tests := []struct {
		name string
		m    int
		want float64
	}{
		{"at_wake_uses_start", 420, 10},
		{"after_ramp_uses_base", 435, 100},
		{"well_past_ramp", 600, 100},
		{"before_wake_uses_base", 419, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rampBrightness(tt.m, rampConfig()); got != tt.want {
				t.Errorf("rampBrightness(%d) = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestRampBrightnessMidRampStrictlyBetween(t *testing.T) {
	got := rampBrightness(427, rampConfig())
	if got <= 10 || got >= 100 {
		t.Errorf("rampBrightness(427) = %v, want strictly between 10 and 100", got)
	}
}

func TestRampBrightnessMonotonic(t *testing.T) {
	cfg := rampConfig()
	prev := rampBrightness(420, cfg)
	for m := 421; m < 435; m++ {
		cur := rampBrightness(m, cfg)
		if cur < prev {
			t.Fatalf("ramp decreased at minute %d: %v < %v", m, cur, prev)
		}
		prev = cur
	}
}

func TestRampBrightnessDisabled(t *testing.T) {
	cfg := rampConfig()
	cfg.RampEnabled = false
	if got := rampBrightness(427, cfg); got != 100 {
		t.Errorf("disabled ramp = %v, want base 100", got)
	}
}

func TestRampBrightnessZeroDuration(t *testing.T) {
	cfg := rampConfig()
	cfg.RampMinutes = 0
	if got := rampBrightness(420, cfg); got != 100 {
		t.Errorf("zero-duration ramp = %v, want base 100", got)
	}
}
