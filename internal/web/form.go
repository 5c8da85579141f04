package web

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dokzlo13/duskringd/internal/led"
	"github.com/dokzlo13/duskringd/internal/settings"
	"github.com/dokzlo13/duskringd/internal/timezone"
)

// decodeForm applies a submitted configuration form on top of the current
// record. Checkboxes follow HTML semantics: present means checked, absent
// means unchecked. If the form carries current_date/current_time, the
// returned *time.Time is the operator's UTC clock correction.
func decodeForm(form url.Values, current settings.Settings) (settings.Settings, *time.Time, error) {
	s := current

	s.LEDsEnabled = form.Has("leds_enabled")
	s.NumLEDs = intField(form, "num_leds", current.NumLEDs)
	s.Brightness = intField(form, "brightness", current.Brightness)
	if v := form.Get("led_color_order"); v != "" {
		order := led.ColorOrder(v)
		if !order.Valid() {
			return s, nil, fmt.Errorf("unknown color order %q", v)
		}
		s.ColorOrder = order
	}

	if v := form.Get("timezone"); v != "" {
		offset, ok := timezone.OffsetMinutes(v)
		if !ok {
			return s, nil, fmt.Errorf("unknown timezone %q", v)
		}
		s.Timezone = v
		s.UTCOffsetMinutes = offset
	}
	region := form.Get("dst_region")
	if region == "None" {
		region = ""
	}
	if region != "" {
		if _, ok := timezone.RuleFor(region); !ok {
			return s, nil, fmt.Errorf("unknown DST region %q", region)
		}
	}
	s.DSTRegion = region
	s.DSTEnabled = form.Has("dst_enabled")
	s.UseExternalRTC = form.Has("use_external_rtc")

	if v := form.Get("wake_time"); v != "" {
		if _, err := settings.ParseClock(v); err != nil {
			return s, nil, err
		}
		s.WakeTime = v
	}
	if v := form.Get("bedtime"); v != "" {
		if _, err := settings.ParseClock(v); err != nil {
			return s, nil, err
		}
		s.Bedtime = v
	}
	s.BedtimeEnabled = form.Has("bedtime_enabled")
	s.TransitionMinutes = intField(form, "transition_minutes", current.TransitionMinutes)

	if v := form.Get("stay_color"); v != "" {
		c, err := ParseHexColor(v)
		if err != nil {
			return s, nil, err
		}
		s.StayColor = c
	}
	if v := form.Get("wake_color"); v != "" {
		c, err := ParseHexColor(v)
		if err != nil {
			return s, nil, err
		}
		s.WakeColor = c
	}

	s.RampEnabled = form.Has("brightness_ramp_enabled")
	s.RampMinutes = intField(form, "brightness_ramp_minutes", current.RampMinutes)
	s.RampStart = intField(form, "brightness_ramp_start", current.RampStart)

	s.FlashEnabled = form.Has("flash_enabled")
	s.FlashDurationS = intField(form, "flash_duration", current.FlashDurationS)
	s.FlashIntervalMS = intField(form, "flash_interval", current.FlashIntervalMS)

	timeSet, err := decodeTimeSet(form)
	if err != nil {
		return s, nil, err
	}
	return s, timeSet, nil
}

// decodeTimeSet parses the operator's UTC date+time fields, if both present.
func decodeTimeSet(form url.Values) (*time.Time, error) {
	date := form.Get("current_date")
	clockStr := form.Get("current_time")
	if date == "" || clockStr == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02 15:04", date+" "+clockStr)
	if err != nil {
		return nil, fmt.Errorf("bad date/time %q %q", date, clockStr)
	}
	t = t.UTC()
	return &t, nil
}

// ParseHexColor parses "#rrggbb" into an RGB triple.
func ParseHexColor(s string) (settings.RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return settings.RGB{}, fmt.Errorf("bad color %q", s)
	}
	var c settings.RGB
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(s[1+i*2:3+i*2], 16, 8)
		if err != nil {
			return settings.RGB{}, fmt.Errorf("bad color %q", s)
		}
		c[i] = uint8(v)
	}
	return c, nil
}

func intField(form url.Values, key string, fallback int) int {
	v := form.Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
