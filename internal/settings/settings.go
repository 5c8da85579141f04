// Package settings defines the shared configuration record and its SQLite
// persistence. The scheduling core only ever sees immutable snapshots; the
// web layer is the single writer.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dokzlo13/duskringd/internal/led"
	"github.com/dokzlo13/duskringd/internal/schedule"
	"github.com/dokzlo13/duskringd/internal/timezone"
)

// ErrInvalidSchedule marks configuration values the engine cannot use
// directly; callers log it and run with the returned fallback instead.
var ErrInvalidSchedule = errors.New("invalid schedule configuration")

// RGB is a color as persisted, one 0-255 value per channel.
type RGB [3]uint8

// Color converts to the engine's color type.
func (c RGB) Color() schedule.Color {
	return schedule.Color{R: c[0], G: c[1], B: c[2]}
}

// Hex formats the color as "#rrggbb" for the web form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// Settings is the full configuration record. Field names match the JSON
// document persisted on disk.
type Settings struct {
	WakeTime       string `json:"wake_time"`
	Bedtime        string `json:"bedtime"`
	BedtimeEnabled bool   `json:"bedtime_enabled"`

	StayColor         RGB `json:"stay_color"`
	WakeColor         RGB `json:"wake_color"`
	TransitionMinutes int `json:"transition_minutes"`

	Timezone         string `json:"timezone"`
	UTCOffsetMinutes int    `json:"utc_offset_minutes"`
	DSTEnabled       bool   `json:"dst_enabled"`
	DSTRegion        string `json:"dst_region"` // empty means no DST region

	NumLEDs     int            `json:"num_leds"`
	LEDsEnabled bool           `json:"leds_enabled"`
	Brightness  int            `json:"brightness"`
	ColorOrder  led.ColorOrder `json:"led_color_order"`

	UseExternalRTC bool `json:"use_external_rtc"`

	RampEnabled bool `json:"brightness_ramp_enabled"`
	RampMinutes int  `json:"brightness_ramp_minutes"`
	RampStart   int  `json:"brightness_ramp_start"`

	FlashEnabled    bool `json:"flash_enabled"`
	FlashDurationS  int  `json:"flash_duration"`
	FlashIntervalMS int  `json:"flash_interval"`
}

// Defaults returns the factory configuration. LEDs ship disabled so a fresh
// device stays dark until someone configures it.
func Defaults() Settings {
	return Settings{
		WakeTime:          "07:00",
		Bedtime:           "21:00",
		BedtimeEnabled:    true,
		StayColor:         RGB{255, 0, 0},
		WakeColor:         RGB{0, 255, 0},
		TransitionMinutes: 30,
		Timezone:          "UTC",
		UTCOffsetMinutes:  0,
		DSTEnabled:        true,
		DSTRegion:         "",
		NumLEDs:           12,
		LEDsEnabled:       false,
		Brightness:        100,
		ColorOrder:        led.OrderRGB,
		UseExternalRTC:    true,
		RampEnabled:       false,
		RampMinutes:       15,
		RampStart:         10,
		FlashEnabled:      false,
		FlashDurationS:    10,
		FlashIntervalMS:   500,
	}
}

// Normalize clamps out-of-range values in place so a snapshot loaded from
// an older file or a hand-edited database is still usable.
func (s *Settings) Normalize() {
	if s.Brightness < 0 {
		s.Brightness = 0
	} else if s.Brightness > 100 {
		s.Brightness = 100
	}
	if s.TransitionMinutes < 0 {
		s.TransitionMinutes = 0
	}
	if s.NumLEDs < 1 {
		s.NumLEDs = 1
	}
	if !s.ColorOrder.Valid() {
		s.ColorOrder = led.OrderRGB
	}
	if s.RampMinutes < 1 {
		s.RampMinutes = 1
	}
	if s.RampStart < 1 {
		s.RampStart = 1
	} else if s.RampStart > 100 {
		s.RampStart = 100
	}
	if s.FlashDurationS < 1 {
		s.FlashDurationS = 1
	}
	if s.FlashIntervalMS < 1 {
		s.FlashIntervalMS = 1
	}
	if _, ok := timezone.OffsetMinutes(s.Timezone); !ok {
		s.Timezone = "UTC"
		s.UTCOffsetMinutes = 0
	}
}

// ParseClock converts an "HH:MM" time of day into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: time %q is not HH:MM", ErrInvalidSchedule, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidSchedule, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: bad minute in %q", ErrInvalidSchedule, s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: time %q out of range", ErrInvalidSchedule, s)
	}
	return hour*60 + minute, nil
}

// ScheduleConfig converts the record into one engine evaluation snapshot.
// Malformed times of day degrade to the default wake/bedtime so the tick
// loop always has a usable configuration; the error reports what was wrong.
func (s Settings) ScheduleConfig() (schedule.Config, error) {
	var firstErr error

	wake, err := ParseClock(s.WakeTime)
	if err != nil {
		firstErr = err
		wake, _ = ParseClock(Defaults().WakeTime)
	}
	bedtime, err := ParseClock(s.Bedtime)
	if err != nil {
		if firstErr == nil {
			firstErr = err
		}
		bedtime, _ = ParseClock(Defaults().Bedtime)
	}

	return schedule.Config{
		WakeMinute:        wake,
		TransitionMinutes: s.TransitionMinutes,
		BedtimeMinute:     bedtime,
		BedtimeEnabled:    s.BedtimeEnabled,
		StayColor:         s.StayColor.Color(),
		WakeColor:         s.WakeColor.Color(),
		Brightness:        s.Brightness,
		RampEnabled:       s.RampEnabled,
		RampMinutes:       s.RampMinutes,
		RampStart:         s.RampStart,
		FlashEnabled:      s.FlashEnabled,
		FlashDuration:     time.Duration(s.FlashDurationS) * time.Second,
		FlashInterval:     time.Duration(s.FlashIntervalMS) * time.Millisecond,
		LEDsEnabled:       s.LEDsEnabled,
	}, firstErr
}
