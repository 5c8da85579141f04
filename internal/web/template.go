package web

import (
	"fmt"
	"html/template"
	"io"

	"github.com/dokzlo13/duskringd/internal/settings"
	"github.com/dokzlo13/duskringd/internal/timezone"
)

type zoneOption struct {
	Name     string
	Label    string
	Selected bool
}

type regionOption struct {
	Name     string
	Selected bool
}

type pageData struct {
	CurrentTime     string
	CurrentDate     string
	RTCActive       bool
	DSTActive       bool
	TransitionStart string
	State           string
	ColorOrder      string
	Settings        settings.Settings
	Zones           []zoneOption
	Regions         []regionOption
}

func (s *Server) pageData() pageData {
	snap := s.store.Snapshot()
	now := s.clk.Now()
	lt := timezone.Resolve(now, snap.UTCOffsetMinutes, snap.DSTEnabled, snap.DSTRegion)

	data := pageData{
		CurrentTime: lt.Clock(),
		CurrentDate: lt.Date(),
		RTCActive:   s.clk.HasExternal(),
		DSTActive:   dstActive(now, snap),
		ColorOrder:  string(snap.ColorOrder),
		Settings:    snap,
	}
	if s.state != nil {
		data.State = string(s.state.LastState().State)
	}

	if wake, err := settings.ParseClock(snap.WakeTime); err == nil {
		start := wake - snap.TransitionMinutes
		if start < 0 {
			start += 24 * 60
		}
		data.TransitionStart = fmt.Sprintf("%02d:%02d", start/60, start%60)
	}

	for _, name := range timezone.Zones() {
		offset, _ := timezone.OffsetMinutes(name)
		sign := "+"
		if offset < 0 {
			sign = "-"
			offset = -offset
		}
		data.Zones = append(data.Zones, zoneOption{
			Name:     name,
			Label:    fmt.Sprintf("%s (UTC%s%d:%02d)", name, sign, offset/60, offset%60),
			Selected: name == snap.Timezone,
		})
	}
	for _, name := range timezone.Regions() {
		data.Regions = append(data.Regions, regionOption{Name: name, Selected: name == snap.DSTRegion})
	}
	return data
}

func renderPage(w io.Writer, data pageData) error {
	return pageTemplate.Execute(w, data)
}

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<meta charset="UTF-8">
	<title>Bedtime Clock</title>
	<style>
		body { font-family: -apple-system, 'Segoe UI', Arial, sans-serif; max-width: 600px; margin: 20px auto; padding: 20px; background: #667eea; }
		.container { background: white; border-radius: 16px; padding: 30px; }
		h1 { text-align: center; margin-top: 0; }
		.clock { text-align: center; font-size: 48px; font-weight: bold; font-family: monospace; color: #667eea; }
		.date { text-align: center; color: #666; margin-bottom: 10px; }
		.status-bar { display: flex; justify-content: space-between; padding: 10px; background: #f8f9fa; border-radius: 8px; font-size: 14px; margin-bottom: 20px; }
		.group { margin: 20px 0; padding: 20px; background: #f8f9fa; border-radius: 12px; }
		.group h3 { margin-top: 0; font-size: 16px; text-transform: uppercase; }
		label { display: block; margin: 10px 0 4px; font-weight: 600; font-size: 14px; }
		input, select { width: 100%; padding: 10px; border: 2px solid #ddd; border-radius: 8px; box-sizing: border-box; }
		.check { display: flex; align-items: center; margin: 12px 0; }
		.check input { width: auto; margin-right: 10px; }
		.check label { margin: 0; }
		button { width: 100%; padding: 15px; background: #667eea; color: white; border: none; border-radius: 8px; font-size: 16px; cursor: pointer; margin-top: 10px; }
		.warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 12px; margin: 10px 0; border-radius: 4px; font-size: 14px; }
	</style>
</head>
<body>
<div class="container">
	<h1>Bedtime Clock</h1>
	<div class="clock">{{.CurrentTime}}</div>
	<div class="date">{{.CurrentDate}}</div>

	<div class="status-bar">
		<span>{{if .RTCActive}}DS3231 RTC active{{else}}Internal clock only{{end}}{{if .DSTActive}} (DST active){{end}}</span>
		<span>LEDs: {{if .Settings.LEDsEnabled}}ON{{else}}OFF{{end}}{{if .State}} &middot; {{.State}}{{end}}</span>
	</div>

	<form action="/update" method="POST">
		<div class="group">
			<h3>LED Configuration</h3>
			<div class="check">
				<input type="checkbox" name="leds_enabled" id="leds_enabled" {{if .Settings.LEDsEnabled}}checked{{end}}>
				<label for="leds_enabled">Enable LEDs</label>
			</div>
			<label>Number of LEDs in ring</label>
			<input type="number" name="num_leds" value="{{.Settings.NumLEDs}}" min="1" max="256" required>
			<label>LED type (color order)</label>
			<select name="led_color_order">
				<option value="RGB" {{if eq .ColorOrder "RGB"}}selected{{end}}>RGB (WS2812 standard)</option>
				<option value="GRB" {{if eq .ColorOrder "GRB"}}selected{{end}}>GRB (WS2812B/SK6812)</option>
				<option value="RGBW" {{if eq .ColorOrder "RGBW"}}selected{{end}}>RGBW (SK6812 RGBW)</option>
				<option value="GRBW" {{if eq .ColorOrder "GRBW"}}selected{{end}}>GRBW (WS2812 RGBW)</option>
			</select>
			<label>Brightness ({{.Settings.Brightness}}%)</label>
			<input type="range" name="brightness" value="{{.Settings.Brightness}}" min="0" max="100" step="5">
		</div>

		<div class="group">
			<h3>Timezone</h3>
			<label>Timezone</label>
			<select name="timezone">
				{{range .Zones}}<option value="{{.Name}}" {{if .Selected}}selected{{end}}>{{.Label}}</option>
				{{end}}
			</select>
			<label>DST region</label>
			<select name="dst_region">
				<option value="None" {{if eq .Settings.DSTRegion ""}}selected{{end}}>No DST</option>
				{{range .Regions}}<option value="{{.Name}}" {{if .Selected}}selected{{end}}>{{.Name}}</option>
				{{end}}
			</select>
			<div class="check">
				<input type="checkbox" name="dst_enabled" id="dst_enabled" {{if .Settings.DSTEnabled}}checked{{end}}>
				<label for="dst_enabled">Enable automatic DST</label>
			</div>
			<div class="check">
				<input type="checkbox" name="use_external_rtc" id="use_external_rtc" {{if .Settings.UseExternalRTC}}checked{{end}}>
				<label for="use_external_rtc">Use external RTC (DS3231)</label>
			</div>
		</div>

		<div class="group">
			<h3>Time</h3>
			<label>Current date (UTC)</label>
			<input type="date" name="current_date" value="">
			<label>Current time (UTC, 24-hour)</label>
			<input type="time" name="current_time" value="">
		</div>

		<div class="group">
			<h3>Wake-up</h3>
			<label>Wake-up time (local)</label>
			<input type="time" name="wake_time" value="{{.Settings.WakeTime}}" required>
			<label>Transition duration (minutes)</label>
			<input type="number" name="transition_minutes" value="{{.Settings.TransitionMinutes}}" min="0" max="120" required>
			<div class="check">
				<input type="checkbox" name="bedtime_enabled" id="bedtime_enabled" {{if .Settings.BedtimeEnabled}}checked{{end}}>
				<label for="bedtime_enabled">Enable bedtime (night mode)</label>
			</div>
			<label>Bedtime (local)</label>
			<input type="time" name="bedtime" value="{{.Settings.Bedtime}}" required>
			<div class="check">
				<input type="checkbox" name="brightness_ramp_enabled" id="brightness_ramp_enabled" {{if .Settings.RampEnabled}}checked{{end}}>
				<label for="brightness_ramp_enabled">Enable brightness ramp</label>
			</div>
			<label>Ramp duration (minutes)</label>
			<input type="number" name="brightness_ramp_minutes" value="{{.Settings.RampMinutes}}" min="1" max="60" required>
			<label>Ramp starting brightness ({{.Settings.RampStart}}%)</label>
			<input type="range" name="brightness_ramp_start" value="{{.Settings.RampStart}}" min="1" max="100" step="5">
			<div class="check">
				<input type="checkbox" name="flash_enabled" id="flash_enabled" {{if .Settings.FlashEnabled}}checked{{end}}>
				<label for="flash_enabled">Flash at bedtime</label>
			</div>
			<label>Flash duration (seconds)</label>
			<input type="number" name="flash_duration" value="{{.Settings.FlashDurationS}}" min="1" max="300" required>
			<label>Flash interval ({{.Settings.FlashIntervalMS}}ms)</label>
			<input type="range" name="flash_interval" value="{{.Settings.FlashIntervalMS}}" min="100" max="2000" step="100">
		</div>

		<div class="group">
			<h3>Colors</h3>
			<label>Stay-in-bed color</label>
			<input type="color" name="stay_color" value="{{.Settings.StayColor.Hex}}">
			<label>Wake-up color</label>
			<input type="color" name="wake_color" value="{{.Settings.WakeColor.Hex}}">
		</div>

		<button type="submit">Save all settings</button>
	</form>

	{{if not .Settings.LEDsEnabled}}<div class="warning">LEDs are currently OFF. Enable them in LED Configuration above.</div>{{end}}

	{{if .TransitionStart}}<p>Transition starts at {{.TransitionStart}}, wake at {{.Settings.WakeTime}}.</p>{{end}}
</div>
</body>
</html>
`))
