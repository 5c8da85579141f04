package schedule

// rampBrightness computes the brightness percentage for a minute of day.
// Outside the ramp window (disabled, before wake, or past wake+duration) the
// base brightness applies unchanged. Inside it, progress through the window
// is eased with the same cubic curve as the color transition and used to
// interpolate from the ramp's starting percentage up to the base.
func rampBrightness(m int, cfg Config) float64 {
	base := float64(cfg.Brightness)
	if !cfg.RampEnabled || cfg.RampMinutes <= 0 {
		return base
	}
	if m < cfg.WakeMinute || m >= cfg.WakeMinute+cfg.RampMinutes {
		return base
	}

	progress := float64(m-cfg.WakeMinute) / float64(cfg.RampMinutes)
	eased := easeInOutCubic(progress)
	start := float64(cfg.RampStart)
	return start + (base-start)*eased
}
