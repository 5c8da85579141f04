package timezone

import (
	"fmt"
	"time"
)

// LocalTime is broken-down wall-clock time after applying the zone offset
// and, if active, the DST offset to a UTC instant. It is always recomputed,
// never stored.
type LocalTime struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday time.Weekday
}

// MinuteOfDay returns the minute within the day, in [0, 1440).
func (lt LocalTime) MinuteOfDay() int {
	return lt.Hour*60 + lt.Minute
}

// Clock formats the time as "HH:MM".
func (lt LocalTime) Clock() string {
	return fmt.Sprintf("%02d:%02d", lt.Hour, lt.Minute)
}

// Date formats the date as "YYYY-MM-DD".
func (lt LocalTime) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", lt.Year, int(lt.Month), lt.Day)
}

// Resolve computes local time for a UTC instant. offsetMinutes is the base
// zone offset; when dstEnabled is true and region names a known rule whose
// window covers the instant, the rule's offset is added on top. An unknown
// region degrades to no DST rather than failing.
func Resolve(utc time.Time, offsetMinutes int, dstEnabled bool, region string) LocalTime {
	offset := offsetMinutes
	if dstEnabled {
		if rule, ok := RuleFor(region); ok && IsDSTActive(utc, rule) {
			offset += rule.OffsetMinutes
		}
	}

	local := utc.UTC().Add(time.Duration(offset) * time.Minute)
	return LocalTime{
		Year:    local.Year(),
		Month:   local.Month(),
		Day:     local.Day(),
		Hour:    local.Hour(),
		Minute:  local.Minute(),
		Second:  local.Second(),
		Weekday: local.Weekday(),
	}
}

// IsDSTActive reports whether the instant falls inside the rule's DST window
// for the instant's calendar year. If a boundary Sunday cannot be resolved
// (rule asks for an occurrence the month does not have), DST is treated as
// inactive for that evaluation.
func IsDSTActive(utc time.Time, rule Rule) bool {
	year := utc.UTC().Year()

	start, ok := ruleBoundary(year, rule.StartMonth, rule.StartWeek, rule.StartHour)
	if !ok {
		return false
	}
	end, ok := ruleBoundary(year, rule.EndMonth, rule.EndWeek, rule.EndHour)
	if !ok {
		return false
	}

	t := utc.UTC()
	if rule.StartMonth < rule.EndMonth {
		// Northern-hemisphere style: one contiguous window within the year.
		return !t.Before(start) && t.Before(end)
	}
	// Window wraps the year boundary (southern-hemisphere style).
	return !t.Before(start) || t.Before(end)
}

// ruleBoundary computes the UTC instant of the Nth (or last) Sunday of the
// month at the given hour.
func ruleBoundary(year int, month time.Month, week, hour int) (time.Time, bool) {
	day, ok := NthSunday(year, month, week)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC), true
}

// NthSunday returns the day-of-month of the Nth Sunday (week > 0) or the last
// Sunday (week == LastWeek) of the given month. ok is false when the month
// has no Nth Sunday.
func NthSunday(year int, month time.Month, week int) (int, bool) {
	last := daysIn(year, month)

	if week == LastWeek {
		for day := last; day >= 1; day-- {
			if weekdayOf(year, month, day) == time.Sunday {
				return day, true
			}
		}
		return 0, false
	}

	if week <= 0 {
		return 0, false
	}

	count := 0
	for day := 1; day <= last; day++ {
		if weekdayOf(year, month, day) == time.Sunday {
			count++
			if count == week {
				return day, true
			}
		}
	}
	return 0, false
}

func weekdayOf(year int, month time.Month, day int) time.Weekday {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
}

// daysIn returns the number of days in the month, leap years included.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
