package timezone

import (
	"sort"
	"time"
)

// LastWeek selects the last occurrence of the anchor weekday in a month.
const LastWeek = -1

// Rule describes when a region enters and leaves Daylight Saving Time.
// Weeks are counted as occurrences of Sunday within the month; transitions
// in all supported regions are anchored to Sunday.
type Rule struct {
	StartMonth time.Month
	StartWeek  int
	StartHour  int
	EndMonth   time.Month
	EndWeek    int
	EndHour    int

	// OffsetMinutes is added to the base zone offset while DST is active.
	OffsetMinutes int
}

var rules = map[string]Rule{
	"US": {
		StartMonth: time.March, StartWeek: 2, StartHour: 2,
		EndMonth: time.November, EndWeek: 1, EndHour: 2,
		OffsetMinutes: 60,
	},
	"EU": {
		StartMonth: time.March, StartWeek: LastWeek, StartHour: 1,
		EndMonth: time.October, EndWeek: LastWeek, EndHour: 1,
		OffsetMinutes: 60,
	},
	"UK": {
		StartMonth: time.March, StartWeek: LastWeek, StartHour: 1,
		EndMonth: time.October, EndWeek: LastWeek, EndHour: 1,
		OffsetMinutes: 60,
	},
	"AU": {
		StartMonth: time.October, StartWeek: 1, StartHour: 2,
		EndMonth: time.April, EndWeek: 1, EndHour: 3,
		OffsetMinutes: 60,
	},
}

// RuleFor returns the DST rule for a region tag (US, EU, UK, AU).
func RuleFor(region string) (Rule, bool) {
	r, ok := rules[region]
	return r, ok
}

// Regions returns all known DST region tags in sorted order.
func Regions() []string {
	tags := make([]string, 0, len(rules))
	for tag := range rules {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
