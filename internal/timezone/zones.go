// Package timezone converts UTC instants into local wall-clock time using a
// fixed per-zone UTC offset plus an optional regional DST rule. It is pure:
// every function takes its inputs explicitly and touches no shared state, so
// the tick loop can call it on every evaluation.
package timezone

import "sort"

// offsets maps timezone identifiers to their base (non-DST) offset from UTC
// in minutes. Zones outside this table are not supported.
var offsets = map[string]int{
	"UTC":  0,
	"GMT":  0,
	"EST":  -300,
	"EDT":  -240,
	"CST":  -360,
	"CDT":  -300,
	"MST":  -420,
	"MDT":  -360,
	"PST":  -480,
	"PDT":  -420,
	"BST":  60,
	"CET":  60,
	"CEST": 120,
	"EET":  120,
	"EEST": 180,
	"AEST": 600,
	"AEDT": 660,
}

// OffsetMinutes returns the base UTC offset for a zone identifier.
func OffsetMinutes(zone string) (int, bool) {
	off, ok := offsets[zone]
	return off, ok
}

// Zones returns all known zone identifiers in sorted order.
func Zones() []string {
	names := make([]string, 0, len(offsets))
	for name := range offsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
