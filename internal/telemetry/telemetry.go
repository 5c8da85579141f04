// Package telemetry publishes diagnostic events to MQTT. Nothing in the
// scheduling core depends on delivery: a failed publish is logged and the
// tick loop keeps running.
package telemetry

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published by the daemon.
const (
	EventStartup      = "STARTUP"
	EventShutdown     = "SHUTDOWN"
	EventStateChanged = "STATE_CHANGED"
	EventClockError   = "CLOCK_ERROR"
)

// Event is one diagnostic message.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`

	// State fields, set for STATE_CHANGED.
	State      string  `json:"state,omitempty"`
	Color      string  `json:"color,omitempty"` // "#rrggbb"
	Brightness float64 `json:"brightness,omitempty"`
	Flashing   bool    `json:"flashing,omitempty"`

	// Detail carries free-form context (error text, shutdown reason).
	Detail string `json:"detail,omitempty"`
}

// NewEvent creates an event with a fresh id and timestamp.
func NewEvent(eventType string) Event {
	return Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Type:      eventType,
	}
}

// FormatPayload renders the event as its MQTT JSON payload.
func FormatPayload(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

// Publisher publishes events to the broker.
type Publisher interface {
	// Publish sends an event. Returns an error if publishing fails; it must
	// never crash the process.
	Publish(ev Event) error

	// Close disconnects from the broker.
	Close() error
}
