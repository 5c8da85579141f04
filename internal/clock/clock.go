package clock

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrUnavailable means no external clock is configured or detected.
	ErrUnavailable = errors.New("external clock unavailable")
	// ErrReadFailure means the external clock could not be read; the
	// internal clock keeps its previous value.
	ErrReadFailure = errors.New("external clock read failed")
	// ErrWriteFailure means a time correction could not be propagated to the
	// external clock; the internal clock is still updated.
	ErrWriteFailure = errors.New("external clock write failed")
)

// Source resolves the two backing clocks into one UTC instant. The internal
// clock is modeled as the host clock plus a correction offset; it always has
// a value (possibly wrong) and never fails. The external chip, when present,
// is the source of truth and overwrites the internal clock on sync.
type Source struct {
	mu       sync.Mutex
	offset   time.Duration
	external *DS3231
	wall     func() time.Time
}

// NewSource creates a clock source. external may be nil when no chip is
// configured or detected.
func NewSource(external *DS3231) *Source {
	return &Source{external: external, wall: time.Now}
}

// NewSourceAt is like NewSource but reads the host clock through wall.
// Tests inject a fixed function here.
func NewSourceAt(external *DS3231, wall func() time.Time) *Source {
	return &Source{external: external, wall: wall}
}

// Now returns the current UTC instant from the internal clock. This is the
// fast path used by every scheduling tick; it never touches the bus.
func (s *Source) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wall().UTC().Add(s.offset)
}

// HasExternal reports whether an external clock is configured.
func (s *Source) HasExternal() bool {
	return s.external != nil
}

// SyncFromExternal reads the external chip and overwrites the internal
// clock. On any failure the internal clock is left untouched.
func (s *Source) SyncFromExternal() error {
	if s.external == nil {
		return ErrUnavailable
	}

	t, err := s.external.ReadTime()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadFailure, err)
	}

	s.mu.Lock()
	s.offset = t.Sub(s.wall().UTC())
	s.mu.Unlock()
	return nil
}

// SetTime applies an operator-supplied correction. The internal clock is
// always updated; propagation to the external chip is best-effort and a
// failure there is reported as ErrWriteFailure without undoing the internal
// update.
func (s *Source) SetTime(t time.Time) error {
	t = t.UTC()

	s.mu.Lock()
	s.offset = t.Sub(s.wall().UTC())
	s.mu.Unlock()

	if s.external == nil {
		return nil
	}
	if err := s.external.WriteTime(t); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}
