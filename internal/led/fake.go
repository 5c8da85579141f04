package led

import "sync"

// FakeStrip records written frames for test assertions.
type FakeStrip struct {
	mu sync.Mutex

	// Frames contains every frame written, in order.
	Frames []Frame

	// WriteError, if set, is returned by Write.
	WriteError error

	// Closed tracks whether Close was called.
	Closed bool
}

// NewFakeStrip creates an empty FakeStrip.
func NewFakeStrip() *FakeStrip {
	return &FakeStrip{}
}

// Write records the frame.
func (f *FakeStrip) Write(frame Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Frames = append(f.Frames, frame)
	return nil
}

// Last returns the most recently written frame, or nil if none.
func (f *FakeStrip) Last() Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Frames) == 0 {
		return nil
	}
	return f.Frames[len(f.Frames)-1]
}

// Close marks the strip as closed.
func (f *FakeStrip) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// NullStrip discards frames. It stands in for the hardware driver when no
// device is configured.
type NullStrip struct{}

func (NullStrip) Write(Frame) error { return nil }
func (NullStrip) Close() error      { return nil }
