package clock

import "fmt"

// FakeBus is an in-memory register file for tests.
type FakeBus struct {
	// Regs holds the device's register space.
	Regs [19]byte

	// ReadError, if set, is returned by ReadReg.
	ReadError error

	// WriteError, if set, is returned by WriteReg.
	WriteError error

	// Closed tracks whether Close was called.
	Closed bool
}

// NewFakeBus creates a zeroed FakeBus.
func NewFakeBus() *FakeBus {
	return &FakeBus{}
}

// ReadReg copies registers into buf.
func (f *FakeBus) ReadReg(addr, reg byte, buf []byte) error {
	if f.ReadError != nil {
		return f.ReadError
	}
	if int(reg)+len(buf) > len(f.Regs) {
		return fmt.Errorf("read past register space: reg=%#x len=%d", reg, len(buf))
	}
	copy(buf, f.Regs[reg:])
	return nil
}

// WriteReg copies buf into registers.
func (f *FakeBus) WriteReg(addr, reg byte, buf []byte) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	if int(reg)+len(buf) > len(f.Regs) {
		return fmt.Errorf("write past register space: reg=%#x len=%d", reg, len(buf))
	}
	copy(f.Regs[reg:], buf)
	return nil
}

// Close marks the bus as closed.
func (f *FakeBus) Close() error {
	f.Closed = true
	return nil
}
