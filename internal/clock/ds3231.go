package clock

import "time"

// DefaultAddr is the DS3231's fixed I2C device address.
const DefaultAddr byte = 0x68

// regSeconds is the first register of the 7-byte time block.
const regSeconds byte = 0x00

// DS3231 reads and writes the external clock chip through a Bus.
type DS3231 struct {
	bus  Bus
	addr byte
}

// NewDS3231 wraps a bus connection to the chip at the given address.
func NewDS3231(bus Bus, addr byte) *DS3231 {
	if addr == 0 {
		addr = DefaultAddr
	}
	return &DS3231{bus: bus, addr: addr}
}

// ReadTime reads the chip's time block and decodes it as a UTC instant.
func (d *DS3231) ReadTime() (time.Time, error) {
	var regs Registers
	if err := d.bus.ReadReg(d.addr, regSeconds, regs[:]); err != nil {
		return time.Time{}, err
	}
	return DecodeTime(regs)
}

// WriteTime encodes a UTC instant and writes the chip's time block.
func (d *DS3231) WriteTime(t time.Time) error {
	regs, err := EncodeTime(t)
	if err != nil {
		return err
	}
	return d.bus.WriteReg(d.addr, regSeconds, regs[:])
}
