// Package clock abstracts "the current UTC instant" over two backing clocks:
// the host's always-present internal clock and an optional battery-backed
// DS3231 chip on an I2C bus. The internal clock is the fast path read on
// every scheduling tick; the external chip is consulted only at startup and
// on a long resync interval.
package clock

// Bus is the byte-level register interface to the external clock chip.
// Implementations must bound each transfer with a timeout so a wedged bus
// cannot stall the tick loop; a slow or failed transfer surfaces as an error
// and the caller falls back to the internal clock.
type Bus interface {
	// ReadReg reads len(buf) bytes starting at register reg of the device.
	ReadReg(addr, reg byte, buf []byte) error

	// WriteReg writes buf starting at register reg of the device.
	WriteReg(addr, reg byte, buf []byte) error

	// Close releases the bus.
	Close() error
}
