//go:build linux

package clock

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// i2cSlave is the i2c-dev ioctl selecting the target device address.
const i2cSlave = 0x0703

// I2CBus talks to /dev/i2c-N through the Linux i2c-dev interface. Transfers
// are serialized and bounded by a timeout so a wedged bus degrades to an
// error instead of stalling the tick loop.
type I2CBus struct {
	mu      sync.Mutex
	fd      int
	timeout time.Duration
}

// OpenI2C opens an i2c-dev device node.
func OpenI2C(device string, timeout time.Duration) (Bus, error) {
	fd, err := unix.Open(device, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	if timeout <= 0 {
		timeout = time.Second
	}
	return &I2CBus{fd: fd, timeout: timeout}, nil
}

// ReadReg sets the register pointer and reads len(buf) bytes.
func (b *I2CBus) ReadReg(addr, reg byte, buf []byte) error {
	return b.transfer(addr, func() error {
		if _, err := unix.Write(b.fd, []byte{reg}); err != nil {
			return fmt.Errorf("write register pointer: %w", err)
		}
		n, err := unix.Read(b.fd, buf)
		if err != nil {
			return fmt.Errorf("read registers: %w", err)
		}
		if n != len(buf) {
			return fmt.Errorf("short read: %d of %d bytes", n, len(buf))
		}
		return nil
	})
}

// WriteReg writes buf starting at the given register.
func (b *I2CBus) WriteReg(addr, reg byte, buf []byte) error {
	return b.transfer(addr, func() error {
		out := append([]byte{reg}, buf...)
		if _, err := unix.Write(b.fd, out); err != nil {
			return fmt.Errorf("write registers: %w", err)
		}
		return nil
	})
}

func (b *I2CBus) transfer(addr byte, op func() error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := unix.IoctlSetInt(b.fd, i2cSlave, int(addr)); err != nil {
		return fmt.Errorf("select device %#x: %w", addr, err)
	}

	done := make(chan error, 1)
	go func() { done <- op() }()

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("i2c transfer timed out after %s", b.timeout)
	}
}

// Close releases the device node.
func (b *I2CBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return unix.Close(b.fd)
}
