//go:build !linux

package clock

import (
	"fmt"
	"time"
)

// OpenI2C is unavailable off Linux; the daemon runs with the internal clock
// only.
func OpenI2C(device string, timeout time.Duration) (Bus, error) {
	return nil, fmt.Errorf("i2c-dev is only supported on linux: %w", ErrUnavailable)
}
