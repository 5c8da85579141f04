// Package led builds per-pixel frames for an addressable ring and defines
// the driver boundary. The real wire protocol lives behind the Strip
// interface; this package only decides what bytes each pixel should carry.
package led

import "github.com/dokzlo13/duskringd/internal/schedule"

// ColorOrder is the channel layout a strip expects. Four-channel layouts
// carry a white channel that this system always leaves at zero.
type ColorOrder string

const (
	OrderRGB  ColorOrder = "RGB"
	OrderGRB  ColorOrder = "GRB"
	OrderRGBW ColorOrder = "RGBW"
	OrderGRBW ColorOrder = "GRBW"
)

// Valid reports whether the order is one of the supported layouts.
func (o ColorOrder) Valid() bool {
	switch o {
	case OrderRGB, OrderGRB, OrderRGBW, OrderGRBW:
		return true
	}
	return false
}

// Channels returns the number of bytes per pixel for the order.
func (o ColorOrder) Channels() int {
	if o == OrderRGBW || o == OrderGRBW {
		return 4
	}
	return 3
}

// Frame is an ordered sequence of per-pixel channel values, one slice per
// pixel, already in the strip's channel order.
type Frame [][]byte

// Strip is the hardware driver boundary. A single Write flushes one whole
// frame to the device.
type Strip interface {
	Write(frame Frame) error
	Close() error
}

// BuildFrame renders count pixels of one color, scaled by the brightness
// percentage and laid out in the given channel order. Scaling truncates,
// matching the schedule engine's integer color math. An unknown order falls
// back to RGB.
func BuildFrame(c schedule.Color, brightness float64, count int, order ColorOrder) Frame {
	if brightness < 0 {
		brightness = 0
	} else if brightness > 100 {
		brightness = 100
	}
	scale := brightness / 100.0
	r := uint8(float64(c.R) * scale)
	g := uint8(float64(c.G) * scale)
	b := uint8(float64(c.B) * scale)

	frame := make(Frame, count)
	for i := range frame {
		frame[i] = pixel(r, g, b, order)
	}
	return frame
}

// OffFrame renders count all-dark pixels in the given order.
func OffFrame(count int, order ColorOrder) Frame {
	return BuildFrame(schedule.Off, 0, count, order)
}

func pixel(r, g, b uint8, order ColorOrder) []byte {
	switch order {
	case OrderGRB:
		return []byte{g, r, b}
	case OrderRGBW:
		return []byte{r, g, b, 0}
	case OrderGRBW:
		return []byte{g, r, b, 0}
	default:
		return []byte{r, g, b}
	}
}
