package led

import (
	"bytes"
	"testing"

	"github.com/dokzlo13/duskringd/internal/schedule"
)

func TestBuildFrameChannelOrders(t *testing.T) {
	c := schedule.Color{R: 10, G: 20, B: 30}

	tests := []struct {
		order ColorOrder
		want  []byte
	}{
		{OrderRGB, []byte{10, 20, 30}},
		{OrderGRB, []byte{20, 10, 30}},
		{OrderRGBW, []byte{10, 20, 30, 0}},
		{OrderGRBW, []byte{20, 10, 30, 0}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			frame := BuildFrame(c, 100, 3, tt.order)
			if len(frame) != 3 {
				t.Fatalf("frame has %d pixels, want 3", len(frame))
			}
			for i, px := range frame {
				if !bytes.Equal(px, tt.want) {
					t.Errorf("pixel %d = %v, want %v", i, px, tt.want)
				}
			}
		})
	}
}

func TestBuildFrameBrightnessTruncates(t *testing.T) {
	// 255 * 0.5 = 127.5, which truncates to 127.
	frame := BuildFrame(schedule.Color{R: 255, G: 255, B: 255}, 50, 1, OrderRGB)
	if want := []byte{127, 127, 127}; !bytes.Equal(frame[0], want) {
		t.Errorf("pixel = %v, want %v", frame[0], want)
	}
}

func TestBuildFrameBrightnessClamped(t *testing.T) {
	c := schedule.Color{R: 100, G: 100, B: 100}

	if frame := BuildFrame(c, -20, 1, OrderRGB); !bytes.Equal(frame[0], []byte{0, 0, 0}) {
		t.Errorf("negative brightness pixel = %v, want all zero", frame[0])
	}
	if frame := BuildFrame(c, 250, 1, OrderRGB); !bytes.Equal(frame[0], []byte{100, 100, 100}) {
		t.Errorf("over-range brightness pixel = %v, want full color", frame[0])
	}
}

func TestBuildFrameUnknownOrderFallsBackToRGB(t *testing.T) {
	frame := BuildFrame(schedule.Color{R: 1, G: 2, B: 3}, 100, 1, "BGR")
	if want := []byte{1, 2, 3}; !bytes.Equal(frame[0], want) {
		t.Errorf("pixel = %v, want RGB fallback %v", frame[0], want)
	}
}

func TestOffFrame(t *testing.T) {
	frame := OffFrame(4, OrderGRBW)
	if len(frame) != 4 {
		t.Fatalf("frame has %d pixels, want 4", len(frame))
	}
	for i, px := range frame {
		if !bytes.Equal(px, []byte{0, 0, 0, 0}) {
			t.Errorf("pixel %d = %v, want all zero", i, px)
		}
	}
}

func TestColorOrderHelpers(t *testing.T) {
	for _, o := range []ColorOrder{OrderRGB, OrderGRB, OrderRGBW, OrderGRBW} {
		if !o.Valid() {
			t.Errorf("%s reported invalid", o)
		}
	}
	if ColorOrder("BGR").Valid() {
		t.Error("BGR reported valid")
	}
	if OrderRGB.Channels() != 3 || OrderGRB.Channels() != 3 {
		t.Error("three-channel orders must report 3")
	}
	if OrderRGBW.Channels() != 4 || OrderGRBW.Channels() != 4 {
		t.Error("four-channel orders must report 4")
	}
}

func TestFakeStripRecordsFrames(t *testing.T) {
	strip := NewFakeStrip()
	if strip.Last() != nil {
		t.Error("Last() on empty strip should be nil")
	}

	a := OffFrame(2, OrderRGB)
	b := BuildFrame(schedule.Color{R: 255}, 100, 2, OrderRGB)
	if err := strip.Write(a); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := strip.Write(b); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if len(strip.Frames) != 2 {
		t.Fatalf("recorded %d frames, want 2", len(strip.Frames))
	}
	if !bytes.Equal(strip.Last()[0], []byte{255, 0, 0}) {
		t.Errorf("Last() pixel = %v, want red", strip.Last()[0])
	}
	if err := strip.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !strip.Closed {
		t.Error("Closed not set")
	}
}
