package clock

import (
	"testing"
	"time"
)

func TestDecodeTime(t *testing.T) {
	tests := []struct {
		name string
		regs Registers
		want time.Time
	}{
		{
			name: "plain_fields",
			regs: Registers{0x56, 0x34, 0x12, 0x01, 0x30, 0x08, 0x26},
			want: time.Date(2026, time.August, 30, 12, 34, 56, 0, time.UTC),
		},
		{
			name: "oscillator_stop_flag_masked",
			regs: Registers{0xD6, 0x34, 0x12, 0x01, 0x30, 0x08, 0x26},
			want: time.Date(2026, time.August, 30, 12, 34, 56, 0, time.UTC),
		},
		{
			name: "hour_mode_bit_masked",
			regs: Registers{0x56, 0x34, 0x52, 0x01, 0x30, 0x08, 0x26},
			want: time.Date(2026, time.August, 30, 12, 34, 56, 0, time.UTC),
		},
		{
			name: "century_flag_masked",
			regs: Registers{0x56, 0x34, 0x12, 0x01, 0x30, 0x88, 0x26},
			want: time.Date(2026, time.August, 30, 12, 34, 56, 0, time.UTC),
		},
		{
			name: "midnight_new_year",
			regs: Registers{0x00, 0x00, 0x00, 0x04, 0x01, 0x01, 0x25},
			want: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeTime(tt.regs)
			if err != nil {
				t.Fatalf("DecodeTime: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("DecodeTime = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeTimeRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		regs Registers
	}{
		{"seconds_out_of_range", Registers{0x99, 0x00, 0x00, 0x01, 0x01, 0x01, 0x25}},
		{"minutes_out_of_range", Registers{0x00, 0x77, 0x00, 0x01, 0x01, 0x01, 0x25}},
		{"hours_out_of_range", Registers{0x00, 0x00, 0x25, 0x01, 0x01, 0x01, 0x25}},
		{"month_zero", Registers{0x00, 0x00, 0x00, 0x01, 0x01, 0x00, 0x25}},
		{"day_zero_cleared_chip", Registers{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTime(tt.regs); err == nil {
				t.Errorf("DecodeTime(%v) succeeded, want error", tt.regs)
			}
		})
	}
}

func TestEncodeTime(t *testing.T) {
	// 2026-08-30 is a Sunday, which the chip stores as weekday 1.
	got, err := EncodeTime(time.Date(2026, time.August, 30, 12, 34, 56, 0, time.UTC))
	if err != nil {
		t.Fatalf("EncodeTime: %v", err)
	}
	want := Registers{0x56, 0x34, 0x12, 0x01, 0x30, 0x08, 0x26}
	if got != want {
		t.Errorf("EncodeTime = %#v, want %#v", got, want)
	}
}

func TestEncodeTimeRejectsYearOutOfRange(t *testing.T) {
	for _, year := range []int{1999, 2100} {
		if _, err := EncodeTime(time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)); err == nil {
			t.Errorf("EncodeTime accepted year %d", year)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC),
		time.Date(2099, time.December, 31, 12, 0, 0, 0, time.UTC),
	}
	for _, in := range instants {
		regs, err := EncodeTime(in)
		if err != nil {
			t.Fatalf("EncodeTime(%v): %v", in, err)
		}
		out, err := DecodeTime(regs)
		if err != nil {
			t.Fatalf("DecodeTime(%v): %v", regs, err)
		}
		if !out.Equal(in) {
			t.Errorf("round trip %v -> %v", in, out)
		}
	}
}
