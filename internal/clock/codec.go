package clock

import (
	"fmt"
	"time"
)

// The DS3231 stores time as seven packed-decimal registers. Some registers
// carry flag or mode bits alongside the digits; those must be masked off on
// read and are left cleared on write.
const (
	maskSeconds = 0x7F // bit 7: oscillator stop flag
	maskMinutes = 0x7F // bit 7: unused
	maskHours   = 0x3F // bits 6-7: 12/24-hour mode
	maskWeekday = 0x07 // bits 3-7: unused
	maskDay     = 0x3F // bits 6-7: unused
	maskMonth   = 0x1F // bit 7: century flag
)

// Registers is the chip's 7-byte time block: seconds, minutes, hours,
// day-of-week (1-7), day-of-month, month, year offset from 2000.
type Registers [7]byte

// bcdToDec unpacks a two-digit packed-decimal byte.
func bcdToDec(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

// decToBCD packs a value 0-99 into a packed-decimal byte.
func decToBCD(v int) byte {
	return byte(v/10)<<4 | byte(v%10)
}

// DecodeTime interprets a register block as a UTC instant. Flag bits are
// masked before the digits are read; out-of-range fields (a cleared chip or
// corrupted transfer) return an error.
func DecodeTime(regs Registers) (time.Time, error) {
	sec := bcdToDec(regs[0] & maskSeconds)
	min := bcdToDec(regs[1] & maskMinutes)
	hour := bcdToDec(regs[2] & maskHours)
	day := bcdToDec(regs[4] & maskDay)
	month := bcdToDec(regs[5] & maskMonth)
	year := 2000 + bcdToDec(regs[6])

	if sec > 59 || min > 59 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid time fields %02d:%02d:%02d", hour, min, sec)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date fields %04d-%02d-%02d", year, month, day)
	}

	return time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC), nil
}

// EncodeTime packs a UTC instant into the chip's register layout. Flag and
// mode bits are written as zero, which selects 24-hour mode and clears the
// oscillator stop flag. Years outside 2000-2099 cannot be represented.
func EncodeTime(t time.Time) (Registers, error) {
	t = t.UTC()
	if t.Year() < 2000 || t.Year() > 2099 {
		return Registers{}, fmt.Errorf("year %d outside chip range 2000-2099", t.Year())
	}

	return Registers{
		decToBCD(t.Second()),
		decToBCD(t.Minute()),
		decToBCD(t.Hour()),
		byte(t.Weekday()) + 1, // chip counts weekdays 1-7
		decToBCD(t.Day()),
		decToBCD(int(t.Month())),
		decToBCD(t.Year() - 2000),
	}, nil
}
