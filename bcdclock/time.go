// Package bcdclock keeps wall-clock time and a daily alarm in binary coded decimal.
package bcdclock

import (
	"fmt"

	"github.com/pkg/errors"
)

// positions in the wire format
const (
	secondsUnits = iota
	secondsTens
	minutesUnits
	minutesTens
	hoursUnits
	hoursTens
)

// Time is the 6 byte wire format:
// [seconds units, seconds tens, minutes units, minutes tens, hours units, hours tens]
// The (tens, units) pairs are views over the same bytes.
type Time [6]uint8

// FromClock builds a Time from plain decimal values, it does not validate
func FromClock(hours, minutes, seconds int) Time {
	var t Time
	t.SetHours(uint8(hours/10), uint8(hours%10))
	t.SetMinutes(uint8(minutes/10), uint8(minutes%10))
	t.SetSeconds(uint8(seconds/10), uint8(seconds%10))
	return t
}

// FromDigits takes display order digits [ht, hu, mt, mu], seconds are zero
func FromDigits(d [4]uint8) Time {
	var t Time
	t.SetHours(d[0], d[1])
	t.SetMinutes(d[2], d[3])
	return t
}

// ParseBytes decodes the wire format
func ParseBytes(b []byte) (Time, error) {
	var t Time
	if len(b) != len(t) {
		return t, errors.Errorf("bcd time needs %d bytes, got %d", len(t), len(b))
	}
	copy(t[:], b)
	return t, nil
}

func (t Time) Seconds() (tens, units uint8) { return t[secondsTens], t[secondsUnits] }
func (t Time) Minutes() (tens, units uint8) { return t[minutesTens], t[minutesUnits] }
func (t Time) Hours() (tens, units uint8)   { return t[hoursTens], t[hoursUnits] }

func (t *Time) SetSeconds(tens, units uint8) { t[secondsTens], t[secondsUnits] = tens, units }
func (t *Time) SetMinutes(tens, units uint8) { t[minutesTens], t[minutesUnits] = tens, units }
func (t *Time) SetHours(tens, units uint8)   { t[hoursTens], t[hoursUnits] = tens, units }

// Digits returns the display order [ht, hu, mt, mu]
func (t Time) Digits() [4]uint8 {
	return [4]uint8{t[hoursTens], t[hoursUnits], t[minutesTens], t[minutesUnits]}
}

// Valid checks every digit against its decimal bound, not the raw nibble range
func (t Time) Valid() bool {
	ht, hu := t.Hours()
	mt, mu := t.Minutes()
	st, su := t.Seconds()

	if ht > 2 || (ht == 2 && hu > 3) {
		return false
	}
	if mt > 5 || st > 5 {
		return false
	}
	return hu <= 9 && mu <= 9 && su <= 9
}

func (t Time) String() string {
	return fmt.Sprintf("%d%d:%d%d:%d%d",
		t[hoursTens], t[hoursUnits], t[minutesTens], t[minutesUnits], t[secondsTens], t[secondsUnits])
}

// increment one digit pair, true means the pair wrapped to 00
func bcdIncrement(units, tens *uint8, maxUnits, maxTens uint8) bool {
	*units++
	if *units > maxUnits {
		*units = 0
		*tens++
		if *tens > maxTens {
			*tens = 0
			return true
		}
	}
	return false
}

func (t *Time) isEndOfDay() bool {
	return *t == FromClock(23, 59, 59)
}

// advance by one second, carrying seconds -> minutes -> hours
func (t *Time) advance() {
	if !bcdIncrement(&t[secondsUnits], &t[secondsTens], 9, 5) {
		return
	}
	if !bcdIncrement(&t[minutesUnits], &t[minutesTens], 9, 5) {
		return
	}
	bcdIncrement(&t[hoursUnits], &t[hoursTens], 9, 2)
	if t[hoursTens]*10+t[hoursUnits] >= 24 {
		t.SetHours(0, 0)
	}
}

// addMinutes moves the hour:minute part forward, modulo one day
func (t *Time) addMinutes(minutes int) {
	mt, mu := t.Minutes()
	ht, hu := t.Hours()

	total := int(ht*10+hu)*60 + int(mt*10+mu) + minutes
	total %= 24 * 60

	hours, mins := total/60, total%60
	t.SetHours(uint8(hours/10), uint8(hours%10))
	t.SetMinutes(uint8(mins/10), uint8(mins%10))
}
