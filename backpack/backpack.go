// Package backpack drives an HT16K33 4-digit 7-segment backpack over I2C.
//
// The backpack keeps its own display RAM, so each digit the clock scans is
// latched into that RAM instead of being switched on and off. The bus is only
// written when the latched image actually changes.
package backpack

import (
	"fmt"
	"log"

	"dscheirer.com/alarmclock/i2c"
	"dscheirer.com/alarmclock/screen"
	"github.com/pkg/errors"
)

// oscillator
const oscOn = 0x21

// display on/off, blink rate in bits 2 and 1
const (
	displayOn  = 0x81
	displayOff = 0x80
)

// 0x0 -> 0xF brightness levels
const brightnessCmd = 0xE0

// blink rates
const (
	BlinkOff    = 0
	Blink2Hz    = 1
	Blink1Hz    = 2
	BlinkHalfHz = 3
)

// Digits is how many digits the backpack has
const Digits = 4

// one address byte, then two bytes per position, the colon sits at position 2
const displaySize = 1 + 5*2

const colonPos = 1 + 2*2

type Sevenseg struct {
	dev     *i2c.I2C
	display [displaySize]uint8
	written [displaySize]uint8
	pending uint8
	blink   byte
	dump    bool
	sim     bool
}

// Open starts the oscillator at full brightness and turns the display on
func Open(address uint8, bus int, simulated bool) (*Sevenseg, error) {
	dev, err := i2c.Open(address, bus, simulated)
	if err != nil {
		return nil, err
	}
	ss := &Sevenseg{dev: dev, sim: simulated}
	dev.Quiet(true)
	if err := dev.WriteByte(oscOn); err != nil {
		return nil, errors.Wrap(err, "backpack oscillator")
	}
	if err := ss.SetBrightness(15); err != nil {
		return nil, err
	}
	if err := ss.DisplayOn(true); err != nil {
		return nil, err
	}
	// force the first latch to be written
	ss.written[colonPos] = 0xff
	return ss, nil
}

// DebugDump logs an ASCII picture of every image written
func (ss *Sevenseg) DebugDump(on bool) {
	ss.dump = on
}

func (ss *Sevenseg) DisplayOn(on bool) error {
	val := byte(displayOn) | ss.blink<<1
	if !on {
		val = displayOff
	}
	return ss.dev.WriteByte(val)
}

func (ss *Sevenseg) SetBlinkRate(rate uint8) error {
	if rate > BlinkHalfHz {
		return errors.Errorf("bad blink rate: %d", rate)
	}
	ss.blink = rate
	return ss.DisplayOn(true)
}

func (ss *Sevenseg) SetBrightness(level uint8) error {
	if level > 15 {
		return errors.Errorf("bad brightness level: %d", level)
	}
	return ss.dev.WriteByte(brightnessCmd | level)
}

func (ss *Sevenseg) Close() error {
	ss.DisplayOn(false)
	return ss.dev.Close()
}

// DigitsOff leaves the RAM alone, a latched display has nothing to blank
// between digits.
func (ss *Sevenseg) DigitsOff() {}

func (ss *Sevenseg) UpdateSegments(mask uint8) {
	ss.pending = mask
}

// EnableDigit latches the pending segments into digit index. The decimal point
// of digit 1 also drives the centre colon.
func (ss *Sevenseg) EnableDigit(index uint8) {
	if index >= Digits {
		return
	}
	ss.display[position(index)] = ss.pending
	if index == 1 {
		if ss.pending&screen.SegP != 0 {
			ss.display[colonPos] = 0x02
		} else {
			ss.display[colonPos] = 0
		}
	}
	if err := ss.flush(); err != nil {
		log.Printf("backpack: %s", err.Error())
	}
}

// Segments is the latched pattern for a digit
func (ss *Sevenseg) Segments(index uint8) uint8 {
	if index >= Digits {
		return 0
	}
	return ss.display[position(index)]
}

// Colon reports the latched colon
func (ss *Sevenseg) Colon() bool {
	return ss.display[colonPos] != 0
}

func (ss *Sevenseg) flush() error {
	if ss.written == ss.display {
		return nil
	}
	ss.written = ss.display
	if ss.dump {
		log.Println(ss.dumpDisplay())
	}
	// byte 0 is the RAM address, always 0
	_, err := ss.dev.Write(ss.display[:])
	return err
}

// skip the colon slot after digit 1
func position(digit uint8) uint8 {
	if digit > 1 {
		digit++
	}
	return 1 + digit*2
}

func (ss *Sevenseg) lit(digit uint8, seg uint8) bool {
	return ss.display[position(digit)]&seg != 0
}

func (ss *Sevenseg) dumpDisplay() string {
	//  -     -      -     -
	// | |   | |  . | |   | |
	//  -     -      -     -
	// | |   | |  . | |   | |
	//  -  .  -  .   -  .  -  .
	colon := " "
	if ss.Colon() {
		colon = "."
	}
	pick := func(on bool, yes, no string) string {
		if on {
			return yes
		}
		return no
	}

	var top, upper, mid, lower, bot string
	for i := uint8(0); i < Digits; i++ {
		sep := ""
		if i == 2 {
			sep = " "
			upper += colon
			lower += colon
			top += sep
			mid += sep
			bot += sep
		}
		top += pick(ss.lit(i, screen.SegA), "  -   ", "      ")
		upper += pick(ss.lit(i, screen.SegF), " |", "  ") + pick(ss.lit(i, screen.SegB), " |  ", "    ")
		mid += pick(ss.lit(i, screen.SegG), "  -   ", "      ")
		lower += pick(ss.lit(i, screen.SegE), " |", "  ") + pick(ss.lit(i, screen.SegC), " |  ", "    ")
		bot += pick(ss.lit(i, screen.SegD), "  -  ", "     ") + pick(ss.lit(i, screen.SegP), ".", " ")
	}
	return fmt.Sprintf("\n%s\n%s\n%s\n%s\n%s\n", top, upper, mid, lower, bot)
}
