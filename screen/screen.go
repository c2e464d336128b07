// Package screen multiplexes a row of 7-segment digits, one digit per refresh,
// with independent blink windows for the digits and the decimal points.
package screen

import (
	"github.com/pkg/errors"
)

// MaxDigits is the most digits a screen can scan
const MaxDigits = 8

// segment bits
const (
	SegA uint8 = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
	SegP
)

// DigitDash renders a single middle bar, any code past it renders blank
const DigitDash = 10

var images = [...]uint8{
	SegA | SegB | SegC | SegD | SegE | SegF,        // 0
	SegB | SegC,                                    // 1
	SegA | SegB | SegD | SegE | SegG,               // 2
	SegA | SegB | SegC | SegD | SegG,               // 3
	SegB | SegC | SegF | SegG,                      // 4
	SegA | SegC | SegD | SegF | SegG,               // 5
	SegA | SegC | SegD | SegE | SegF | SegG,        // 6
	SegA | SegB | SegC,                             // 7
	SegA | SegB | SegC | SegD | SegE | SegF | SegG, // 8
	SegA | SegB | SegC | SegD | SegF | SegG,        // 9
	SegG,                                           // dash
}

// ErrFlashWindow is returned for a blink window outside the screen
var ErrFlashWindow = errors.New("flash window out of range")

// Driver lights the physical digits
type Driver interface {
	DigitsOff()
	UpdateSegments(mask uint8)
	EnableDigit(index uint8)
}

// Image maps a digit code to its segment pattern
func Image(code uint8) uint8 {
	if int(code) >= len(images) {
		return 0
	}
	return images[code]
}

type flashWindow struct {
	from, to  uint8
	frequency uint32
	count     uint32
}

// advance once per full scan, only called when the index wraps to 0
func (f *flashWindow) advance() {
	if f.frequency == 0 {
		return
	}
	f.count = (f.count + 1) % f.frequency
}

// blanked is true when index falls in the "off" half of the period
func (f *flashWindow) blanked(index uint8) bool {
	if f.frequency == 0 {
		return false
	}
	return f.count < f.frequency/2 && index >= f.from && index <= f.to
}

type Screen struct {
	driver   Driver
	digits   uint8
	segments [MaxDigits]uint8
	dots     [MaxDigits]bool
	index    uint8

	digitFlash flashWindow
	dotFlash   flashWindow
}

// New clamps digits to [1, MaxDigits], buffers start blank with no blinking
func New(digits uint8, driver Driver) *Screen {
	if digits > MaxDigits {
		digits = MaxDigits
	}
	if digits == 0 {
		digits = 1
	}
	return &Screen{driver: driver, digits: digits}
}

// Digits is the clamped digit count
func (s *Screen) Digits() uint8 {
	return s.digits
}

// WriteBCD loads digit codes through the segment table. Positions past
// len(values) are cleared. A nil dots slice leaves the dot buffer alone.
func (s *Screen) WriteBCD(values []uint8, dots []bool) {
	for i := uint8(0); i < s.digits; i++ {
		if int(i) < len(values) {
			s.segments[i] = Image(values[i])
		} else {
			s.segments[i] = 0
		}
	}
	if dots == nil {
		return
	}
	for i := uint8(0); i < s.digits; i++ {
		s.dots[i] = int(i) < len(dots) && dots[i]
	}
}

// Refresh moves the scan to the next digit. Call once per tick.
func (s *Screen) Refresh() {
	s.driver.DigitsOff()
	s.index = (s.index + 1) % s.digits
	if s.index == 0 {
		s.digitFlash.advance()
		s.dotFlash.advance()
	}

	segments := s.segments[s.index]
	if s.digitFlash.blanked(s.index) {
		segments = 0
	}
	if s.dots[s.index] && !s.dotFlash.blanked(s.index) {
		segments |= SegP
	}

	s.driver.UpdateSegments(segments)
	s.driver.EnableDigit(s.index)
}

func (s *Screen) checkWindow(from, to uint8) error {
	if from > to || to >= s.digits {
		return errors.Wrapf(ErrFlashWindow, "from %d to %d on %d digits", from, to, s.digits)
	}
	return nil
}

// FlashDigits blinks digits [from, to], each half of the period lasting
// divisor full scans. A zero divisor stops blinking.
func (s *Screen) FlashDigits(from, to uint8, divisor uint16) error {
	if err := s.checkWindow(from, to); err != nil {
		return err
	}
	s.digitFlash = flashWindow{from: from, to: to, frequency: 2 * uint32(divisor)}
	return nil
}

// FlashDots is FlashDigits for the decimal points
func (s *Screen) FlashDots(from, to uint8, divisor uint16) error {
	if err := s.checkWindow(from, to); err != nil {
		return err
	}
	s.dotFlash = flashWindow{from: from, to: to, frequency: 2 * uint32(divisor)}
	return nil
}

func (s *Screen) SetDot(position uint8, on bool) {
	if position >= s.digits {
		return
	}
	s.dots[position] = on
}

func (s *Screen) ToggleDot(position uint8) {
	if position >= s.digits {
		return
	}
	s.dots[position] = !s.dots[position]
}

// Dot reports the stored dot, ignoring blinking
func (s *Screen) Dot(position uint8) bool {
	if position >= s.digits {
		return false
	}
	return s.dots[position]
}
