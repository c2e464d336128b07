package main

import (
	"fmt"
	"testing"

	"dscheirer.com/alarmclock/digital"
	"dscheirer.com/alarmclock/screen"
	"gotest.tools/assert"
)

// lineLogger keeps every line instead of printing it
type lineLogger struct {
	lines []string
}

func (ll *lineLogger) Printf(format string, v ...interface{}) {
	ll.lines = append(ll.lines, fmt.Sprintf(format, v...))
}

func (ll *lineLogger) Println(v ...interface{}) {
	ll.lines = append(ll.lines, fmt.Sprint(v...))
}

func newTestLogDisplay(digits int) (*logDisplay, *lineLogger) {
	ld := newLogDisplay(digits)
	ll := &lineLogger{}
	ld.logger = ll
	return ld, ll
}

func scanAll(scr *screen.Screen, cycles int) {
	for i := 0; i < cycles*int(scr.Digits()); i++ {
		scr.Refresh()
	}
}

func TestLogDisplay(t *testing.T) {
	ld, ll := newTestLogDisplay(displayDigits)
	scr := screen.New(displayDigits, ld)

	scr.WriteBCD([]uint8{1, 2, 3, 4}, []bool{false, true, false, false})
	scanAll(scr, 2)
	assert.DeepEqual(t, ll.lines, []string{"12:34"})

	// points alone are not a change
	scr.SetDot(1, false)
	scanAll(scr, 1)
	assert.Equal(t, len(ll.lines), 1)

	// a digit with no image keeps what was there
	scr.WriteBCD([]uint8{screen.DigitDash, screen.DigitDash, 0, 42}, nil)
	scanAll(scr, 1)
	assert.DeepEqual(t, ll.lines, []string{"12:34", "--:04"})
}

func TestLogDisplayIgnoresBlinking(t *testing.T) {
	ld, ll := newTestLogDisplay(displayDigits)
	scr := screen.New(displayDigits, ld)
	assert.NilError(t, scr.FlashDigits(0, displayDigits-1, 1))

	scr.WriteBCD(dashes, nil)
	scanAll(scr, 1000)
	assert.DeepEqual(t, ll.lines, []string{"--:--"})

	assert.NilError(t, scr.FlashDigits(2, 3, 2))
	scr.WriteBCD([]uint8{0, 7, 1, 5}, nil)
	scanAll(scr, 1000)
	// at most one in-between picture while the minutes start dark
	assert.Assert(t, len(ll.lines) <= 3, "%v", ll.lines)
	assert.Equal(t, ll.lines[len(ll.lines)-1], "07:15")
}

func TestLogDisplayUnknownPattern(t *testing.T) {
	ld, ll := newTestLogDisplay(2)
	ld.UpdateSegments(screen.SegA | screen.SegD)
	ld.EnableDigit(1)
	ld.UpdateSegments(screen.Image(7))
	ld.EnableDigit(0)
	assert.DeepEqual(t, ll.lines, []string{"7?"})
}

func TestHeadlessClockStaysQuiet(t *testing.T) {
	rt, _ := testRuntime()
	drv := digital.NewFakeDriver()
	ld, ll := newTestLogDisplay(displayDigits)
	app := newClockApp(rt, newBoard(rt.settings, drv, ld))

	for i := 0; i < 10000; i++ {
		app.onTick()
	}
	assert.DeepEqual(t, ll.lines, []string{"--:--"})
	assert.Equal(t, len(drv.Audit()), 0)
}
