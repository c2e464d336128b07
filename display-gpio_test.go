package main

import (
	"strings"
	"testing"

	"dscheirer.com/alarmclock/digital"
	"dscheirer.com/alarmclock/screen"
	"gotest.tools/assert"
)

func TestGpioSegments(t *testing.T) {
	settings := testSettings()
	drv := digital.NewFakeDriver()
	drv.EnableAudit(true)
	gs := newGpioSegments(drv, settings)

	// everything starts dark, the digit lines idle high
	for _, name := range sSegmentLines {
		pm := settings.GetPinMap(name)
		assert.Assert(t, drv.IsOutput(pm.port, pm.bit), name)
		assert.Equal(t, drv.Level(pm.port, pm.bit), false, name)
	}
	for _, name := range sDigitLines {
		pm := settings.GetPinMap(name)
		assert.Equal(t, drv.Level(pm.port, pm.bit), true, name)
	}

	scr := screen.New(displayDigits, gs)
	scr.WriteBCD([]uint8{1, 2, 3, 4}, []bool{false, true, false, false})
	scr.Refresh()

	want := screen.Image(2) | screen.SegP
	for i, name := range sSegmentLines {
		pm := settings.GetPinMap(name)
		assert.Equal(t, drv.Level(pm.port, pm.bit), want&(1<<uint(i)) != 0, name)
	}
	for i, name := range sDigitLines {
		pm := settings.GetPinMap(name)
		// low lights the digit
		assert.Equal(t, drv.Level(pm.port, pm.bit), i != 1, name)
	}

	// the next digit only toggles what differs
	drv.ClearAudit()
	scr.Refresh()
	changed := (screen.Image(2) | screen.SegP) ^ screen.Image(3)
	writes := 0
	for _, line := range drv.Audit() {
		if strings.HasPrefix(line, "write") {
			writes++
		}
	}
	// every digit line goes off, then the changed segments, then digit 2 on
	assert.Equal(t, writes, displayDigits+bitCount(changed)+1)
}

func bitCount(mask uint8) int {
	n := 0
	for ; mask != 0; mask &= mask - 1 {
		n++
	}
	return n
}

func TestGpioSegmentsDigitRange(t *testing.T) {
	drv := digital.NewFakeDriver()
	drv.EnableAudit(true)
	gs := newGpioSegments(drv, testSettings())
	drv.ClearAudit()
	gs.EnableDigit(displayDigits)
	assert.Equal(t, len(drv.Audit()), 0)
}

func TestGpioSegmentsLongRun(t *testing.T) {
	rt, _ := testRuntime()
	drv := digital.NewFakeDriver()
	app := newClockApp(rt, newBoard(rt.settings, drv, newGpioSegments(drv, rt.settings)))
	for i := 0; i < 10000; i++ {
		app.onTick()
	}
	// nothing is kept per write unless asked for
	assert.Equal(t, len(drv.Audit()), 0)
}
