package main

import (
	"dscheirer.com/alarmclock/digital"
)

// gpioSegments multiplexes the digits directly: eight shared segment lines
// and one enable line per digit.
type gpioSegments struct {
	segments []*digital.Output
	digits   []*digital.Output
}

func newGpioSegments(drv digital.Driver, settings configSettings) *gpioSegments {
	gs := &gpioSegments{}
	for _, name := range sSegmentLines {
		pm := settings.GetPinMap(name)
		gs.segments = append(gs.segments, digital.NewOutput(drv, pm.port, pm.bit, pm.inverted))
	}
	for _, name := range sDigitLines {
		pm := settings.GetPinMap(name)
		gs.digits = append(gs.digits, digital.NewOutput(drv, pm.port, pm.bit, pm.inverted))
	}
	return gs
}

func (gs *gpioSegments) DigitsOff() {
	for _, d := range gs.digits {
		d.Deactivate()
	}
}

// UpdateSegments only writes the lines that change
func (gs *gpioSegments) UpdateSegments(mask uint8) {
	for i, seg := range gs.segments {
		on := mask&(1<<uint(i)) != 0
		if seg.IsActive() != on {
			seg.Toggle()
		}
	}
}

func (gs *gpioSegments) EnableDigit(index uint8) {
	if int(index) >= len(gs.digits) {
		return
	}
	gs.digits[index].Activate()
}
