package main

import (
	"dscheirer.com/alarmclock/screen"
)

// logDisplay is the headless display. It keeps what the scan latched and logs
// the digits each time a full scan shows something new. Points are not shown,
// and a dark digit keeps its last character so blinking is not a change.
type logDisplay struct {
	pending    uint8
	shown      []byte
	curDisplay string
	logger     flogger
}

func newLogDisplay(digits int) *logDisplay {
	shown := make([]byte, digits)
	for i := range shown {
		shown[i] = ' '
	}
	ld := &logDisplay{
		shown:  shown,
		logger: &ThreadLogger{name: "Display"},
	}
	// a dark face is not worth a line
	ld.curDisplay = ld.text()
	return ld
}

func (ld *logDisplay) DigitsOff() {}

func (ld *logDisplay) UpdateSegments(mask uint8) {
	ld.pending = mask
}

func (ld *logDisplay) EnableDigit(index uint8) {
	if int(index) >= len(ld.shown) {
		return
	}
	if ch := segmentChar(ld.pending); ch != ' ' {
		ld.shown[index] = ch
	}
	// digit 0 is the last one of each scan
	if index != 0 {
		return
	}
	if e := ld.text(); e != ld.curDisplay {
		ld.logger.Println(e)
		ld.curDisplay = e
	}
}

const digitChars = "0123456789-"

func segmentChar(mask uint8) byte {
	mask &^= screen.SegP
	if mask == 0 {
		return ' '
	}
	for code := 0; code < len(digitChars); code++ {
		if screen.Image(uint8(code)) == mask {
			return digitChars[code]
		}
	}
	return '?'
}

// text is hh:mm for the clock face, anything else is just the digits
func (ld *logDisplay) text() string {
	if len(ld.shown) != displayDigits {
		return string(ld.shown)
	}
	return string(ld.shown[:2]) + ":" + string(ld.shown[2:])
}
