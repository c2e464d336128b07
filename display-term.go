package main

import (
	"dscheirer.com/alarmclock/screen"
	"github.com/nsf/termbox-go"
)

// termDisplay draws the digits in the terminal owned by the keyboard
// simulator. Like the backpack it latches each scanned digit and only redraws
// when the picture changes.
type termDisplay struct {
	pending uint8
	digits  []uint8
	drawn   []uint8
	legend  string
	dirty   bool
}

func newTermDisplay(digits int, legend string) *termDisplay {
	return &termDisplay{
		digits: make([]uint8, digits),
		drawn:  make([]uint8, digits),
		legend: legend,
		dirty:  true,
	}
}

func (td *termDisplay) DigitsOff() {}

func (td *termDisplay) UpdateSegments(mask uint8) {
	td.pending = mask
}

func (td *termDisplay) EnableDigit(index uint8) {
	if int(index) >= len(td.digits) {
		return
	}
	td.digits[index] = td.pending
	if td.digits[index] != td.drawn[index] {
		td.dirty = true
	}
	if td.dirty {
		td.draw()
	}
}

// rows renders three text rows, digit 1's point doubles as the colon
func (td *termDisplay) rows() [3]string {
	on := func(mask, seg uint8, s string) string {
		if mask&seg != 0 {
			return s
		}
		return " "
	}
	var r [3]string
	for i, m := range td.digits {
		if i == 2 {
			colon := on(td.digits[1], screen.SegP, ":")
			r[0] += "  "
			r[1] += colon + " "
			r[2] += colon + " "
		}
		r[0] += " " + on(m, screen.SegA, "_") + "  "
		r[1] += on(m, screen.SegF, "|") + on(m, screen.SegG, "_") + on(m, screen.SegB, "|") + " "
		r[2] += on(m, screen.SegE, "|") + on(m, screen.SegD, "_") + on(m, screen.SegC, "|") + on(m, screen.SegP, ".")
	}
	return r
}

func (td *termDisplay) draw() {
	copy(td.drawn, td.digits)
	td.dirty = false

	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y, row := range td.rows() {
		for x, ch := range row {
			termbox.SetCell(2+x, 1+y, ch, termbox.ColorRed|termbox.AttrBold, termbox.ColorDefault)
		}
	}
	for x, ch := range td.legend {
		termbox.SetCell(2+x, 5, ch, termbox.ColorDefault, termbox.ColorDefault)
	}
	termbox.Flush()
}
