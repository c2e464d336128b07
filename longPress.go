package main

// longPress reports a button held down for a while, once per hold
type longPress struct {
	pressed  bool   // is it held?
	reported bool   // did this hold fire already?
	start    uint32 // tick count when the hold started
}

// check takes the current sample and tick count and returns true exactly once
// when the button has been held for at least hold ticks. Letting go clears
// everything.
func (lp *longPress) check(active bool, now uint32, hold uint32) bool {
	if !active {
		*lp = longPress{}
		return false
	}
	if !lp.pressed {
		lp.pressed = true
		lp.start = now
	}
	if lp.reported || now-lp.start < hold {
		return false
	}
	lp.reported = true
	return true
}
