// Package digital edge-detects logical inputs and drives logical outputs on top
// of a pin driver. Ports and bits are whatever the driver understands them to be.
package digital

// Driver reads and writes raw pin levels
type Driver interface {
	ReadLogical(port, bit uint8) bool
	WriteLogical(port, bit uint8, value bool)
	SetDirection(port, bit uint8, output bool)
}

// Change is the result of polling an input
type Change int

const (
	NoChange Change = iota
	Activated
	Deactivated
)

func (c Change) String() string {
	switch c {
	case Activated:
		return "activated"
	case Deactivated:
		return "deactivated"
	default:
		return "no change"
	}
}

type Input struct {
	driver   Driver
	port     uint8
	bit      uint8
	inverted bool
	last     bool
}

// NewInput configures the line as an input and takes the first sample, so the
// first poll does not report an edge for a button already held down.
func NewInput(driver Driver, port, bit uint8, inverted bool) *Input {
	in := &Input{driver: driver, port: port, bit: bit, inverted: inverted}
	driver.SetDirection(port, bit, false)
	in.last = in.IsActive()
	return in
}

// IsActive samples the line now, it does not touch the remembered state
func (in *Input) IsActive() bool {
	return in.driver.ReadLogical(in.port, in.bit) != in.inverted
}

// WasChanged compares a new sample with the previous one and remembers it.
// Poll each input once per loop, a second call in the same loop sees NoChange.
func (in *Input) WasChanged() Change {
	state := in.IsActive()
	result := NoChange
	if state && !in.last {
		result = Activated
	} else if !state && in.last {
		result = Deactivated
	}
	in.last = state
	return result
}

func (in *Input) WasActivated() bool {
	return in.WasChanged() == Activated
}

func (in *Input) WasDeactivated() bool {
	return in.WasChanged() == Deactivated
}

type Output struct {
	driver    Driver
	port      uint8
	bit       uint8
	activeLow bool
	active    bool
}

// NewOutput configures the line as an output and leaves it inactive
func NewOutput(driver Driver, port, bit uint8, activeLow bool) *Output {
	out := &Output{driver: driver, port: port, bit: bit, activeLow: activeLow}
	driver.SetDirection(port, bit, true)
	out.write(false)
	return out
}

func (out *Output) write(active bool) {
	out.active = active
	out.driver.WriteLogical(out.port, out.bit, active != out.activeLow)
}

func (out *Output) Activate() {
	out.write(true)
}

func (out *Output) Deactivate() {
	out.write(false)
}

func (out *Output) Toggle() {
	out.write(!out.active)
}

// IsActive is the cached logical state, the line is not read back
func (out *Output) IsActive() bool {
	return out.active
}
