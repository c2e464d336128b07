package digital

import (
	"fmt"
	"sync"
)

type line struct {
	port, bit uint8
}

// FakeDriver keeps line levels in memory. Levels can be set from another
// goroutine while the clock polls them. Writes are only recorded once
// EnableAudit is on, the headless and simulated clocks run on this driver.
type FakeDriver struct {
	mu       sync.Mutex
	levels   map[line]bool
	outputs  map[line]bool
	auditing bool
	audit    []string
}

func NewFakeDriver() *FakeDriver {
	return &FakeDriver{
		levels:  make(map[line]bool),
		outputs: make(map[line]bool),
	}
}

// Set forces the raw level of a line, as if it were wired high or low
func (fd *FakeDriver) Set(port, bit uint8, level bool) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.levels[line{port, bit}] = level
}

// Level is the raw level last set or written
func (fd *FakeDriver) Level(port, bit uint8) bool {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	return fd.levels[line{port, bit}]
}

// IsOutput reports the configured direction
func (fd *FakeDriver) IsOutput(port, bit uint8) bool {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	return fd.outputs[line{port, bit}]
}

// EnableAudit starts or stops recording writes and direction changes
func (fd *FakeDriver) EnableAudit(on bool) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.auditing = on
}

func (fd *FakeDriver) record(format string, args ...interface{}) {
	if fd.auditing {
		fd.audit = append(fd.audit, fmt.Sprintf(format, args...))
	}
}

// Audit returns a copy of every write and direction change
func (fd *FakeDriver) Audit() []string {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	return append([]string(nil), fd.audit...)
}

func (fd *FakeDriver) ClearAudit() {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.audit = nil
}

func (fd *FakeDriver) ReadLogical(port, bit uint8) bool {
	return fd.Level(port, bit)
}

func (fd *FakeDriver) WriteLogical(port, bit uint8, value bool) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.levels[line{port, bit}] = value
	fd.record("write %d.%d %v", port, bit, value)
}

func (fd *FakeDriver) SetDirection(port, bit uint8, output bool) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.outputs[line{port, bit}] = output
	dir := "in"
	if output {
		dir = "out"
	}
	fd.record("dir %d.%d %s", port, bit, dir)
}
