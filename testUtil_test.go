package main

import (
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"dscheirer.com/alarmclock/bcdclock"
	"dscheirer.com/alarmclock/digital"
	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

// the ticker and the main loop
const testSleepers = 2

func testSettings() configSettings {
	s := defaultSettings()
	s.settings[sTicksPerSecond] = 10
	s.settings[sLoopDelay] = 100 * time.Millisecond
	s.settings[sLongPressTime] = 3 * time.Second
	s.settings[sDebounceTime] = 200 * time.Millisecond
	s.settings[sInactivityTimeout] = 30 * time.Second
	s.settings[sFlashDivisor] = 2
	s.settings[sFlashDivisorFast] = 1
	s.settings[sIODriver] = "none"
	s.settings[sDisplay] = "gpio"
	s.settings[sBuzzerAudio] = false
	return s
}

func logCaller(pc uintptr, file string, line int, ok bool) {
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn == nil {
		fnName = "?()"
	} else {
		dotName := filepath.Ext(fn.Name())
		fnName = strings.TrimLeft(dotName, ".") + "()"
	}

	log.Printf("Starting %s (%s:%d)", fnName, filepath.Base(file), line)
}

func testRuntime() (runtimeConfig, clockwork.FakeClock) {
	// make rt for test, log the start of the test
	logCaller(runtime.Caller(1))
	clock := clockwork.NewFakeClock()
	return initRuntime(clock, testSettings()), clock
}

// testBlockDuration moves the fake clock on in steps, letting both loops go
// back to sleep after each one
func testBlockDuration(clock clockwork.FakeClock, step, total time.Duration) {
	for d := time.Duration(0); d < total; d += step {
		clock.Advance(step)
		clock.BlockUntil(testSleepers)
	}
}

// testQuit stops the loops, they must all be asleep already
func testQuit(rt runtimeConfig, clock clockwork.FakeClock) {
	rt.requestQuit()
	clock.Advance(time.Second)
	rt.wg.Wait()
}

// latchSegments remembers what each digit was last lit with
type latchSegments struct {
	pending uint8
	lit     [displayDigits]uint8
}

func (ls *latchSegments) DigitsOff() {}

func (ls *latchSegments) UpdateSegments(mask uint8) {
	ls.pending = mask
}

func (ls *latchSegments) EnableDigit(index uint8) {
	ls.lit[index] = ls.pending
}

type testRig struct {
	rt       runtimeConfig
	clock    clockwork.FakeClock
	drv      *digital.FakeDriver
	segments *latchSegments
	app      *clockApp
}

func newTestRig(t *testing.T) *testRig {
	rt, clock := testRuntime()
	drv := digital.NewFakeDriver()
	// buttons idle released
	for _, name := range rt.settings.GetAllButtonNames() {
		pm := rt.settings.GetPinMap(name)
		drv.Set(pm.port, pm.bit, pm.inverted)
	}
	segments := &latchSegments{}
	app := newClockApp(rt, newBoard(rt.settings, drv, segments))
	assert.Equal(t, app.currentMode(), modeUnconfigured)
	return &testRig{rt: rt, clock: clock, drv: drv, segments: segments, app: app}
}

func (r *testRig) press(name string) {
	pm := r.rt.settings.GetPinMap(name)
	r.drv.Set(pm.port, pm.bit, !pm.inverted)
}

func (r *testRig) release(name string) {
	pm := r.rt.settings.GetPinMap(name)
	r.drv.Set(pm.port, pm.bit, pm.inverted)
}

// click is a press seen by one poll and a release seen by the next
func (r *testRig) click(name string) {
	r.press(name)
	r.app.poll()
	r.release(name)
	r.app.poll()
}

// step runs n ticks with a main loop pass after each one
func (r *testRig) step(n int) {
	for i := 0; i < n; i++ {
		r.app.onTick()
		r.app.poll()
	}
}

func (r *testRig) seconds(n int) {
	r.step(n * r.rt.settings.ticksPerSecond())
}

func (r *testRig) holdTicks() int {
	return int(r.app.holdTicks)
}

// longPress holds a button until it fires, then lets go
func (r *testRig) longPress(name string) {
	r.press(name)
	r.step(r.holdTicks() + 1)
	r.release(name)
	r.app.poll()
}

func (r *testRig) setTime(t *testing.T, hours, minutes, seconds int) {
	r.app.mu.Lock()
	defer r.app.mu.Unlock()
	assert.Assert(t, r.app.engine.SetTime(bcdclock.FromClock(hours, minutes, seconds)))
}

func (r *testRig) engineTime() (bcdclock.Time, bool) {
	r.app.mu.Lock()
	defer r.app.mu.Unlock()
	var cur bcdclock.Time
	valid := r.app.engine.GetTime(&cur)
	return cur, valid
}

func (r *testRig) engineAlarm() (bcdclock.Time, bool) {
	r.app.mu.Lock()
	defer r.app.mu.Unlock()
	var alm bcdclock.Time
	valid := r.app.engine.GetAlarm(&alm)
	return alm, valid
}

func (r *testRig) outputLevel(name string) bool {
	pm := r.rt.settings.GetPinMap(name)
	return r.drv.Level(pm.port, pm.bit) != pm.inverted
}
