package main

import (
	"sync"
	"time"

	"dscheirer.com/alarmclock/digital"
)

type soundSegment struct {
	frequencies []float64
	duration    time.Duration
	level       float64
	rampDown    time.Duration
}

// beepPattern is four short beeps then a pause, repeated by the player
func beepPattern(tone float64) []soundSegment {
	var pattern []soundSegment
	for i := 0; i < 4; i++ {
		pattern = append(pattern,
			soundSegment{frequencies: []float64{tone}, duration: 100 * time.Millisecond, level: 0.5, rampDown: 10 * time.Millisecond},
			soundSegment{duration: 100 * time.Millisecond})
	}
	return append(pattern, soundSegment{duration: 600 * time.Millisecond})
}

// toneDriver passes everything through to the real driver, and plays a beep
// pattern on the sound card while the buzzer line is active.
type toneDriver struct {
	digital.Driver
	buzzer  pinMap
	pattern []soundSegment
	play    func(pattern []soundSegment, stop chan struct{})
	logger  flogger

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

func newToneDriver(inner digital.Driver, buzzer pinMap, tone float64) *toneDriver {
	return &toneDriver{
		Driver:  inner,
		buzzer:  buzzer,
		pattern: beepPattern(tone),
		play:    playPattern,
		logger:  &ThreadLogger{name: "Tone"},
	}
}

func (td *toneDriver) WriteLogical(port, bit uint8, value bool) {
	td.Driver.WriteLogical(port, bit, value)
	if port != td.buzzer.port || bit != td.buzzer.bit {
		return
	}
	// the buzzer output is active low when its line is inverted
	td.sound(value != td.buzzer.inverted)
}

func (td *toneDriver) sound(on bool) {
	td.mu.Lock()
	defer td.mu.Unlock()

	if on && td.stop == nil {
		td.logger.Println("start")
		td.stop = make(chan struct{})
		td.wg.Add(1)
		go func(stop chan struct{}) {
			defer td.wg.Done()
			td.play(td.pattern, stop)
		}(td.stop)
	} else if !on && td.stop != nil {
		td.logger.Println("stop")
		close(td.stop)
		td.stop = nil
	}
}

// playing reports if a pattern is running
func (td *toneDriver) playing() bool {
	td.mu.Lock()
	defer td.mu.Unlock()
	return td.stop != nil
}

func (td *toneDriver) Close() error {
	td.sound(false)
	td.wg.Wait()
	return nil
}
