package main

import (
	"strings"
	"time"
	"unicode"

	"dscheirer.com/alarmclock/digital"
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
)

// how long a lowercase key holds its button down
const dKeyPress = 150 * time.Millisecond

// keyDriver simulates the buttons from the keyboard. A lowercase key is a
// short press, the uppercase key latches the button down until pressed again
// (that is how you long-press). Everything else is a plain in-memory line.
type keyDriver struct {
	*digital.FakeDriver
	rt      runtimeConfig
	buttons map[rune]pinMap
	latched map[rune]bool
	logger  flogger
	done    chan struct{}
	polling bool
}

func newKeyDriver(rt runtimeConfig) *keyDriver {
	kd := &keyDriver{
		FakeDriver: digital.NewFakeDriver(),
		rt:         rt,
		buttons:    make(map[rune]pinMap),
		latched:    make(map[rune]bool),
		logger:     &ThreadLogger{name: "Keys"},
		done:       make(chan struct{}),
	}
	for _, name := range rt.settings.GetAllButtonNames() {
		pm := rt.settings.GetPinMap(name)
		if pm.key == "" {
			continue
		}
		kd.buttons[unicode.ToLower([]rune(pm.key)[0])] = pm
		kd.release(pm)
	}
	return kd
}

// start takes over the terminal and polls keys until Close
func (kd *keyDriver) start() error {
	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "termbox init")
	}
	termbox.SetInputMode(termbox.InputEsc)
	kd.polling = true
	go kd.pollKeys()
	return nil
}

func (kd *keyDriver) pollKeys() {
	defer close(kd.done)
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			if ev.Key == termbox.KeyCtrlC || ev.Key == termbox.KeyEsc {
				kd.logger.Println("exit key")
				kd.rt.requestQuit()
				continue
			}
			kd.handleKey(ev.Ch)
		case termbox.EventInterrupt:
			return
		case termbox.EventError:
			kd.logger.Println(ev.Err.Error())
			return
		}
	}
}

func (kd *keyDriver) press(pm pinMap) {
	kd.Set(pm.port, pm.bit, !pm.inverted)
}

func (kd *keyDriver) release(pm pinMap) {
	kd.Set(pm.port, pm.bit, pm.inverted)
}

func (kd *keyDriver) handleKey(ch rune) {
	lower := unicode.ToLower(ch)
	pm, ok := kd.buttons[lower]
	if !ok {
		return
	}

	if unicode.IsUpper(ch) {
		kd.latched[lower] = !kd.latched[lower]
		if kd.latched[lower] {
			kd.logger.Printf("holding '%c'", lower)
			kd.press(pm)
		} else {
			kd.logger.Printf("released '%c'", lower)
			kd.release(pm)
		}
		return
	}

	if kd.latched[lower] {
		return
	}
	kd.logger.Printf("press '%c'", lower)
	kd.press(pm)
	go func() {
		kd.rt.clock.Sleep(dKeyPress)
		kd.release(pm)
	}()
}

// help is the key legend shown by the terminal display
func (kd *keyDriver) help() string {
	names := map[string]string{
		sAcceptBtn:    "accept",
		sCancelBtn:    "cancel",
		sSetTimeBtn:   "time",
		sSetAlarmBtn:  "alarm",
		sIncrementBtn: "up",
		sDecrementBtn: "down",
	}
	var parts []string
	for _, name := range kd.rt.settings.GetAllButtonNames() {
		pm := kd.rt.settings.GetPinMap(name)
		if pm.key == "" {
			continue
		}
		parts = append(parts, pm.key+"="+names[name])
	}
	return strings.Join(parts, " ") + "  (shift holds, esc quits)"
}

func (kd *keyDriver) Close() error {
	if !kd.polling {
		return nil
	}
	termbox.Interrupt()
	<-kd.done
	termbox.Close()
	return nil
}
