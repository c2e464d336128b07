package main

import (
	"io"

	"dscheirer.com/alarmclock/backpack"
	"dscheirer.com/alarmclock/digital"
	"dscheirer.com/alarmclock/screen"
	"github.com/pkg/errors"
)

// the clock face has four digits, hh:mm
const displayDigits = 4

type board struct {
	accept    *digital.Input
	cancel    *digital.Input
	setTime   *digital.Input
	setAlarm  *digital.Input
	increment *digital.Input
	decrement *digital.Input

	alarmLed *digital.Output
	buzzer   *digital.Output

	screen *screen.Screen
}

func newInput(drv digital.Driver, settings configSettings, name string) *digital.Input {
	pm := settings.GetPinMap(name)
	return digital.NewInput(drv, pm.port, pm.bit, pm.inverted)
}

func newOutput(drv digital.Driver, settings configSettings, name string) *digital.Output {
	pm := settings.GetPinMap(name)
	return digital.NewOutput(drv, pm.port, pm.bit, pm.inverted)
}

func newBoard(settings configSettings, drv digital.Driver, segments screen.Driver) *board {
	return &board{
		accept:    newInput(drv, settings, sAcceptBtn),
		cancel:    newInput(drv, settings, sCancelBtn),
		setTime:   newInput(drv, settings, sSetTimeBtn),
		setAlarm:  newInput(drv, settings, sSetAlarmBtn),
		increment: newInput(drv, settings, sIncrementBtn),
		decrement: newInput(drv, settings, sDecrementBtn),
		alarmLed:  newOutput(drv, settings, sAlarmLed),
		buzzer:    newOutput(drv, settings, sBuzzer),
		screen:    screen.New(displayDigits, segments),
	}
}

// hardware is the board plus whatever has to be closed on the way out
type hardware struct {
	board   *board
	closers []io.Closer
}

func (hw *hardware) Close() error {
	var first error
	// reverse order of opening
	for i := len(hw.closers) - 1; i >= 0; i-- {
		if err := hw.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// gpioLine names one line on one chip
type gpioLine struct {
	port, bit uint8
}

// inputPullUps lists the button lines that idle high
func inputPullUps(settings configSettings) map[gpioLine]bool {
	pullUps := make(map[gpioLine]bool)
	for _, name := range settings.GetAllButtonNames() {
		pm := settings.GetPinMap(name)
		if pm.inverted {
			pullUps[gpioLine{pm.port, pm.bit}] = true
		}
	}
	return pullUps
}

func openHardware(rt runtimeConfig) (*hardware, error) {
	settings := rt.settings
	hw := &hardware{}

	var drv digital.Driver
	var keys *keyDriver
	switch name := settings.GetString(sIODriver); name {
	case "rpio":
		rd, err := newRpioDriver(inputPullUps(settings))
		if err != nil {
			return nil, err
		}
		hw.closers = append(hw.closers, rd)
		drv = rd
	case "cdev":
		cd, err := newCdevDriver(inputPullUps(settings))
		if err != nil {
			return nil, err
		}
		hw.closers = append(hw.closers, cd)
		drv = cd
	case "keys":
		keys = newKeyDriver(rt)
		if err := keys.start(); err != nil {
			return nil, err
		}
		hw.closers = append(hw.closers, keys)
		drv = keys
	case "none":
		drv = digital.NewFakeDriver()
	default:
		return nil, errors.Errorf("unknown io driver '%s'", name)
	}

	if settings.GetBool(sBuzzerAudio) {
		td := newToneDriver(drv, settings.GetPinMap(sBuzzer), settings.GetFloat(sBuzzerTone))
		hw.closers = append(hw.closers, td)
		drv = td
	}

	var segments screen.Driver
	switch name := settings.GetString(sDisplay); name {
	case "gpio":
		segments = newGpioSegments(drv, settings)
	case "backpack":
		bp, err := backpack.Open(settings.GetByte(sI2CDev), settings.GetInt(sI2CBus), settings.GetBool(sI2CSimulated))
		if err != nil {
			hw.Close()
			return nil, errors.Wrap(err, "backpack")
		}
		bp.DebugDump(settings.GetBool(sDebugDump))
		hw.closers = append(hw.closers, bp)
		segments = bp
	case "term":
		if keys == nil {
			hw.Close()
			return nil, errors.New("the terminal display needs the keys io driver")
		}
		segments = newTermDisplay(displayDigits, keys.help())
	case "log":
		segments = newLogDisplay(displayDigits)
	default:
		hw.Close()
		return nil, errors.Errorf("unknown display '%s'", name)
	}

	hw.board = newBoard(settings, drv, segments)
	return hw, nil
}
