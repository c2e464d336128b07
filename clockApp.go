package main

import (
	"sync"

	"dscheirer.com/alarmclock/bcdclock"
	"dscheirer.com/alarmclock/digital"
	"dscheirer.com/alarmclock/screen"
)

type uiMode int

const (
	modeUnconfigured uiMode = iota
	modeShowTime
	modeSetTimeMinute
	modeSetTimeHour
	modeSetAlarmMinute
	modeSetAlarmHour
)

func (m uiMode) String() string {
	switch m {
	case modeUnconfigured:
		return "unconfigured"
	case modeShowTime:
		return "show time"
	case modeSetTimeMinute:
		return "set time minute"
	case modeSetTimeHour:
		return "set time hour"
	case modeSetAlarmMinute:
		return "set alarm minute"
	case modeSetAlarmHour:
		return "set alarm hour"
	default:
		return "unknown"
	}
}

func (m uiMode) editing() bool {
	return m >= modeSetTimeMinute
}

func (m uiMode) editingHours() bool {
	return m == modeSetTimeHour || m == modeSetAlarmHour
}

func (m uiMode) editingAlarm() bool {
	return m == modeSetAlarmMinute || m == modeSetAlarmHour
}

// dot positions while showing the time
const (
	dotRinging   = 0
	dotSeparator = 1
	dotAlarm     = 3
)

var dashes = []uint8{screen.DigitDash, screen.DigitDash, screen.DigitDash, screen.DigitDash}

// clockApp ties the engine, the screen and the buttons together. The tick
// loop and the main loop both go through mu.
type clockApp struct {
	mu     sync.Mutex
	engine *bcdclock.Engine
	board  *board
	logger flogger

	mode       uiMode
	edit       [4]uint8 // ht hu mt mu
	ticks      uint32
	lastAction uint32
	ringing    bool

	setTimeHold  longPress
	setAlarmHold longPress

	holdTicks        uint32
	inactivityTicks  uint32
	flashDivisor     uint16
	flashDivisorFast uint16
}

func newClockApp(rt runtimeConfig, b *board) *clockApp {
	settings := rt.settings
	app := &clockApp{
		board:            b,
		logger:           &ThreadLogger{name: "Clock"},
		holdTicks:        settings.ticks(sLongPressTime) + settings.ticks(sDebounceTime),
		inactivityTicks:  settings.ticks(sInactivityTimeout),
		flashDivisor:     uint16(settings.GetInt(sFlashDivisor)),
		flashDivisorFast: uint16(settings.GetInt(sFlashDivisorFast)),
	}
	app.engine = bcdclock.New(uint16(settings.ticksPerSecond()), app.onRing)
	app.enterMode(modeUnconfigured)
	return app
}

// onRing runs inside engine.Tick, the lock is already held
func (app *clockApp) onRing(e *bcdclock.Engine) {
	var alm bcdclock.Time
	e.GetAlarm(&alm)
	app.logger.Printf("alarm %s ringing", alm.String())
	app.board.alarmLed.Activate()
	app.board.buzzer.Activate()
}

func (app *clockApp) currentMode() uiMode {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.mode
}

func (app *clockApp) flash(from, to uint8, divisor uint16) {
	if err := app.board.screen.FlashDigits(from, to, divisor); err != nil {
		app.logger.Println(err.Error())
	}
}

func (app *clockApp) flashDots(from, to uint8, divisor uint16) {
	if err := app.board.screen.FlashDots(from, to, divisor); err != nil {
		app.logger.Println(err.Error())
	}
}

func (app *clockApp) enterMode(m uiMode) {
	if m != app.mode {
		app.logger.Printf("mode %s -> %s", app.mode, m)
	}
	app.mode = m
	app.lastAction = app.ticks
	last := uint8(displayDigits - 1)

	switch m {
	case modeUnconfigured:
		app.flash(0, last, app.flashDivisorFast)
		app.flashDots(0, last, 0)
		app.renderBlank()
	case modeShowTime:
		app.flash(0, last, 0)
		// force the ringing dot to be set up again
		app.ringing = false
		app.flashDots(0, last, 0)
		app.renderTime()
	case modeSetTimeMinute, modeSetAlarmMinute:
		app.flash(2, 3, app.flashDivisor)
		app.flashDots(0, last, 0)
		app.renderEdit()
	case modeSetTimeHour, modeSetAlarmHour:
		app.flash(0, 1, app.flashDivisor)
		app.flashDots(0, last, 0)
		app.renderEdit()
	}
}

func (app *clockApp) renderBlank() {
	app.board.screen.WriteBCD(dashes, []bool{false, true, false, false})
}

func (app *clockApp) renderTime() {
	var cur bcdclock.Time
	app.engine.GetTime(&cur)
	digits := cur.Digits()

	dots := make([]bool, displayDigits)
	dots[dotSeparator] = 2*app.engine.SubSecond() < app.engine.TicksPerSecond()
	dots[dotAlarm] = app.engine.IsAlarmEnabled()
	dots[dotRinging] = app.engine.IsAlarmActive()
	app.board.screen.WriteBCD(digits[:], dots)
}

func (app *clockApp) renderEdit() {
	on := app.mode.editingAlarm()
	app.board.screen.WriteBCD(app.edit[:], []bool{on, on, on, on})
}

// onTick is the periodic tick: advance, scan one digit, redraw
func (app *clockApp) onTick() {
	app.mu.Lock()
	defer app.mu.Unlock()

	app.ticks++
	app.engine.Tick()
	app.board.screen.Refresh()

	ringing := app.engine.IsAlarmActive()
	if ringing != app.ringing {
		app.ringing = ringing
		if ringing {
			app.flashDots(dotRinging, dotRinging, app.flashDivisorFast)
		} else {
			app.flashDots(0, displayDigits-1, 0)
		}
	}
	if !ringing && (app.board.alarmLed.IsActive() || app.board.buzzer.IsActive()) {
		app.board.alarmLed.Deactivate()
		app.board.buzzer.Deactivate()
	}

	switch app.mode {
	case modeShowTime:
		app.renderTime()
	case modeUnconfigured:
		app.renderBlank()
	}
}

// poll is one main loop pass: sample each input once, then act on it
func (app *clockApp) poll() {
	app.mu.Lock()
	defer app.mu.Unlock()

	b := app.board
	accept := b.accept.WasChanged()
	cancel := b.cancel.WasChanged()
	increment := b.increment.WasChanged()
	decrement := b.decrement.WasChanged()
	setTimeHeld := app.setTimeHold.check(b.setTime.IsActive(), app.ticks, app.holdTicks)
	setAlarmHeld := app.setAlarmHold.check(b.setAlarm.IsActive(), app.ticks, app.holdTicks)

	if setTimeHeld {
		app.startSetTime()
	}
	if setAlarmHeld {
		app.startSetAlarm()
	}
	if accept == digital.Deactivated {
		app.accept()
	}
	if cancel == digital.Deactivated {
		app.cancel()
	}
	if increment == digital.Deactivated {
		app.adjust(1)
	}
	if decrement == digital.Deactivated {
		app.adjust(-1)
	}

	if app.mode.editing() && app.inactivityTicks > 0 && app.ticks-app.lastAction >= app.inactivityTicks {
		app.logger.Println("no input, leaving edit")
		app.cancel()
	}
}

func (app *clockApp) startSetTime() {
	var cur bcdclock.Time
	if !app.engine.GetTime(&cur) {
		cur = bcdclock.Time{}
	}
	app.edit = cur.Digits()
	app.enterMode(modeSetTimeMinute)
}

func (app *clockApp) startSetAlarm() {
	var alm bcdclock.Time
	if !app.engine.GetAlarm(&alm) {
		alm = bcdclock.Time{}
	}
	app.edit = alm.Digits()
	app.enterMode(modeSetAlarmMinute)
}

func (app *clockApp) accept() {
	switch app.mode {
	case modeShowTime:
		if app.engine.IsAlarmActive() {
			app.logger.Println("snooze")
			app.engine.Snooze()
		}
	case modeSetTimeMinute:
		app.enterMode(modeSetTimeHour)
	case modeSetTimeHour:
		t := bcdclock.FromDigits(app.edit)
		if app.engine.SetTime(t) {
			app.logger.Printf("time set to %s", t.String())
			app.enterMode(modeShowTime)
		} else {
			app.logger.Printf("rejected time %s", t.String())
			app.enterMode(modeUnconfigured)
		}
	case modeSetAlarmMinute:
		app.enterMode(modeSetAlarmHour)
	case modeSetAlarmHour:
		t := bcdclock.FromDigits(app.edit)
		if app.engine.SetAlarm(t) {
			app.logger.Printf("alarm set to %s", t.String())
		} else {
			app.logger.Printf("rejected alarm %s", t.String())
		}
		app.enterMode(modeShowTime)
	}
}

func (app *clockApp) cancel() {
	switch app.mode {
	case modeShowTime:
		if app.engine.IsAlarmActive() {
			app.logger.Println("alarm off until tomorrow")
			app.engine.PostponeToNextDay()
		} else if app.engine.IsAlarmEnabled() {
			app.logger.Println("alarm disabled")
			app.engine.DisableAlarm()
		}
	case modeSetTimeMinute, modeSetTimeHour:
		var cur bcdclock.Time
		if app.engine.GetTime(&cur) {
			app.enterMode(modeShowTime)
		} else {
			app.enterMode(modeUnconfigured)
		}
	case modeSetAlarmMinute, modeSetAlarmHour:
		app.enterMode(modeShowTime)
	}
}

// adjust steps the field being edited, wrapping minutes at 0-59 and hours
// at 0-23
func (app *clockApp) adjust(delta int) {
	if !app.mode.editing() {
		return
	}
	tens, units, limit := 2, 3, 60
	if app.mode.editingHours() {
		tens, units, limit = 0, 1, 24
	}
	value := int(app.edit[tens])*10 + int(app.edit[units])
	value = (value + delta + limit) % limit
	app.edit[tens] = uint8(value / 10)
	app.edit[units] = uint8(value % 10)

	app.lastAction = app.ticks
	app.renderEdit()
}
