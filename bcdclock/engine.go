package bcdclock

const (
	// SnoozeMinutes is how far Snooze pushes a ringing alarm
	SnoozeMinutes = 5
	// one full day, used to skip the next occurrence
	postponeMinutes = 24 * 60
)

// AlarmFunc gets called once each time the alarm starts ringing
type AlarmFunc func(e *Engine)

// Alarm is the alarm time plus its state flags
type Alarm struct {
	Time            Time
	Enabled         bool
	Valid           bool
	Ringing         bool
	SuppressedToday bool
}

// Engine owns the current time and the alarm. It is not safe for concurrent
// use, callers sharing an Engine between goroutines must hold their own lock.
type Engine struct {
	ticks          uint16
	ticksPerSecond uint16
	current        Time
	validTime      bool
	alarm          Alarm
	onRing         AlarmFunc
}

// New creates an engine with an invalid 00:00:00 time and a disabled alarm
func New(ticksPerSecond uint16, onRing AlarmFunc) *Engine {
	if ticksPerSecond == 0 {
		ticksPerSecond = 1
	}
	return &Engine{
		ticksPerSecond: ticksPerSecond,
		onRing:         onRing,
	}
}

// TicksPerSecond is the configured tick rate
func (e *Engine) TicksPerSecond() uint16 {
	return e.ticksPerSecond
}

// SubSecond is how many ticks into the current second the engine is
func (e *Engine) SubSecond() uint16 {
	return e.ticks
}

// GetTime copies the current time into result and reports if it is valid.
// A nil result returns false and changes nothing.
func (e *Engine) GetTime(result *Time) bool {
	if result == nil {
		return false
	}
	*result = e.current
	return e.validTime
}

// SetTime accepts the candidate only if every digit is in range. On rejection
// the last stored time is kept but flagged invalid.
func (e *Engine) SetTime(candidate Time) bool {
	if !candidate.Valid() {
		e.validTime = false
		return false
	}
	e.current = candidate
	e.validTime = true
	return true
}

// Tick counts one periodic tick, a full second of ticks advances the time
func (e *Engine) Tick() {
	e.ticks++
	if e.ticks < e.ticksPerSecond {
		return
	}
	e.ticks = 0

	endOfDay := e.current.isEndOfDay()
	e.current.advance()
	if endOfDay {
		// new day, a skipped alarm is armed again
		e.alarm.SuppressedToday = false
	}

	e.checkAlarm()
}

func (e *Engine) checkAlarm() {
	a := &e.alarm
	if !a.Enabled || !a.Valid || a.SuppressedToday || a.Ringing || !e.validTime {
		return
	}
	if e.current != a.Time {
		return
	}
	a.Ringing = true
	if e.onRing != nil {
		e.onRing(e)
	}
}

// SetAlarm validates like SetTime, a valid alarm is enabled and re-armed
func (e *Engine) SetAlarm(candidate Time) bool {
	if !candidate.Valid() {
		e.alarm.Valid = false
		return false
	}
	e.alarm = Alarm{
		Time:    candidate,
		Enabled: true,
		Valid:   true,
	}
	return true
}

// GetAlarm copies the alarm time into result, nil returns false
func (e *Engine) GetAlarm(result *Time) bool {
	if result == nil {
		return false
	}
	*result = e.alarm.Time
	return e.alarm.Valid
}

// Alarm returns a copy of the alarm state
func (e *Engine) Alarm() Alarm {
	return e.alarm
}

// IsAlarmActive is true while the alarm is ringing
func (e *Engine) IsAlarmActive() bool {
	return e.alarm.Ringing
}

func (e *Engine) IsAlarmEnabled() bool {
	return e.alarm.Enabled && e.alarm.Valid
}

func (e *Engine) DisableAlarm() {
	e.alarm.Enabled = false
	e.alarm.Ringing = false
}

// Snooze silences a ringing alarm and moves it SnoozeMinutes later
func (e *Engine) Snooze() {
	if !e.alarm.Ringing {
		return
	}
	e.alarm.Ringing = false
	e.alarm.Time.addMinutes(SnoozeMinutes)
}

// PostponeToNextDay skips the next occurrence. The time of day does not
// change, the alarm comes back after the day rollover.
func (e *Engine) PostponeToNextDay() {
	if !e.alarm.Valid {
		return
	}
	e.alarm.Time.addMinutes(postponeMinutes)
	e.alarm.Ringing = false
	e.alarm.SuppressedToday = true
}

// CancelToday silences the alarm until the day rollover
func (e *Engine) CancelToday() {
	e.alarm.Ringing = false
	e.alarm.SuppressedToday = true
}
