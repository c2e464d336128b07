package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func TestDefaultSettings(t *testing.T) {
	s := defaultSettings()
	assert.Equal(t, s.GetInt(sTicksPerSecond), 1000)
	assert.Equal(t, s.GetDuration(sLongPressTime), 3*time.Second)
	assert.Equal(t, s.GetByte(sI2CDev), byte(0x70))
	assert.Equal(t, s.GetPinMap(sAcceptBtn), pinMap{bit: 25, inverted: true, key: "a"})
	assert.Equal(t, len(s.GetAllButtonNames()), 6)
	for _, name := range sDigitLines {
		assert.Assert(t, s.GetPinMap(name).inverted, name)
	}
	// wrong type or missing key
	assert.Equal(t, s.GetString(sTicksPerSecond), "")
	assert.Equal(t, s.GetDuration("nothing"), time.Duration(-1))
}

func TestSettingsFromJSON(t *testing.T) {
	s := defaultSettings()
	err := s.settingsFromJSON([]byte(`{
		"ticksPerSecond": 200,
		"longPressTime": "2s",
		"i2cDevice": "0x71",
		"i2cBus": 2,
		"logStdout": "TRUE",
		"debugDump": true,
		"buzzerTone": 440.5,
		"display": "backpack",
		"cancelButton": {"port": 1, "bit": 4, "key": "c"},
		"ignored": 7
	}`))
	assert.NilError(t, err)
	assert.Equal(t, s.GetInt(sTicksPerSecond), 200)
	assert.Equal(t, s.GetDuration(sLongPressTime), 2*time.Second)
	assert.Equal(t, s.GetByte(sI2CDev), byte(0x71))
	assert.Equal(t, s.GetByte(sI2CBus), byte(2))
	assert.Assert(t, s.GetBool(sLogStdout))
	assert.Assert(t, s.GetBool(sDebugDump))
	assert.Equal(t, s.GetFloat(sBuzzerTone), 440.5)
	assert.Equal(t, s.GetString(sDisplay), "backpack")
	assert.Equal(t, s.GetPinMap(sCancelBtn), pinMap{port: 1, bit: 4, key: "c"})
	// untouched
	assert.Equal(t, s.GetDuration(sDebounceTime), 50*time.Millisecond)
	_, ok := s.settings["ignored"]
	assert.Assert(t, !ok)
}

func TestSettingsFromJSONErrors(t *testing.T) {
	cases := []struct {
		name string
		json string
		key  string
	}{
		{"duration", `{"loopDelay": "soon"}`, sLoopDelay},
		{"byte range", `{"i2cDevice": 300}`, sI2CDev},
		{"bool", `{"logStdout": "maybe"}`, sLogStdout},
		{"missing bit", `{"buzzer": {"port": 0}}`, sBuzzer},
		{"bit range", `{"buzzer": {"bit": 900}}`, sBuzzer},
		{"int", `{"flashDivisor": "fast"}`, sFlashDivisor},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := defaultSettings()
			err := s.settingsFromJSON([]byte(c.json))
			assert.Assert(t, is.ErrorContains(err, "setting "+c.key))
		})
	}
}

func TestInitSettings(t *testing.T) {
	s, err := initSettings("")
	assert.NilError(t, err)
	assert.Equal(t, s.GetInt(sTicksPerSecond), 1000)

	dir := t.TempDir()
	_, err = initSettings(filepath.Join(dir, "missing.conf"))
	assert.Assert(t, is.ErrorContains(err, "could not load conf file"))

	conf := filepath.Join(dir, "alarmclock.conf")
	assert.NilError(t, os.WriteFile(conf, []byte(`{"ioDriver": "cdev"}`), 0644))
	s, err = initSettings(conf)
	assert.NilError(t, err)
	assert.Equal(t, s.GetString(sIODriver), "cdev")
}

func TestTicks(t *testing.T) {
	s := testSettings()
	assert.Equal(t, s.ticksPerSecond(), 10)
	assert.Equal(t, s.tickPeriod(), 100*time.Millisecond)
	assert.Equal(t, s.ticks(sLongPressTime), uint32(30))
	assert.Equal(t, s.ticks(sDebounceTime), uint32(2))
	assert.Equal(t, s.ticks("nothing"), uint32(0))

	s.settings[sTicksPerSecond] = 0
	assert.Equal(t, s.ticksPerSecond(), 1)
	assert.Equal(t, s.tickPeriod(), time.Second)
}
