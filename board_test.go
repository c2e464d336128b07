package main

import (
	"testing"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func TestOpenHardware(t *testing.T) {
	cases := []struct {
		name    string
		io      string
		display string
		audio   bool
		closers int
	}{
		{"gpio", "none", "gpio", false, 0},
		{"backpack", "none", "backpack", false, 1},
		{"tone", "none", "gpio", true, 1},
		{"log", "none", "log", false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rt, _ := testRuntime()
			rt.settings.settings[sIODriver] = c.io
			rt.settings.settings[sDisplay] = c.display
			rt.settings.settings[sBuzzerAudio] = c.audio
			rt.settings.settings[sI2CSimulated] = true

			hw, err := openHardware(rt)
			assert.NilError(t, err)
			assert.Equal(t, len(hw.closers), c.closers)
			assert.Equal(t, hw.board.screen.Digits(), uint8(displayDigits))
			assert.NilError(t, hw.Close())
		})
	}
}

func TestOpenHardwareErrors(t *testing.T) {
	cases := []struct {
		name    string
		io      string
		display string
		err     string
	}{
		{"io", "parallel", "gpio", "unknown io driver 'parallel'"},
		{"display", "none", "lcd", "unknown display 'lcd'"},
		{"term", "none", "term", "needs the keys io driver"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rt, _ := testRuntime()
			rt.settings.settings[sIODriver] = c.io
			rt.settings.settings[sDisplay] = c.display

			_, err := openHardware(rt)
			assert.Assert(t, is.ErrorContains(err, c.err))
		})
	}
}

func TestInputPullUps(t *testing.T) {
	s := testSettings()
	s.settings[sAcceptBtn] = pinMap{bit: 25}
	s.settings[sCancelBtn] = pinMap{port: 1, bit: 5, inverted: true}
	pullUps := inputPullUps(s)
	assert.Equal(t, len(pullUps), 5)
	assert.Assert(t, !pullUps[gpioLine{0, 25}])
	assert.Assert(t, pullUps[gpioLine{0, 17}])
	// same bit on another chip is a different line
	assert.Assert(t, pullUps[gpioLine{1, 5}])
	assert.Assert(t, !pullUps[gpioLine{0, 5}])
}
