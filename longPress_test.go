package main

import (
	"testing"

	"gotest.tools/assert"
)

func TestLongPressFiresOnce(t *testing.T) {
	var lp longPress
	fired := 0
	for now := uint32(100); now < 200; now++ {
		if lp.check(true, now, 10) {
			fired++
			assert.Equal(t, now, uint32(110))
		}
	}
	assert.Equal(t, fired, 1)
}

func TestLongPressReleaseResets(t *testing.T) {
	var lp longPress
	for now := uint32(0); now < 9; now++ {
		assert.Equal(t, lp.check(true, now, 10), false)
	}
	// let go just before it fires
	assert.Equal(t, lp.check(false, 9, 10), false)
	assert.Equal(t, lp, longPress{})

	assert.Equal(t, lp.check(true, 10, 10), false)
	assert.Equal(t, lp.check(true, 19, 10), false)
	assert.Assert(t, lp.check(true, 20, 10))

	// a new hold fires again
	lp.check(false, 21, 10)
	lp.check(true, 22, 10)
	assert.Assert(t, lp.check(true, 32, 10))
}

func TestLongPressTickWrap(t *testing.T) {
	var lp longPress
	start := ^uint32(0) - 3
	assert.Equal(t, lp.check(true, start, 10), false)
	assert.Equal(t, lp.check(true, start+9, 10), false)
	assert.Assert(t, lp.check(true, start+10, 10))
}
