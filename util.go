// utility functions
package main

import (
	"sync"

	"github.com/jonboulle/clockwork"
)

type commChannels struct {
	quit     chan struct{}
	quitOnce *sync.Once
}

type runtimeConfig struct {
	comms    commChannels
	clock    clockwork.Clock
	settings configSettings
	logger   flogger
	wg       *sync.WaitGroup
}

func initCommChannels() commChannels {
	return commChannels{
		quit:     make(chan struct{}),
		quitOnce: &sync.Once{},
	}
}

func initRuntime(clock clockwork.Clock, settings configSettings) runtimeConfig {
	return runtimeConfig{
		comms:    initCommChannels(),
		clock:    clock,
		settings: settings,
		logger:   &ThreadLogger{name: "Main"},
		wg:       &sync.WaitGroup{},
	}
}

// requestQuit tells every loop to stop, safe to call more than once
func (rt runtimeConfig) requestQuit() {
	rt.comms.quitOnce.Do(func() {
		close(rt.comms.quit)
	})
}

// quitting checks the quit channel without blocking
func (rt runtimeConfig) quitting() bool {
	select {
	case <-rt.comms.quit:
		return true
	default:
		return false
	}
}
