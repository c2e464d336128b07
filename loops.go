package main

import (
	"time"
)

// the tick loop gives up catching up after falling this far behind
const dMaxTickLag = time.Minute

func startTicker(rt runtimeConfig, app *clockApp) {
	rt.logger = &ThreadLogger{name: "Ticker"}
	rt.wg.Add(1)
	go runTicker(rt, app)
}

// runTicker calls onTick once per tick period of the runtime clock. Ticks
// missed while the loop was late are run back to back so the clock keeps time.
func runTicker(rt runtimeConfig, app *clockApp) {
	defer rt.wg.Done()
	defer func() {
		rt.logger.Println("exiting runTicker")
	}()

	period := rt.settings.tickPeriod()
	next := rt.clock.Now()
	for {
		if rt.quitting() {
			return
		}

		now := rt.clock.Now()
		if lag := now.Sub(next); lag > dMaxTickLag {
			rt.logger.Printf("fell behind by %s, skipping ticks", lag)
			next = now
		}
		for !now.Before(next) {
			app.onTick()
			next = next.Add(period)
		}

		rt.clock.Sleep(next.Sub(now))
	}
}

func startMainLoop(rt runtimeConfig, app *clockApp) {
	rt.logger = &ThreadLogger{name: "MainLoop"}
	rt.wg.Add(1)
	go runMainLoop(rt, app)
}

func runMainLoop(rt runtimeConfig, app *clockApp) {
	defer rt.wg.Done()
	defer func() {
		rt.logger.Println("exiting runMainLoop")
	}()

	delay := rt.settings.GetDuration(sLoopDelay)
	for {
		if rt.quitting() {
			return
		}
		app.poll()
		rt.clock.Sleep(delay)
	}
}
