package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// build tags add to this
var features []string

// alarmclock -config={config file}
func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "alarmclock: %+v\n", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so the log file, the hardware and the
// terminal are always closed
func run(configFile string) error {
	settings, err := initSettings(configFile)
	if err != nil {
		return err
	}

	// the keyboard simulator owns the terminal
	stdout := settings.GetBool(sLogStdout) && settings.GetString(sIODriver) != "keys"
	logs, err := setupLogging(settings, stdout)
	if err != nil {
		return errors.Wrap(err, "logging")
	}
	defer logs.Close()

	log.Printf("alarmclock starting, features %v", features)
	settings.Dump()

	rt := initRuntime(clockwork.NewRealClock(), settings)
	hw, err := openHardware(rt)
	if err != nil {
		log.Printf("hardware: %s", err.Error())
		return errors.Wrap(err, "hardware")
	}
	defer hw.Close()

	app := newClockApp(rt, hw.board)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		select {
		case sig := <-signals:
			rt.logger.Printf("got %s", sig)
			rt.requestQuit()
		case <-rt.comms.quit:
		}
	}()

	startTicker(rt, app)
	startMainLoop(rt, app)

	rt.wg.Wait()
	log.Println("alarmclock stopped")
	return nil
}
