package main

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

// rpioDriver talks to the BCM GPIO block through /dev/gpiomem. There is a
// single bank, the port is ignored.
type rpioDriver struct {
	pullUps map[gpioLine]bool
	logger  flogger
}

// newRpioDriver maps the GPIO memory. pullUps names the input lines that
// idle high, every other input gets a pull-down.
func newRpioDriver(pullUps map[gpioLine]bool) (*rpioDriver, error) {
	if err := rpio.Open(); err != nil {
		return nil, errors.Wrap(err, "rpio open")
	}
	return &rpioDriver{pullUps: pullUps, logger: &ThreadLogger{name: "rpio"}}, nil
}

func (rd *rpioDriver) SetDirection(port, bit uint8, output bool) {
	pin := rpio.Pin(bit)
	if output {
		pin.Output()
		return
	}
	pin.Input()
	if rd.pullUps[gpioLine{port, bit}] {
		pin.PullUp() // GND => pressed
	} else {
		pin.PullDown()
	}
}

func (rd *rpioDriver) ReadLogical(port, bit uint8) bool {
	return rpio.Pin(bit).Read() == rpio.High
}

func (rd *rpioDriver) WriteLogical(port, bit uint8, value bool) {
	if value {
		rpio.Pin(bit).High()
	} else {
		rpio.Pin(bit).Low()
	}
}

func (rd *rpioDriver) Close() error {
	rd.logger.Println("closing")
	return rpio.Close()
}
