//go:build linux

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"
)

func init() {
	features = append(features, "cdev")
}

// cdevDriver uses the GPIO character device. The port picks /dev/gpiochipN,
// the bit is the line offset on that chip.
type cdevDriver struct {
	pullUps map[gpioLine]bool
	chips   map[uint8]*gpiocdev.Chip
	lines   map[gpioLine]*gpiocdev.Line
	logger  flogger
}

func newCdevDriver(pullUps map[gpioLine]bool) (*cdevDriver, error) {
	cd := &cdevDriver{
		pullUps: pullUps,
		chips:   make(map[uint8]*gpiocdev.Chip),
		lines:   make(map[gpioLine]*gpiocdev.Line),
		logger:  &ThreadLogger{name: "cdev"},
	}
	// fail early if there is no chip at all
	if _, err := cd.chip(0); err != nil {
		return nil, err
	}
	return cd, nil
}

func (cd *cdevDriver) chip(port uint8) (*gpiocdev.Chip, error) {
	if c, ok := cd.chips[port]; ok {
		return c, nil
	}
	name := fmt.Sprintf("gpiochip%d", port)
	c, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	cd.chips[port] = c
	return c, nil
}

func (cd *cdevDriver) SetDirection(port, bit uint8, output bool) {
	var opts []gpiocdev.LineReqOption
	if output {
		opts = append(opts, gpiocdev.AsOutput(0))
	} else if cd.pullUps[gpioLine{port, bit}] {
		opts = append(opts, gpiocdev.AsInput, gpiocdev.WithPullUp)
	} else {
		opts = append(opts, gpiocdev.AsInput, gpiocdev.WithPullDown)
	}

	// a direction change releases the line and requests it again
	key := gpioLine{port, bit}
	if l, ok := cd.lines[key]; ok {
		l.Close()
		delete(cd.lines, key)
	}

	c, err := cd.chip(port)
	if err != nil {
		cd.logger.Println(err.Error())
		return
	}
	l, err := c.RequestLine(int(bit), opts...)
	if err != nil {
		cd.logger.Printf("request %d.%d: %s", port, bit, err.Error())
		return
	}
	cd.lines[key] = l
}

// ReadLogical reads a missing or failing line as low
func (cd *cdevDriver) ReadLogical(port, bit uint8) bool {
	l, ok := cd.lines[gpioLine{port, bit}]
	if !ok {
		return false
	}
	v, err := l.Value()
	if err != nil {
		cd.logger.Printf("read %d.%d: %s", port, bit, err.Error())
		return false
	}
	return v != 0
}

func (cd *cdevDriver) WriteLogical(port, bit uint8, value bool) {
	l, ok := cd.lines[gpioLine{port, bit}]
	if !ok {
		return
	}
	v := 0
	if value {
		v = 1
	}
	if err := l.SetValue(v); err != nil {
		cd.logger.Printf("write %d.%d: %s", port, bit, err.Error())
	}
}

func (cd *cdevDriver) Close() error {
	var errs []error
	for key, l := range cd.lines {
		// back to a plain input so nothing is left driven
		l.Reconfigure(gpiocdev.AsInput)
		if err := l.Close(); err != nil {
			errs = append(errs, errors.Wrapf(err, "close line %d.%d", key.port, key.bit))
		}
	}
	for port, c := range cd.chips {
		if err := c.Close(); err != nil {
			errs = append(errs, errors.Wrapf(err, "close chip %d", port))
		}
	}
	if len(errs) > 0 {
		return errors.Errorf("close errors: %v", errs)
	}
	return nil
}
