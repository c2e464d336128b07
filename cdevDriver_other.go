//go:build !linux

package main

import "github.com/pkg/errors"

// cdevDriver is only available on Linux
type cdevDriver struct{}

func newCdevDriver(pullUps map[gpioLine]bool) (*cdevDriver, error) {
	return nil, errors.New("gpio character device requires linux")
}

func (cd *cdevDriver) SetDirection(port, bit uint8, output bool) {}

func (cd *cdevDriver) ReadLogical(port, bit uint8) bool { return false }

func (cd *cdevDriver) WriteLogical(port, bit uint8, value bool) {}

func (cd *cdevDriver) Close() error { return nil }
