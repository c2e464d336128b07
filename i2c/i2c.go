// Package i2c writes to a Linux I2C device node, or logs the writes when simulated.
package i2c

import (
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

const i2cSlave = 0x0703

type I2C struct {
	fd        *os.File
	address   uint8
	simulated bool
	quiet     bool
	written   [][]byte
}

// Open selects the device at address on /dev/i2c-<bus>
func Open(address uint8, bus int, simulated bool) (*I2C, error) {
	if simulated {
		return &I2C{address: address, simulated: true}, nil
	}
	path := fmt.Sprintf("/dev/i2c-%d", bus)
	f, err := os.OpenFile(path, os.O_RDWR, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	dev := &I2C{fd: f, address: address}
	if err := dev.selectDevice(); err != nil {
		f.Close()
		return nil, err
	}
	return dev, nil
}

// Quiet stops a simulated device from logging every write
func (dev *I2C) Quiet(on bool) {
	dev.quiet = on
}

// Written is every buffer a simulated device was asked to write
func (dev *I2C) Written() [][]byte {
	return dev.written
}

func (dev *I2C) Close() error {
	if dev.simulated {
		dev.logf("close 0x%02x", dev.address)
		return nil
	}
	return dev.fd.Close()
}

// WriteByte sends a single command byte
func (dev *I2C) WriteByte(b byte) error {
	_, err := dev.Write([]byte{b})
	return err
}

// Write is not safe to interleave with writes to other addresses on the bus
func (dev *I2C) Write(buf []byte) (int, error) {
	if err := dev.selectDevice(); err != nil {
		return 0, err
	}
	if dev.simulated {
		dev.written = append(dev.written, append([]byte(nil), buf...))
		dev.logf("write %s", hexBytes(buf))
		return len(buf), nil
	}
	n, err := dev.fd.Write(buf)
	if err != nil {
		return n, errors.Wrapf(err, "write 0x%02x", dev.address)
	}
	return n, nil
}

func (dev *I2C) selectDevice() error {
	if dev.simulated {
		return nil
	}
	if err := ioctl(dev.fd.Fd(), i2cSlave, uintptr(dev.address)); err != nil {
		return errors.Wrapf(err, "select 0x%02x", dev.address)
	}
	return nil
}

func (dev *I2C) logf(format string, args ...interface{}) {
	if dev.quiet {
		return
	}
	log.Printf("i2c: "+format, args...)
}

func hexBytes(buf []byte) string {
	parts := make([]string, len(buf))
	for i, b := range buf {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}

func ioctl(fd, cmd, arg uintptr) error {
	_, _, errno := syscall.Syscall6(syscall.SYS_IOCTL, fd, cmd, arg, 0, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}
