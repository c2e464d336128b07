package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// flogger is the slice of log.Logger the workers use
type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ThreadLogger prefixes every line with the worker name
type ThreadLogger struct {
	name string
}

func (tl *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Printf("%s: %s", tl.name, fmt.Sprintf(format, v...))
}

func (tl *ThreadLogger) Println(v ...interface{}) {
	log.Printf("%s: %s", tl.name, fmt.Sprint(v...))
}

// setupLogging points the standard logger at a rotated log file, tee'd to
// stdout when asked. The terminal belongs to the keyboard simulator, so
// stdout is only used when there is no simulator.
func setupLogging(settings configSettings, stdout bool) (io.Closer, error) {
	lj := &lumberjack.Logger{
		Filename:   settings.GetString(sLogFile),
		MaxSize:    settings.GetInt(sLogMaxSize),
		MaxBackups: settings.GetInt(sLogMaxBackups),
	}

	// lumberjack opens lazily, make sure the file can be written now
	if _, err := lj.Write([]byte{}); err != nil {
		return nil, err
	}

	var w io.Writer = lj
	if stdout {
		w = io.MultiWriter(lj, os.Stdout)
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return lj, nil
}
