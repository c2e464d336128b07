package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/assert"
)

func TestSetupLogging(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "clock.log")
	s := testSettings()
	s.settings[sLogFile] = logFile

	closer, err := setupLogging(s, false)
	assert.NilError(t, err)
	defer func() {
		log.SetOutput(os.Stderr)
		closer.Close()
	}()

	tl := &ThreadLogger{name: "Ticker"}
	tl.Printf("tick %d", 7)
	tl.Println("done")

	data, err := os.ReadFile(logFile)
	assert.NilError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, len(lines), 2)
	assert.Assert(t, strings.HasSuffix(lines[0], "Ticker: tick 7"), lines[0])
	assert.Assert(t, strings.HasSuffix(lines[1], "Ticker: done"), lines[1])
}

func TestSetupLoggingBadPath(t *testing.T) {
	s := testSettings()
	// a file where a directory should be
	blocker := filepath.Join(t.TempDir(), "file")
	assert.NilError(t, os.WriteFile(blocker, nil, 0644))
	s.settings[sLogFile] = filepath.Join(blocker, "clock.log")

	_, err := setupLogging(s, false)
	assert.Assert(t, err != nil)
}
