package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	out := buf.String()
	assert.Contains(t, out, "DBG")
	assert.Contains(t, out, "test message arg")
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")
	Info("info")
	Warn("warn")
	Section("section")

	assert.Zero(t, buf.Len(), "expected no output when verbose is disabled")
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Export")

	assert.Contains(t, buf.String(), "=== Export ===")
}

func TestInfoAndWarn(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("info message %d", 42)
	Warn("warning message")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "info message 42")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "warning message")
}

func TestError_AlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error(errors.New("disk full"), "saving session")

	out := buf.String()
	assert.Contains(t, out, "ERR")
	assert.Contains(t, out, "saving session")
	assert.Contains(t, out, "disk full")
}

func TestOutput(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	assert.Same(t, &buf, Output())
}

func TestConcurrentAccess(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
