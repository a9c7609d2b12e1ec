package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withCapturedOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestVerboseToggle(t *testing.T) {
	buf := withCapturedOutput(t)

	SetVerbose(false)
	Debug("hidden %d", 1)
	Info("hidden")
	Warn("hidden")
	Section("hidden")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	assert.True(t, IsVerbose())
	Debug("shown %d", 1)
	Info("info line")
	Warn("warn line")
	Section("Pipeline")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] shown 1")
	assert.Contains(t, out, "[INFO] info line")
	assert.Contains(t, out, "[WARN] warn line")
	assert.Contains(t, out, "=== Pipeline ===")
}

func TestErrorAlwaysPrints(t *testing.T) {
	buf := withCapturedOutput(t)

	SetVerbose(false)
	Error("save failed: %v", "disk full")
	assert.Contains(t, buf.String(), "[ERROR] save failed: disk full")
}
