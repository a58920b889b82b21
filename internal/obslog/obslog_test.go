package obslog

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled(t *testing.T) {
	oldEnabled, oldVerbose := enabled, verbose
	defer func() { enabled, verbose = oldEnabled, oldVerbose }()

	enabled, verbose = false, false
	assert.False(t, Enabled())

	enabled = true
	assert.True(t, Enabled())

	enabled, verbose = false, true
	assert.True(t, Enabled())
}

func TestSetVerbose(t *testing.T) {
	oldEnabled, oldVerbose := enabled, verbose
	defer func() { enabled, verbose = oldEnabled, oldVerbose }()
	enabled = false

	SetVerbose(true)
	assert.True(t, Enabled())
	SetVerbose(false)
	assert.False(t, Enabled())
}

func TestSetQuietAndIsQuiet(t *testing.T) {
	oldQuiet := quiet
	defer func() { quiet = oldQuiet }()

	SetQuiet(true)
	assert.True(t, IsQuiet())
	SetQuiet(false)
	assert.False(t, IsQuiet())
}

func TestDebugfRespectsEnabled(t *testing.T) {
	oldEnabled, oldVerbose := enabled, verbose
	oldStderr := os.Stderr
	defer func() {
		enabled, verbose = oldEnabled, oldVerbose
		os.Stderr = oldStderr
	}()

	enabled, verbose = false, false
	r, w, _ := os.Pipe()
	os.Stderr = w
	Debugf("hidden %d", 1)
	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	assert.Empty(t, buf.String())

	enabled = true
	r, w, _ = os.Pipe()
	os.Stderr = w
	Debugf("shown %d", 1)
	w.Close()
	buf.Reset()
	io.Copy(&buf, r)
	assert.Equal(t, "[debug] shown 1\n", buf.String())
}

func TestErrorfIncludesCorrelationID(t *testing.T) {
	oldStderr := os.Stderr
	defer func() { os.Stderr = oldStderr }()

	r, w, _ := os.Pipe()
	os.Stderr = w
	Errorf("corr-123", "boom: %s", "disk full")
	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	assert.Equal(t, "[error] [corr-123] boom: disk full\n", buf.String())
}

func TestPrintNormalRespectsQuiet(t *testing.T) {
	oldQuiet := quiet
	oldStdout := os.Stdout
	defer func() {
		quiet = oldQuiet
		os.Stdout = oldStdout
	}()

	quiet = true
	r, w, _ := os.Pipe()
	os.Stdout = w
	PrintNormal("hidden\n")
	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	assert.Empty(t, buf.String())

	quiet = false
	r, w, _ = os.Pipe()
	os.Stdout = w
	PrintNormal("shown %d\n", 7)
	w.Close()
	buf.Reset()
	io.Copy(&buf, r)
	assert.Equal(t, "shown 7\n", buf.String())
}
