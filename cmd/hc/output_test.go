package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestPrintResultHumanIsIndentedJSON(t *testing.T) {
	oldFormat := format
	format = "human"
	defer func() { format = oldFormat }()

	out := captureStdout(t, func() {
		printResult(map[string]string{"title": "Learn Go"})
	})
	assert.Equal(t, "{\n  \"title\": \"Learn Go\"\n}\n", out)
}

func TestPrintResultJSONIsIndented(t *testing.T) {
	oldFormat := format
	format = "json"
	defer func() { format = oldFormat }()

	out := captureStdout(t, func() {
		printResult(map[string]int{"count": 3})
	})
	assert.Equal(t, "{\n  \"count\": 3\n}\n", out)
}

func TestPrintResultWaybarIsCompactSingleLine(t *testing.T) {
	oldFormat := format
	format = "waybar"
	defer func() { format = oldFormat }()

	out := captureStdout(t, func() {
		printResult(map[string]int{"count": 3})
	})
	assert.Equal(t, "{\"count\":3}\n", out)
}
