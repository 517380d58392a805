package testutil

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// testWriter forwards zerolog output to t.Log so that log lines attach
// to the test that produced them.
type testWriter struct {
	t *testing.T
}

// Write implements the io.Writer interface.
func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// NewTestLogger creates a zerolog.Logger that writes to the provided
// testing.T at trace level.
func NewTestLogger(t *testing.T) zerolog.Logger {
	return zerolog.New(testWriter{t: t}).Level(zerolog.TraceLevel)
}
