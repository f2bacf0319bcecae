package testutil

import (
	"encoding/hex"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// ErrEntropyUnavailable is returned by ErrReader.
var ErrEntropyUnavailable = errors.New("entropy source unavailable")

// ErrReader fails every read, standing in for a broken randomness source.
type ErrReader struct{}

func (ErrReader) Read([]byte) (int, error) {
	return 0, ErrEntropyUnavailable
}

// NewTestLogger routes log output through t so it only shows for failing tests.
func NewTestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))
}

// MustDecodeHex decodes a hex fixture or fails the test.
func MustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex fixture %q: %v", s, err)
	}
	return b
}
