package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func Test_NewLogger(t *testing.T) {
	t.Run("debug level enabled when requested", func(t *testing.T) {
		l, err := NewLogger(&LoggerConfig{Debug: true})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zap.DebugLevel))
	})

	t.Run("info level by default", func(t *testing.T) {
		l, err := NewLogger(&LoggerConfig{})
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zap.DebugLevel))
		assert.True(t, l.Core().Enabled(zap.InfoLevel))
	})

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		l, err := NewLogger(nil)
		require.NoError(t, err)
		assert.NotNil(t, l)
	})
}
