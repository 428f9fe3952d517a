package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		format  string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{level: "debug", format: "console", enabled: zapcore.DebugLevel},
		{level: "info", format: "json", enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
		{level: "warn", format: "json", enabled: zapcore.WarnLevel, muted: zapcore.InfoLevel},
		{level: "error", format: "console", enabled: zapcore.ErrorLevel, muted: zapcore.WarnLevel},
		{level: "bogus", format: "console", enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level, tt.format)
			assert.NotNil(t, l)
			assert.True(t, l.Core().Enabled(tt.enabled))
			if tt.enabled != zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.muted))
			}
		})
	}
}
