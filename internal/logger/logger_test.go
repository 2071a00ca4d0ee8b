package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw     string
		want    zapcore.Level
		wantErr bool
	}{
		{raw: "", want: zapcore.InfoLevel},
		{raw: "debug", want: zapcore.DebugLevel},
		{raw: " WARN ", want: zapcore.WarnLevel},
		{raw: "error", want: zapcore.ErrorLevel},
		{raw: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLevel(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	sink := filepath.Join(t.TempDir(), "app.log")

	log, err := NewLogger(Log{Level: "warn", Format: "json", Sink: sink}, "test")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLogger(Log{Level: "loud"}, "test")
	assert.Error(t, err)
}
