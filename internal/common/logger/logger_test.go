package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestZapAdapter_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "generate-application-document"})

	log.Warn("application not found", map[string]interface{}{
		"applicationId": "5b1f",
		"error":         errors.New("boom"),
	})
	log.Debug("debug line", nil)

	require.Equal(t, 2, logs.Len())

	warn := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warn, 1)
	ctx := warn[0].ContextMap()
	assert.Equal(t, "generate-application-document", ctx["taskType"])
	assert.Equal(t, "5b1f", ctx["applicationId"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestWithError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	NewZapAdapter(zap.New(core)).WithError(errors.New("upload failed")).Error("job failed", nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "upload failed", logs.All()[0].ContextMap()["error"])
}

func TestMapToZapFields_Sorted(t *testing.T) {
	fields := mapToZapFields(map[string]interface{}{"b": 2, "a": 1, "c": 3})
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "b", fields[1].Key)
	assert.Equal(t, "c", fields[2].Key)
	assert.Nil(t, mapToZapFields(nil))
}

func TestNewWithOptions_InvalidOutputFallsBackToNop(t *testing.T) {
	l := NewWithOptions(Options{Level: "info", Format: "json", Output: "/nonexistent-dir/x/y.log"})
	assert.NotNil(t, l)
}
