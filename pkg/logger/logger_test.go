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

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", "json")
	assert.Error(t, err)

	log, err := New("debug", "text")
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestKeyValueFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := (&Logger{Logger: zap.New(core)}).WithComponent("listing")

	log.Info("listed", "page", 2, "total", int64(16), "query", "mars", "err", errors.New("boom"), "dangling")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "listing", fields["component"])
	assert.Equal(t, int64(2), fields["page"])
	assert.Equal(t, int64(16), fields["total"])
	assert.Equal(t, "mars", fields["query"])
	assert.Equal(t, "boom", fields["err"])
	assert.Contains(t, fields, "dangling")
}
