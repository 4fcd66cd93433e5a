package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFacadeWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Use(zap.New(core))
	t.Cleanup(func() { Use(zap.NewNop()) })

	Info("booking created", "booking_id", int64(7), "travelers", 2)
	Warn("upload rejected", "reason", "size")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "booking created", entries[0].Message)
	assert.Equal(t, int64(7), entries[0].ContextMap()["booking_id"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := Setup(false, "loud")
	assert.Error(t, err)
}
