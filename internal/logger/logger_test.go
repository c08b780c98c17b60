package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplaceCapturesAndRestores(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core).Sugar())

	Named("dashboard").Infow("cache miss", "user_id", "u1")
	Get().Debug("below level")

	restore()

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "cache miss", entries[0].Message)
		assert.Equal(t, "dashboard", entries[0].LoggerName)
		assert.Equal(t, "u1", entries[0].ContextMap()["user_id"])
	}
	assert.NotNil(t, Get())
}
