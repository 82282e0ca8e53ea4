package loader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MasterOfBinary/docbatch/collate"
	. "github.com/MasterOfBinary/docbatch/loader"
)

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "INFO", LogLevelInfo.String())
	assert.Equal(t, "WARN", LogLevelWarn.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Debug("batch %d", 1)
	logger.Info("read %d examples", 10)
	logger.Warn("batch %d empty", 2)
	logger.Error("collate failed: %v", "boom")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "batch 1", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "read 10 examples", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "collate failed: boom", entries[3].Message)
}

func TestZapLogger_Nil(t *testing.T) {
	logger := NewZapLogger(nil)
	assert.NotPanics(t, func() {
		logger.Info("discarded")
		logger.Log(LogLevel(99), "unknown level")
	})
}

func TestZapLogger_LoaderMessages(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := New(NewBatchSizeConfig(2), mustCollator(0)).WithLogger(NewZapLogger(zap.New(core)))

	errs := Run(t.Context(), l, &testSource{Examples: examples(4)}, func(*collate.Batch) error { return nil })
	require.Empty(t, errs)

	assert.Equal(t, 1, logs.FilterMessageSnippet("Starting loader").Len())
	assert.Equal(t, 1, logs.FilterMessage("Loader complete. Total batches: 2").Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.DebugLevel).Len())
}
