package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ssargent/calltrace/pkg/calllog"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{"console info", "info", "console", false},
		{"json debug", "debug", "json", false},
		{"default format", "warn", "", false},
		{"bad level", "loud", "console", true},
		{"bad format", "info", "xml", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := New(tc.level, tc.format)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_Level(t *testing.T) {
	logger, err := New("warn", "json")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestWithRunID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger, id := WithRunID(zap.New(core))
	assert.Len(t, id, 27)

	logger.Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, id, logs.All()[0].ContextMap()["run_id"])
}

func TestSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewSink(zap.New(core))

	sink.RunStarted(3)
	sink.DecodeFailed(10, errors.New("bad trailer"))
	sink.NotCallRecord(20, calllog.ErrNotCallRecord)
	sink.MissingIdentity(30)
	sink.Duplicate(40, "AAAAAAAA-0000-0000-0000-000000000000")
	sink.Emitted(&calllog.CallRecord{})
	sink.RunCompleted(calllog.Stats{Ranges: 3, Emitted: 1, Duplicates: 1})

	assert.Equal(t, 6, logs.Len())
	assert.Equal(t, 1, logs.FilterMessage("structured decode failed").FilterField(zap.Int("offset", 10)).Len())
	assert.Equal(t, 1, logs.FilterField(zap.String("unique_id", "AAAAAAAA-0000-0000-0000-000000000000")).Len())

	summary := logs.FilterMessage("decode complete").All()
	require.Len(t, summary, 1)
	assert.Equal(t, zapcore.InfoLevel, summary[0].Level)
	assert.Equal(t, int64(1), summary[0].ContextMap()["emitted"])
}
