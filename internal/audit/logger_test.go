package audit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	logger, err := NewLogger(path)
	require.NoError(t, err)

	require.NoError(t, logger.Log(EventRunStarted, map[string]any{"records": 3}))
	require.NoError(t, logger.Log(EventRecordFailed, map[string]any{"row": 7, "reason": "date"}))
	require.NoError(t, logger.Log(EventRunCompleted, nil))
	require.NoError(t, logger.Close())

	events, err := ReadEvents(path, "")
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, EventRunStarted, events[0].Type)
	assert.Equal(t, EventRecordFailed, events[1].Type)
	assert.Equal(t, EventRunCompleted, events[2].Type)
	assert.Equal(t, float64(3), events[0].Data["records"])
	assert.False(t, events[0].Timestamp.IsZero())
	for _, e := range events {
		assert.Equal(t, logger.RunID(), e.RunID)
	}
}

func TestReadEvents_FilterByType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	logger, err := NewLogger(path)
	require.NoError(t, err)
	require.NoError(t, logger.Log(EventRecordNormalized, map[string]any{"row": 0}))
	require.NoError(t, logger.Log(EventRecordFailed, map[string]any{"row": 1}))
	require.NoError(t, logger.Log(EventRecordNormalized, map[string]any{"row": 2}))
	require.NoError(t, logger.Close())

	failed, err := ReadEvents(path, EventRecordFailed)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, float64(1), failed[0].Data["row"])
}

func TestReadEvents_MissingFile(t *testing.T) {
	events, err := ReadEvents(filepath.Join(t.TempDir(), "nope.jsonl"), "")
	require.NoError(t, err)
	assert.Nil(t, events)
}

func TestLogger_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "audit.jsonl")

	logger, err := NewLogger(path)
	require.NoError(t, err)
	require.NoError(t, logger.Log(EventRunStarted, nil))
	require.NoError(t, logger.Close())

	events, err := ReadEvents(path, "")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestLogger_WriteFailureReturned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	logger, err := NewLogger(path)
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	err = logger.Log(EventRunStarted, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write audit event")
}

func TestLogger_AppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	first, err := NewLogger(path)
	require.NoError(t, err)
	require.NoError(t, first.Log(EventRunStarted, nil))
	require.NoError(t, first.Close())

	second, err := NewLogger(path)
	require.NoError(t, err)
	require.NoError(t, second.Log(EventRunStarted, nil))
	require.NoError(t, second.Close())

	events, err := ReadEvents(path, "")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.NotEqual(t, events[0].RunID, events[1].RunID)
}
