package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderFlushesOnStop(t *testing.T) {
	log := openTestLog(t)
	rec := NewRecorder(log, nil, RecorderConfig{QueueSize: 8})
	rec.Start()

	rec.Record("Tag: Task created || actor: mgr-1")
	rec.Record("Tag: Status changed || actor: mgr-1")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rec.Stop(ctx)

	entries, err := log.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Tag: Status changed || actor: mgr-1", entries[0].Message)
}

func TestRecorderDropsWhenQueueFull(t *testing.T) {
	log := openTestLog(t)
	rec := NewRecorder(log, nil, RecorderConfig{QueueSize: 1})
	// Not started, so the queue never drains; the second record is dropped.
	rec.Record("kept")
	rec.Record("dropped")

	rec.Start()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rec.Stop(ctx)

	entries, err := log.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)
}

func TestRecorderStopIsIdempotent(t *testing.T) {
	log := openTestLog(t)
	rec := NewRecorder(log, nil, RecorderConfig{})
	rec.Start()

	ctx := context.Background()
	rec.Stop(ctx)
	rec.Stop(ctx)
}

func TestRecordAfterStopIsDropped(t *testing.T) {
	log := openTestLog(t)
	rec := NewRecorder(log, nil, RecorderConfig{})
	rec.Start()
	rec.Record("before stop")
	rec.Stop(context.Background())

	// A stray caller after shutdown must not panic on the closed queue.
	rec.Record("after stop")

	entries, err := log.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "before stop", entries[0].Message)
}
