package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := Open(filepath.Join(t.TempDir(), "audit.db"), "audit")
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func TestAppendAndRecent(t *testing.T) {
	log := openTestLog(t)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	for i, msg := range []string{"first", "second", "third"} {
		require.NoError(t, log.Append(Entry{
			Message:    msg,
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := log.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Newest first.
	assert.Equal(t, "third", entries[0].Message)
	assert.Equal(t, "first", entries[2].Message)

	size, err := log.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestRecentHonorsLimit(t *testing.T) {
	log := openTestLog(t)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, log.Append(Entry{Message: "m", RecordedAt: base.Add(time.Duration(i) * time.Second)}))
	}

	entries, err := log.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCleanupDropsOldEntries(t *testing.T) {
	log := openTestLog(t)
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fresh := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, log.Append(Entry{Message: "old", RecordedAt: old}))
	require.NoError(t, log.Append(Entry{Message: "fresh", RecordedAt: fresh}))

	require.NoError(t, log.Cleanup(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))

	entries, err := log.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].Message)
}
