package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	ws := t.TempDir()
	first := Entry{
		Timestamp:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		RunID:      "2026-08-001",
		Kind:       "forecast",
		BaseYear:   2025,
		Years:      3,
		CommitHash: "abc1234",
	}
	require.NoError(t, Append(ws, []Entry{first}))
	require.NoError(t, Append(ws, []Entry{{
		Timestamp: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
		RunID:     "2026-08-002",
		Kind:      "backtest",
		BaseYear:  2022,
		Years:     3,
		Warnings:  1,
	}}))

	entries, err := Read(ws)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, "backtest", entries[1].Kind)
	assert.Equal(t, 1, entries[1].Warnings)

	data, err := os.ReadFile(filepath.Join(ws, "logs", "run-log.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestReadMissing(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnmarshalEntryBadRow(t *testing.T) {
	_, err := UnmarshalEntry([]string{"only", "three", "fields"})
	require.Error(t, err)

	_, err = UnmarshalEntry([]string{"not-a-time", "2026-08-001", "forecast", "2025", "3", "0", ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing timestamp")
}
