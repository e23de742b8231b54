package format

import (
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"asfmlog/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []core.LogEntry {
	return []core.LogEntry{
		core.NewEntry(core.LevelInfo, "startup complete", "app", "main"),
		core.NewEntry(core.LevelError, `quoted "value", with comma`, "db", ""),
		core.NewEntry(core.LevelWarn, "unicode: héllo wörld é", "api", "handle"),
	}
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{name: "json", wantName: "json"},
		{name: "structured", wantName: "json"},
		{name: "CSV", wantName: "csv"},
		{name: "tabular", wantName: "csv"},
		{name: "txt", wantName: "txt"},
		{name: "text", wantName: "txt"},
		{name: "plaintext", wantName: "txt"},
		{name: " Json ", wantName: "json"},
		{name: "xml", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc.name), func(t *testing.T) {
			f, err := New(tc.name)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, f.Name())
		})
	}
}

func TestJSONFormatter_RoundTrip(t *testing.T) {
	entries := sampleEntries()

	data, err := (&JSONFormatter{}).Format(entries)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed, len(entries))

	for i, orig := range entries {
		got := parsed[i]
		assert.True(t, got.Time.Equal(orig.Time), "entry %d timestamp", i)
		assert.Equal(t, orig.Level, got.Level)
		assert.Equal(t, orig.Component, got.Component)
		assert.Equal(t, orig.Function, got.Function)
		assert.Equal(t, orig.Message, got.Message)
		assert.Equal(t, orig.Formatted, got.Formatted)
	}
}

func TestJSONFormatter_EmptySnapshot(t *testing.T) {
	data, err := (&JSONFormatter{}).Format(nil)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func TestCSVFormatter(t *testing.T) {
	entries := sampleEntries()

	data, err := (&CSVFormatter{}).Format(entries)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(entries)+1, "header plus one row per entry")

	assert.Equal(t, csvHeader, records[0])

	// Escaping survives the round trip through encoding/csv
	assert.Equal(t, `quoted "value", with comma`, records[2][4])
	assert.Equal(t, "ERROR", records[2][1])
	assert.Equal(t, "db", records[2][2])
}

func TestCSVFormatter_EmptySnapshot(t *testing.T) {
	data, err := (&CSVFormatter{}).Format(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header row is always present")
}

func TestTextFormatter(t *testing.T) {
	e := core.NewEntry(core.LevelWarn, "disk almost full", "storage", "")
	e.Time = time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)

	data, err := (&TextFormatter{}).Format([]core.LogEntry{e})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-14 09:26:53.589793 [WARN] [storage] disk almost full\n", string(data))
}

func TestTextFormatter_EmptySnapshot(t *testing.T) {
	data, err := (&TextFormatter{}).Format(nil)
	require.NoError(t, err)
	assert.Empty(t, data)
}
