package sink

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"asfmlog/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a bytes.Buffer for writes from the sink goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestConsoleSink_RoutesByLevel(t *testing.T) {
	stdout := &syncBuffer{}
	stderr := &syncBuffer{}
	s := newConsoleSink(stdout, stderr, log.NewLogger())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.True(t, Offer(s, core.NewEntry(core.LevelInfo, "hello", "app", "")))
	require.True(t, Offer(s, core.NewEntry(core.LevelError, "boom", "db", "")))
	require.True(t, Offer(s, core.NewEntry(core.LevelCritical, "down", "db", "")))

	waitFor(t, func() bool { return s.GetStats().TotalProcessed == 3 })

	assert.Contains(t, stdout.String(), "INFO: ")
	assert.Contains(t, stdout.String(), "hello")
	assert.NotContains(t, stdout.String(), "boom")

	assert.Contains(t, stderr.String(), "ERROR: ")
	assert.Contains(t, stderr.String(), "CRITICAL: ")
}

func TestConsoleSink_NoColorForInjectedWriters(t *testing.T) {
	stdout := &syncBuffer{}
	s := newConsoleSink(stdout, &syncBuffer{}, log.NewLogger())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.True(t, Offer(s, core.NewEntry(core.LevelInfo, "plain", "app", "")))
	waitFor(t, func() bool { return s.GetStats().TotalProcessed == 1 })

	assert.NotContains(t, stdout.String(), "\x1b[")
}

func TestOffer_DropsWhenFull(t *testing.T) {
	// Not started, so the single-slot channel fills immediately
	n := NewNoopSink("test")
	assert.True(t, Offer(n, core.NewEntry(core.LevelInfo, "first", "app", "")))
	assert.False(t, Offer(n, core.NewEntry(core.LevelInfo, "second", "app", "")))
}

func TestNoopSink_Discards(t *testing.T) {
	n := NewNoopSink("shared memory unavailable")
	require.NoError(t, n.Start(context.Background()))
	defer n.Stop()

	require.True(t, Offer(n, core.NewEntry(core.LevelInfo, "gone", "app", "")))
	waitFor(t, func() bool { return n.GetStats().TotalProcessed == 1 })

	stats := n.GetStats()
	assert.Equal(t, "noop", stats.Type)
	assert.Equal(t, "shared memory unavailable", stats.Details["reason"])
}
