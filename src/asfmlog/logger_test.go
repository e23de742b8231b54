package asfmlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"asfmlog/src/internal/core"
	"asfmlog/src/internal/format"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quiet disables console output so tests do not write to stdout
func quiet() Config {
	cfg := DefaultConfig()
	cfg.ConsoleOutput = false
	return cfg
}

func newTestLogger(t *testing.T, opts ...Option) *Logger {
	t.Helper()
	l := New("TestApp", "test-proc", opts...)
	l.Configure(quiet())
	t.Cleanup(l.Shutdown)
	return l
}

func TestLogger_LevelMethods(t *testing.T) {
	l := newTestLogger(t)

	l.Trace("t")
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	l.Critical("c")

	logs := l.GetLogs("", "", 0)
	require.Len(t, logs, 6)
	assert.Equal(t, core.LevelTrace, logs[0].Level)
	assert.Equal(t, core.LevelCritical, logs[5].Level)
}

func TestLogger_ComponentAndFunction(t *testing.T) {
	l := newTestLogger(t)

	l.Info("tracked", WithComponent("db"), WithFunction("connect"))
	l.Info("untracked")

	logs := l.GetLogs("", "", 0)
	require.Len(t, logs, 2)
	assert.Equal(t, "db", logs[0].Component)
	assert.Equal(t, "connect", logs[0].Function)
	assert.Equal(t, core.DefaultComponent, logs[1].Component)
	assert.Empty(t, logs[1].Function)
}

func TestLogger_FormattedIsPreRendered(t *testing.T) {
	l := newTestLogger(t)
	l.Info("hello world", WithComponent("svc"))

	logs := l.GetLogs("", "", 0)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Formatted, "[svc] hello world")
	assert.Contains(t, logs[0].Formatted, logs[0].Time.Format(core.TimestampLayout))
}

func TestLogger_GetLogs(t *testing.T) {
	l := newTestLogger(t)

	l.Info("one", WithComponent("A"))
	l.Warn("two", WithComponent("A"))
	l.Info("three", WithComponent("B"))

	t.Run("ByComponent", func(t *testing.T) {
		assert.Len(t, l.GetLogs("A", "", 0), 2)
		assert.Len(t, l.GetLogs("B", "", 0), 1)
		assert.Empty(t, l.GetLogs("C", "", 0))
	})

	t.Run("ByLevelCaseInsensitive", func(t *testing.T) {
		logs := l.GetLogs("", "warn", 0)
		require.Len(t, logs, 1)
		assert.Equal(t, "two", logs[0].Message)
	})

	t.Run("UnknownLevelReturnsNothing", func(t *testing.T) {
		assert.Empty(t, l.GetLogs("", "BOGUS", 0))
	})

	t.Run("Conjunctive", func(t *testing.T) {
		assert.Len(t, l.GetLogs("A", "INFO", 0), 1)
		assert.Empty(t, l.GetLogs("B", "WARN", 0))
	})

	t.Run("LimitKeepsMostRecent", func(t *testing.T) {
		logs := l.GetLogs("", "", 2)
		require.Len(t, logs, 2)
		assert.Equal(t, "two", logs[0].Message)
		assert.Equal(t, "three", logs[1].Message)
	})

	t.Run("DefaultLimit", func(t *testing.T) {
		for i := 0; i < 150; i++ {
			l.Info(fmt.Sprintf("bulk-%d", i))
		}
		assert.Len(t, l.GetLogs("", "", 0), core.DefaultQueryLimit)
	})
}

func TestLogger_CapacityEviction(t *testing.T) {
	l := newTestLogger(t, WithCapacity(50))

	for i := 0; i < 60; i++ {
		l.Info(fmt.Sprintf("msg-%d", i))
	}

	stats := l.GetStatistics()
	assert.Equal(t, 50, stats.TotalMessages)

	logs := l.GetLogs("", "", 50)
	assert.Equal(t, "msg-10", logs[0].Message)
	assert.Equal(t, "msg-59", logs[49].Message)
}

func TestLogger_Statistics(t *testing.T) {
	l := newTestLogger(t)

	t.Run("Empty", func(t *testing.T) {
		s := l.GetStatistics()
		assert.Equal(t, 0, s.TotalMessages)
	})

	t.Run("Populated", func(t *testing.T) {
		l.Info("a", WithComponent("api"))
		l.Error("b", WithComponent("api"))
		l.Info("c", WithComponent("db"))

		s := l.GetStatistics()
		assert.Equal(t, 3, s.TotalMessages)
		assert.Equal(t, 2, s.LevelDistribution["INFO"])
		assert.Equal(t, 1, s.LevelDistribution["ERROR"])
		assert.Equal(t, 2, s.ComponentDistribution["api"])
	})
}

func TestLogger_ClearLogs(t *testing.T) {
	l := newTestLogger(t)
	l.Info("gone")
	l.ClearLogs()
	assert.Equal(t, 0, l.GetStatistics().TotalMessages)
	assert.Empty(t, l.GetLogs("", "", 0))
}

func TestLogger_ExportToFile(t *testing.T) {
	l := newTestLogger(t)
	l.Info("persisted", WithComponent("export"))

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs.json")
		require.NoError(t, l.ExportToFile(path, "json"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		parsed, err := format.Parse(data)
		require.NoError(t, err)
		require.Len(t, parsed, 1)
		assert.Equal(t, "persisted", parsed[0].Message)
	})

	t.Run("UnsupportedFormatLeavesBuffer", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs.bin")
		err := l.ExportToFile(path, "protobuf")
		require.Error(t, err)
		assert.ErrorIs(t, err, format.ErrUnsupportedFormat)
		assert.Equal(t, 1, l.GetStatistics().TotalMessages)
	})
}

func TestLogger_Configure_Degrades(t *testing.T) {
	l := newTestLogger(t)

	// Every value invalid: nothing may error, nothing may panic, and
	// ingestion keeps working
	l.Configure(Config{
		EnableDatabase:     true,
		DatabaseConnection: "not a url",
		EnableSharedMemory: true,
		SharedMemoryName:   "",
		ConsoleOutput:      false,
		LogFile:            "degraded.log",
		MaxFileSizeBytes:   -1,
		MaxFiles:           0,
		MinLogLevel:        "LOUD",
	})

	l.Info("still alive")
	assert.Equal(t, 1, l.GetStatistics().TotalMessages)

	// Degraded sinks show up as noop variants
	var noops int
	for _, s := range l.SinkStats() {
		if s.Type == "noop" {
			noops++
		}
	}
	assert.Equal(t, 3, noops, "backend, file and shared memory all degrade to noop")
}

func TestLogger_FileSink(t *testing.T) {
	dir := t.TempDir()
	l := newTestLogger(t)

	cfg := quiet()
	cfg.LogFile = filepath.Join(dir, "app.log")
	cfg.MinLogLevel = "TRACE"
	l.Configure(cfg)

	l.Info("to disk", WithComponent("filetest"))

	// The sink writer flushes on shutdown
	l.Shutdown()

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, files, "file sink should have created a log file")
}

func TestLogger_MinLevelGatesSinksNotBuffer(t *testing.T) {
	l := newTestLogger(t)

	cfg := quiet()
	cfg.MinLogLevel = "ERROR"
	l.Configure(cfg)

	l.Debug("below threshold")
	l.Error("above threshold")

	// The buffer records everything regardless of the sink threshold
	assert.Equal(t, 2, l.GetStatistics().TotalMessages)
}

func TestLogger_Monitoring(t *testing.T) {
	l := newTestLogger(t)

	var mu sync.Mutex
	var got []string
	l.EnableMonitoring(func(batch []LogEntry) {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range batch {
			got = append(got, e.Message)
		}
	}, 15*time.Millisecond)

	l.Info("observed")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n >= 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	l.DisableMonitoring()

	l.Info("after disable")
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"observed"}, got)
}

func TestLogger_ConcurrentProducersAndReaders(t *testing.T) {
	const producers, perProducer, readers = 8, 300, 4

	l := newTestLogger(t)
	var wg sync.WaitGroup

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				l.Info(fmt.Sprintf("p%d-%d", p, i), WithComponent(fmt.Sprintf("c%d", p%3)))
			}
		}(p)
	}

	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = l.GetLogs("c0", "", 50)
				_ = l.GetStatistics()
			}
		}()
	}

	wg.Wait()

	stats := l.GetStatistics()
	assert.Equal(t, core.DefaultCapacity, stats.TotalMessages)

	levelSum := 0
	for _, n := range stats.LevelDistribution {
		levelSum += n
	}
	assert.Equal(t, stats.TotalMessages, levelSum)
}
