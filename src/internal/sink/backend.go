package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"asfmlog/src/internal/core"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// BackendConfig holds backend sink configuration
type BackendConfig struct {
	// URL is the remote collector endpoint entries are POSTed to
	URL string

	// BatchSize is the number of entries flushed per request
	BatchSize int

	// FlushInterval flushes a partial batch after this long
	FlushInterval time.Duration

	// Timeout bounds each HTTP request
	Timeout time.Duration

	// AuthSecret, when set, signs a short-lived HS256 bearer token per
	// request
	AuthSecret string

	// MaxEventsPerSecond caps forwarding; zero means unlimited
	MaxEventsPerSecond float64
}

// BackendSink forwards entries to a remote backend over HTTP. Delivery
// is strictly best effort: failed batches are counted and dropped, never
// retried synchronously, and no failure reaches the record path.
type BackendSink struct {
	config    BackendConfig
	client    *fasthttp.Client
	input     chan core.LogEntry
	limiter   *rate.Limiter
	done      chan struct{}
	wg        sync.WaitGroup
	startTime time.Time
	logger    *log.Logger

	batch []core.LogEntry

	// Statistics
	totalProcessed atomic.Uint64
	totalBatches   atomic.Uint64
	failedBatches  atomic.Uint64
	totalDropped   atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// NewBackendSink creates a backend sink.
func NewBackendSink(cfg BackendConfig, logger *log.Logger) (*BackendSink, error) {
	if !strings.HasPrefix(cfg.URL, "http://") && !strings.HasPrefix(cfg.URL, "https://") {
		return nil, fmt.Errorf("backend sink requires an http(s) URL, got %q", cfg.URL)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	b := &BackendSink{
		config: cfg,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			MaxIdleConnDuration: 10 * time.Second,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
		},
		input:     make(chan core.LogEntry, core.DefaultSinkBuffer),
		done:      make(chan struct{}),
		startTime: time.Now(),
		logger:    logger,
		batch:     make([]core.LogEntry, 0, cfg.BatchSize),
	}
	b.lastProcessed.Store(time.Time{})

	if cfg.MaxEventsPerSecond > 0 {
		b.limiter = rate.NewLimiter(rate.Limit(cfg.MaxEventsPerSecond), cfg.BatchSize)
	}

	return b, nil
}

func (b *BackendSink) Input() chan<- core.LogEntry {
	return b.input
}

func (b *BackendSink) Start(ctx context.Context) error {
	b.wg.Add(1)
	go b.processLoop(ctx)
	b.logger.Info("msg", "Backend sink started",
		"component", "backend_sink",
		"url", b.config.URL,
		"batch_size", b.config.BatchSize)
	return nil
}

func (b *BackendSink) Stop() {
	close(b.done)
	b.wg.Wait()
	b.logger.Info("msg", "Backend sink stopped",
		"component", "backend_sink",
		"total_batches", b.totalBatches.Load(),
		"failed_batches", b.failedBatches.Load())
}

func (b *BackendSink) GetStats() SinkStats {
	lastProc, _ := b.lastProcessed.Load().(time.Time)

	return SinkStats{
		Type:           "backend",
		TotalProcessed: b.totalProcessed.Load(),
		TotalDropped:   b.totalDropped.Load(),
		TotalFailed:    b.failedBatches.Load(),
		StartTime:      b.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"url":           b.config.URL,
			"total_batches": b.totalBatches.Load(),
		},
	}
}

func (b *BackendSink) processLoop(ctx context.Context) {
	defer b.wg.Done()

	flushTicker := time.NewTicker(b.config.FlushInterval)
	defer flushTicker.Stop()

	for {
		select {
		case entry, ok := <-b.input:
			if !ok {
				b.flush()
				return
			}
			b.totalProcessed.Add(1)
			b.lastProcessed.Store(time.Now())

			if b.limiter != nil && !b.limiter.Allow() {
				b.totalDropped.Add(1)
				continue
			}

			b.batch = append(b.batch, entry)
			if len(b.batch) >= b.config.BatchSize {
				b.flush()
			}

		case <-flushTicker.C:
			b.flush()

		case <-ctx.Done():
			b.flush()
			return
		case <-b.done:
			b.flush()
			return
		}
	}
}

// flush sends the accumulated batch and resets it. Errors are logged and
// the batch is discarded.
func (b *BackendSink) flush() {
	if len(b.batch) == 0 {
		return
	}
	batch := b.batch
	b.batch = make([]core.LogEntry, 0, b.config.BatchSize)

	if err := b.send(batch); err != nil {
		b.failedBatches.Add(1)
		b.logger.Warn("msg", "Backend delivery failed",
			"component", "backend_sink",
			"batch_size", len(batch),
			"error", err)
		return
	}
	b.totalBatches.Add(1)
}

func (b *BackendSink) send(batch []core.LogEntry) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(b.config.URL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if b.config.AuthSecret != "" {
		token, err := b.mintToken()
		if err != nil {
			return fmt.Errorf("failed to sign auth token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if err := b.client.DoTimeout(req, resp, b.config.Timeout); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return fmt.Errorf("backend returned status %d", code)
	}
	return nil
}

// mintToken signs a short-lived HS256 bearer token for the request.
func (b *BackendSink) mintToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": "asfmlog",
		"iat": now.Unix(),
		"exp": now.Add(time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(b.config.AuthSecret))
}
