package core

import "time"

const (
	// DefaultCapacity is the number of entries a buffer retains before
	// FIFO eviction kicks in
	DefaultCapacity = 1000

	// DefaultQueryLimit caps query results when the caller passes no limit
	DefaultQueryLimit = 100

	// DefaultPollInterval is the monitoring poller wake-up period
	DefaultPollInterval = time.Second

	// DefaultComponent is the sentinel component for entries logged
	// without one
	DefaultComponent = "app"

	// TimestampLayout renders capture timestamps at microsecond resolution
	TimestampLayout = "2006-01-02 15:04:05.000000"
)

// DefaultSinkBuffer is the input channel depth for sinks; entries beyond
// it are dropped rather than blocking the record path
const DefaultSinkBuffer = 1000
