package buffer

import (
	"sync"

	"asfmlog/src/internal/core"
)

// Buffer is a fixed-capacity, insertion-ordered store of log entries.
// Recording past capacity evicts the oldest entry. All methods are safe
// for concurrent use; the lock covers only the structural mutation or
// copy, never formatting or I/O.
type Buffer struct {
	mu       sync.RWMutex
	entries  []core.LogEntry
	capacity int
}

// New creates a buffer. Non-positive capacities fall back to the default.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = core.DefaultCapacity
	}
	return &Buffer{
		entries:  make([]core.LogEntry, 0, capacity),
		capacity: capacity,
	}
}

// Record appends an entry, evicting the oldest when full. It never fails.
func (b *Buffer) Record(entry core.LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) >= b.capacity {
		// Shift in place so the backing array is reused instead of
		// leaking a growing prefix of evicted entries
		copy(b.entries, b.entries[1:])
		b.entries[len(b.entries)-1] = entry
		return
	}
	b.entries = append(b.entries, entry)
}

// Snapshot returns an independent ordered copy of the current contents.
func (b *Buffer) Snapshot() []core.LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.LogEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Clear atomically empties the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = b.entries[:0]
}

// Len returns the current number of held entries.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Capacity returns the fixed capacity.
func (b *Buffer) Capacity() int {
	return b.capacity
}
