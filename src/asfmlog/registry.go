package asfmlog

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// instanceKey identifies one owned logger
type instanceKey struct {
	application string
	process     string
}

// Registry maps an identity (application name, process name) to an owned
// logger instance. Each instance owns an independent buffer; there is no
// package-level default and no sharing of buffer state across instances.
type Registry struct {
	mu      sync.RWMutex
	loggers map[instanceKey]*Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		loggers: make(map[instanceKey]*Logger),
	}
}

// Get returns the logger for the identity, creating it on first lookup.
// An empty process name defaults to one derived from the current pid.
// Options apply only on creation.
func (r *Registry) Get(application, process string, opts ...Option) *Logger {
	if process == "" {
		process = fmt.Sprintf("pid-%d", os.Getpid())
	}
	key := instanceKey{application: application, process: process}

	r.mu.RLock()
	l, ok := r.loggers[key]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[key]; ok {
		return l
	}
	l = New(application, process, opts...)
	r.loggers[key] = l
	return l
}

// List returns the registered identities as "application/process" pairs,
// sorted for stable output.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.loggers))
	for key := range r.loggers {
		out = append(out, key.application+"/"+key.process)
	}
	sort.Strings(out)
	return out
}

// Remove shuts down and forgets the logger for the identity, if any.
func (r *Registry) Remove(application, process string) {
	key := instanceKey{application: application, process: process}

	r.mu.Lock()
	l, ok := r.loggers[key]
	delete(r.loggers, key)
	r.mu.Unlock()

	if ok {
		l.Shutdown()
	}
}

// Shutdown stops every registered logger and empties the registry.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	loggers := r.loggers
	r.loggers = make(map[instanceKey]*Logger)
	r.mu.Unlock()

	for _, l := range loggers {
		l.Shutdown()
	}
}
