package asfmlog

import "github.com/lixenwraith/log"

// Option customizes logger construction.
type Option func(*Logger)

// WithCapacity overrides the buffer capacity (default 1000).
func WithCapacity(capacity int) Option {
	return func(l *Logger) {
		l.capacity = capacity
	}
}

// WithDiagnosticLogger supplies the internal diagnostics logger used for
// the logger's own operational messages.
func WithDiagnosticLogger(diag *log.Logger) Option {
	return func(l *Logger) {
		l.diag = diag
	}
}

// EntryOption customizes a single log call.
type EntryOption func(*entryOptions)

type entryOptions struct {
	component string
	function  string
}

// WithComponent labels the entry with the emitting subsystem.
func WithComponent(component string) EntryOption {
	return func(o *entryOptions) {
		o.component = component
	}
}

// WithFunction labels the entry with the emitting call site.
func WithFunction(function string) EntryOption {
	return func(o *entryOptions) {
		o.function = function
	}
}
