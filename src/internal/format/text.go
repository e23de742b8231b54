package format

import (
	"bytes"
	"fmt"

	"asfmlog/src/internal/core"
)

// TextFormatter produces the plain-text representation: one line per
// entry, `timestamp [LEVEL] [component] message`.
type TextFormatter struct{}

// Format writes all entries as plain-text lines.
func (f *TextFormatter) Format(entries []core.LogEntry) ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "%s [%s] [%s] %s\n",
			e.Time.Format(core.TimestampLayout),
			e.Level.String(),
			e.Component,
			e.Message)
	}
	return buf.Bytes(), nil
}

// Name returns the formatter's type name.
func (f *TextFormatter) Name() string {
	return "txt"
}
