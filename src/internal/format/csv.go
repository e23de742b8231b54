package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"asfmlog/src/internal/core"
)

// csvHeader is the fixed column order of the tabular representation
var csvHeader = []string{"timestamp", "level", "component", "function", "message", "formatted"}

// CSVFormatter produces the tabular representation: a header row followed
// by one row per entry, with field escaping handled by encoding/csv.
type CSVFormatter struct{}

// Format writes all entries as CSV rows.
func (f *CSVFormatter) Format(entries []core.LogEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.Time.Format(core.TimestampLayout),
			e.Level.String(),
			e.Component,
			e.Function,
			e.Message,
			e.Formatted,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// Name returns the formatter's type name.
func (f *CSVFormatter) Name() string {
	return "csv"
}
