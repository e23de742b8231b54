package format

import (
	"encoding/json"
	"fmt"

	"asfmlog/src/internal/core"
)

// JSONFormatter produces the structured representation: a JSON array with
// one object per entry, all fields preserved. Parsing the output back
// yields a snapshot equal to the original field for field.
type JSONFormatter struct{}

// Format marshals the entries as an indented JSON array.
func (f *JSONFormatter) Format(entries []core.LogEntry) ([]byte, error) {
	if entries == nil {
		entries = []core.LogEntry{}
	}

	result, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(result, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Parse is the inverse of Format, used by consumers reading an exported
// file back in.
func Parse(data []byte) ([]core.LogEntry, error) {
	var entries []core.LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse JSON export: %w", err)
	}
	return entries, nil
}
