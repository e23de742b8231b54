package format

import (
	"errors"
	"fmt"
	"strings"

	"asfmlog/src/internal/core"
)

// ErrUnsupportedFormat is returned when no formatter matches the
// requested name.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formatter serializes a snapshot of log entries into an external
// representation.
type Formatter interface {
	// Format transforms the entries into the serialized form
	Format(entries []core.LogEntry) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a Formatter by name. Names are matched case-insensitively;
// each format also accepts its descriptive alias.
func New(name string) (Formatter, error) {
	switch normalize(name) {
	case "json", "structured":
		return &JSONFormatter{}, nil
	case "csv", "tabular":
		return &CSVFormatter{}, nil
	case "txt", "text", "plaintext":
		return &TextFormatter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
