package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"asfmlog/src/internal/core"
	"asfmlog/src/internal/format"
)

// ErrWriteFailed wraps destination I/O failures so callers can tell them
// apart from format errors.
var ErrWriteFailed = errors.New("export write failed")

// ToFile serializes a snapshot to the destination path in the named
// format. The file is written to a temporary sibling and renamed into
// place, so a partially written destination is never left behind: on any
// failure the destination is untouched.
func ToFile(entries []core.LogEntry, path, formatName string) error {
	formatter, err := format.New(formatName)
	if err != nil {
		return err
	}

	data, err := formatter.Format(entries)
	if err != nil {
		return err
	}

	if path == "" {
		return fmt.Errorf("%w: empty destination path", ErrWriteFailed)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return nil
}
