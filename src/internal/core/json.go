package core

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the level as its canonical name
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level name, case-insensitively
func (l *Level) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	level, ok := ParseLevel(name)
	if !ok {
		return fmt.Errorf("unknown log level: %q", name)
	}
	*l = level
	return nil
}
