package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// marshalValue converts a diagnostic value to JSON TEXT for storage.
// HTML escaping is disabled so typed guesses like "<3" are stored as typed.
func marshalValue(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("marshal value: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
