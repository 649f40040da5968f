package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// HighlightEntry is one field/snippet pair from the search service.
type HighlightEntry struct {
	Field   string
	Snippet string
}

// Highlights is the highlight payload of a hit. The service encodes "no
// highlight" as an empty JSON array and otherwise sends an object mapping
// field names to excerpts. Entries keeps the object's wire order, since
// "first highlight" is defined by the order the service produced them.
type Highlights struct {
	Entries []HighlightEntry
}

// Empty reports whether the service produced no highlight.
func (h Highlights) Empty() bool {
	return len(h.Entries) == 0
}

// UnmarshalJSON accepts the two wire shapes: an array (always empty,
// meaning no highlight) or an object of field→excerpt entries.
func (h *Highlights) UnmarshalJSON(data []byte) error {
	h.Entries = nil

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		// Empty-array form. Tolerate non-empty arrays by ignoring them,
		// matching the original behaviour of treating any list as "none".
		return nil
	}
	if trimmed[0] != '{' {
		return fmt.Errorf("highlights: unexpected payload %q", trimmed)
	}

	// Walk the object with a token decoder so entry order survives; a map
	// round-trip would scramble it.
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		field, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("highlights: non-string key %v", keyTok)
		}

		var snippet string
		if err := dec.Decode(&snippet); err != nil {
			return fmt.Errorf("highlights: field %s: %w", field, err)
		}
		h.Entries = append(h.Entries, HighlightEntry{Field: field, Snippet: snippet})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}
	return nil
}

// MarshalJSON writes the object form, or an empty array when no highlight
// exists, mirroring the service's encoding.
func (h Highlights) MarshalJSON() ([]byte, error) {
	if h.Empty() {
		return []byte("[]"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range h.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Field)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Snippet)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
