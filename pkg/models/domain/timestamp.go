package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Timestamp is a week boundary kept exactly as the backend sent it. The value
// is not interpreted, so any layout survives a merge and is returned unchanged.
type Timestamp struct {
	raw json.RawMessage
}

// NewTimestamp wraps a string value.
func NewTimestamp(value string) Timestamp {
	return Timestamp{raw: json.RawMessage(strconv.Quote(value))}
}

// Raw returns a copy of the JSON value as received.
func (t Timestamp) Raw() json.RawMessage {
	return cloneRaw(t.raw)
}

// String returns the text of a JSON string value, or the raw JSON otherwise.
func (t Timestamp) String() string {
	var s string
	if err := json.Unmarshal(t.raw, &s); err == nil {
		return s
	}
	return string(t.raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if len(t.raw) == 0 {
		return []byte("null"), nil
	}
	return t.raw, nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

func cloneTimestamp(t *Timestamp) *Timestamp {
	if t == nil {
		return nil
	}
	return &Timestamp{raw: cloneRaw(t.raw)}
}
