package agent

import (
	"bytes"
	"encoding/json"
)

// Field is the normalized form of a response field that the agent
// returns either as a JSON-encoded string or as an already-decoded value.
// Exactly one of Parsed and Raw is meaningful: Parsed when decoding
// succeeded, Raw otherwise.
type Field[T any] struct {
	Parsed *T
	Raw    string
}

// IsParsed reports whether the field decoded into T.
func (f Field[T]) IsParsed() bool {
	return f.Parsed != nil
}

// NormalizeResponseField decodes a response field. A JSON string is
// unquoted and its contents decoded as T; anything else is decoded as T
// directly. When decoding fails the field falls back to the raw text:
// the unquoted string for string payloads, the literal JSON otherwise.
func NormalizeResponseField[T any](raw json.RawMessage) Field[T] {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Field[T]{}
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Field[T]{Raw: string(trimmed)}
		}
		inner := bytes.TrimSpace([]byte(s))
		if bytes.Equal(inner, []byte("null")) {
			return Field[T]{}
		}
		var v T
		if err := json.Unmarshal(inner, &v); err != nil {
			return Field[T]{Raw: s}
		}
		return Field[T]{Parsed: &v}
	}

	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return Field[T]{Raw: string(trimmed)}
	}
	return Field[T]{Parsed: &v}
}
