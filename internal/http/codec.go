package http

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gnt-io/rapi/pkg/rapi"
)

// EncodeJSON serializes a request body to canonical JSON: object keys sorted
// lexicographically, UTF-8, no trailing newline. encoding/json already emits
// map keys in sorted order, so the same logical object always encodes to
// byte-identical output.
func EncodeJSON(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return data, nil
}

// DecodeJSON parses a response body into out. An empty body is an explicit
// no-content result, reported as rapi.ErrNoContent rather than fabricating a
// value. Malformed content and trailing garbage fail with *rapi.DecodeError.
func DecodeJSON(data []byte, out interface{}) error {
	if len(data) == 0 {
		return rapi.ErrNoContent
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	if err := dec.Decode(out); err != nil {
		return &rapi.DecodeError{Err: err}
	}

	// Anything after the first value is garbage, not whitespace padding.
	if dec.More() {
		return &rapi.DecodeError{Err: fmt.Errorf("trailing data after JSON value at offset %d", dec.InputOffset())}
	}

	return nil
}

// validJSON reports whether data parses as exactly one JSON value. Used by
// the concurrent transport to surface decode failures at stream completion.
func validJSON(data []byte) error {
	var value interface{}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&value); err != nil {
		return &rapi.DecodeError{Err: err}
	}

	if dec.More() {
		return &rapi.DecodeError{Err: fmt.Errorf("trailing data after JSON value at offset %d", dec.InputOffset())}
	}

	return nil
}
