package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// JSONCodec handles reading and writing JSON snapshots.
type JSONCodec struct {
	// Strict rejects unknown keys, missing fields and trailing data.
	Strict bool
}

// NewJSON creates a new JSON codec.
func NewJSON(strict bool) *JSONCodec {
	return &JSONCodec{Strict: strict}
}

func (c *JSONCodec) Name() string { return "json" }

// Encode renders v with a two space indent and a trailing newline.
func (c *JSONCodec) Encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (c *JSONCodec) Decode(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if c.Strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if !c.Strict {
		return nil
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid json: trailing data after document")
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return checkShape(raw, reflect.TypeOf(v), "json", "$")
}
