package codec

import (
	"bytes"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles reading and writing YAML snapshots.
type YAMLCodec struct {
	// Strict rejects unknown keys and missing fields.
	Strict bool
}

// NewYAML creates a new YAML codec.
func NewYAML(strict bool) *YAMLCodec {
	return &YAMLCodec{Strict: strict}
}

func (c *YAMLCodec) Name() string { return "yaml" }

func (c *YAMLCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *YAMLCodec) Decode(data []byte, v any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(c.Strict)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	if !c.Strict {
		return nil
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	return checkShape(raw, reflect.TypeOf(v), "yaml", "$")
}
