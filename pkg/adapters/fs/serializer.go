package fs

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Serializer defines how model attributes are read and written for a
// specific file format. Decode is also handed to models as their response
// decoder, so the store's parse path always matches the on-disk format.
type Serializer interface {
	// Encode converts an attribute mapping to bytes.
	Encode(attrs map[string]any) ([]byte, error)
	// Decode parses bytes into an attribute mapping.
	Decode(raw []byte) (map[string]any, error)
}

// DefaultSerializers returns the standard set of serializers, keyed by
// file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": JSONSerializer{},
		".yaml": YAMLSerializer{},
		".yml":  YAMLSerializer{},
	}
}

// JSONSerializer handles reading and writing JSON model files.
type JSONSerializer struct{}

func (JSONSerializer) Encode(attrs map[string]any) ([]byte, error) {
	return json.MarshalIndent(attrs, "", "  ")
}

func (JSONSerializer) Decode(raw []byte) (map[string]any, error) {
	var attrs map[string]any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	if err := decoder.Decode(&attrs); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return attrs, nil
}

// YAMLSerializer handles reading and writing YAML model files.
type YAMLSerializer struct{}

func (YAMLSerializer) Encode(attrs map[string]any) ([]byte, error) {
	return yaml.Marshal(attrs)
}

func (YAMLSerializer) Decode(raw []byte) (map[string]any, error) {
	var attrs map[string]any
	if err := yaml.Unmarshal(raw, &attrs); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return attrs, nil
}
