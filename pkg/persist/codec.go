package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec defines how the note collection is turned into structured text.
type Codec interface {
	// Name is the format name used in configuration ("json", "yaml").
	Name() string
	// Ext is the file extension associated with the format.
	Ext() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// DefaultCodecs returns the standard set of codecs keyed by name.
func DefaultCodecs() map[string]Codec {
	return map[string]Codec{
		"json": JSONCodec{},
		"yaml": YAMLCodec{},
		"yml":  YAMLCodec{},
	}
}

// CodecFor resolves a codec by name. Empty means JSON.
func CodecFor(name string) (Codec, error) {
	if name == "" {
		return JSONCodec{}, nil
	}
	c, ok := DefaultCodecs()[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	return c, nil
}

// --- JSON Codec ---

// JSONCodec writes indented JSON, the format browsers keep in local storage.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }
func (JSONCodec) Ext() string  { return ".json" }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errors.New("invalid json: trailing data after value")
	}
	return nil
}

// --- YAML Codec ---

// YAMLCodec writes YAML, friendlier when the store file is edited by hand.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }
func (YAMLCodec) Ext() string  { return ".yaml" }

func (YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAMLCodec) Unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	return nil
}
