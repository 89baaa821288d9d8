package backlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/backlogtree/pkg/errors"
)

// Format identifies an input encoding.
type Format string

// Supported input formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the input format from a file extension.
// Anything that is not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// document is the object form of a backlog file.
type document struct {
	Items []Item `json:"items" yaml:"items"`
}

// Read decodes items from r in the given format, normalizes enum casing and
// validates the result.
func Read(r io.Reader, format Format) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var items []Item
	switch format {
	case FormatJSON:
		items, err = decodeJSON(data)
	case FormatYAML:
		items, err = decodeYAML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", format)
	}

	for i := range items {
		items[i].normalize()
	}
	if err := Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

// ReadFile reads a backlog file, choosing the format from its extension.
func ReadFile(path string) ([]Item, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, FormatFromPath(path))
}

// Write encodes items as indented JSON.
func Write(w io.Writer, items []Item) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal returns the canonical JSON encoding of items. The pipeline hashes
// this encoding to detect unchanged input.
func Marshal(items []Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeJSON(data []byte) ([]Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var items []Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Items, nil
}

func decodeYAML(data []byte) ([]Item, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	body := root.Content[0]
	if body.Kind == yaml.SequenceNode {
		var items []Item
		if err := body.Decode(&items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var doc document
	if err := body.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Items, nil
}
