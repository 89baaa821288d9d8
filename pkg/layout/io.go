package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Serialization API
// =============================================================================

// Marshal encodes a Result as indented JSON.
func Marshal(r Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a Result produced by Marshal.
func Unmarshal(data []byte) (Result, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes a Result as indented JSON to w.
func Write(w io.Writer, r Result) error {
	if r.Nodes == nil {
		r.Nodes = []Node{}
	}
	if r.Edges == nil {
		r.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON Result from r.
func Read(r io.Reader) (Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode: %w", err)
	}
	for i, n := range res.Nodes {
		if n.Parent >= i {
			return Result{}, fmt.Errorf("node %s: parent index %d is not before node %d", n.ID, n.Parent, i)
		}
	}
	return res, nil
}

// WriteFile writes a Result to a JSON file.
func WriteFile(r Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, r)
}

// ReadFile reads a Result from a JSON file.
func ReadFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
