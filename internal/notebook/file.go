package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ReadFile loads a notebook file as a JSON object tree.
func ReadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read notebook: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse notebook %s: %w", path, err)
	}
	return doc, nil
}

// Marshal serializes a notebook document with the one-space indent
// nbformat uses. Object keys come out sorted; notebook JSON is
// order-insensitive so the round trip is semantically lossless.
func Marshal(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", " ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode notebook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile serializes a notebook document back to disk.
func WriteFile(path string, doc map[string]any) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write notebook: %w", err)
	}
	return nil
}
