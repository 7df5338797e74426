package resume

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// Format is the on-disk encoding of a resume document.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the format from the file extension; anything that
// is not .toml is read as JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// LoadError reports a document that could not be read or decoded.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("resume %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Normalize converts raw document bytes into JSON. TOML documents are
// decoded into a tree and re-encoded so both formats share one decoder.
func Normalize(data []byte, format Format) ([]byte, error) {
	if format != FormatTOML {
		return data, nil
	}
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	out, err := json.Marshal(tree.ToMap())
	if err != nil {
		return nil, fmt.Errorf("failed to convert TOML to JSON: %w", err)
	}
	return out, nil
}

// Parse decodes a document and runs struct validation on it.
func Parse(data []byte, format Format) (*Document, error) {
	normalized, err := Normalize(data, format)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads a document from path. An empty path yields the built-in
// sample document.
func Load(path string) (*Document, error) {
	if path == "" {
		return Sample(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	doc, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid document", Cause: err}
	}
	return doc, nil
}
