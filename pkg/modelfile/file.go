package modelfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/codecanvas/pkg/canvas"
)

// ErrUnknownFormat is returned for file extensions other than .json and
// .toml.
var ErrUnknownFormat = errors.New("unknown model format")

// Format is a model file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Parse decodes data in the given format and validates id uniqueness.
func Parse(data []byte, f Format) (canvas.Model, error) {
	var (
		m   canvas.Model
		err error
	)
	switch f {
	case FormatJSON:
		m, err = ParseJSON(data)
	case FormatTOML:
		m, err = ParseTOML(data)
	default:
		return canvas.Model{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return canvas.Model{}, fmt.Errorf("parse %s: %w", f, err)
	}
	if err := m.Validate(); err != nil {
		return canvas.Model{}, err
	}
	return m, nil
}

// Load reads a model file.
func Load(path string) (canvas.Model, error) {
	f, err := FormatOf(path)
	if err != nil {
		return canvas.Model{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return canvas.Model{}, err
	}
	m, err := Parse(data, f)
	if err != nil {
		return canvas.Model{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Save writes a model file in the format its extension names.
func Save(path string, m canvas.Model) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case FormatJSON:
		data, err = ToJSON(m, true)
		data = append(data, '\n')
	case FormatTOML:
		data, err = ToTOML(m)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
