package modelfile

import (
	"bytes"

	"github.com/BurntSushi/toml"

	"github.com/ha1tch/codecanvas/pkg/canvas"
)

// tomlModel is the TOML representation of a model: [[nodes]] and
// [[connections]] tables.
type tomlModel struct {
	Nodes       []canvas.Node       `toml:"nodes"`
	Connections []canvas.Connection `toml:"connections"`
}

// ParseTOML parses a model from TOML.
func ParseTOML(data []byte) (canvas.Model, error) {
	var t tomlModel
	if _, err := toml.Decode(string(data), &t); err != nil {
		return canvas.Model{}, err
	}
	return canvas.Model{Nodes: t.Nodes, Connections: t.Connections}, nil
}

// ToTOML converts a model to TOML.
func ToTOML(m canvas.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tomlModel{Nodes: m.Nodes, Connections: m.Connections}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
