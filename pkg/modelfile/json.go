// Package modelfile reads and writes canvas models: JSON and TOML model
// files, Graphviz DOT export, and the built-in demo model.
package modelfile

import (
	"encoding/json"

	"github.com/ha1tch/codecanvas/pkg/canvas"
)

// jsonModel is the JSON representation of a model.
type jsonModel struct {
	Nodes       []canvas.Node       `json:"nodes"`
	Connections []canvas.Connection `json:"connections"`
}

// ParseJSON parses a model from JSON.
func ParseJSON(data []byte) (canvas.Model, error) {
	var j jsonModel
	if err := json.Unmarshal(data, &j); err != nil {
		return canvas.Model{}, err
	}
	return canvas.Model{Nodes: j.Nodes, Connections: j.Connections}, nil
}

// ToJSON converts a model to JSON.
func ToJSON(m canvas.Model, pretty bool) ([]byte, error) {
	j := jsonModel{Nodes: m.Nodes, Connections: m.Connections}
	if j.Nodes == nil {
		j.Nodes = []canvas.Node{}
	}
	if j.Connections == nil {
		j.Connections = []canvas.Connection{}
	}
	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}
