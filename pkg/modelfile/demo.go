package modelfile

import "github.com/ha1tch/codecanvas/pkg/canvas"

// Demo returns a small model of a canvas component and its collaborators.
func Demo() canvas.Model {
	return canvas.Model{
		Nodes: []canvas.Node{
			{ID: "1", Name: "App.tsx", Type: canvas.CategoryComponent, X: 100, Y: 100},
			{ID: "2", Name: "useCanvas", Type: canvas.CategoryHook, X: 300, Y: 100},
			{ID: "3", Name: "Canvas", Type: canvas.CategoryComponent, X: 500, Y: 100},
			{ID: "4", Name: "CodeNode", Type: canvas.CategoryInterface, X: 200, Y: 250},
			{ID: "5", Name: "Connection", Type: canvas.CategoryInterface, X: 400, Y: 250},
			{ID: "6", Name: "parseCode", Type: canvas.CategoryFunction, X: 300, Y: 400},
		},
		Connections: []canvas.Connection{
			{ID: "1", Source: "1", Target: "2", Type: "uses"},
			{ID: "2", Source: "1", Target: "3", Type: "renders"},
			{ID: "3", Source: "3", Target: "4", Type: "displays"},
			{ID: "4", Source: "3", Target: "5", Type: "displays"},
			{ID: "5", Source: "2", Target: "6", Type: "calls"},
		},
	}
}
