package canvas

import (
	"errors"
	"fmt"
	"image/color"
)

// Node box geometry in world units.
const (
	NodeWidth        = 120.0
	NodeHeight       = 80.0
	NodeCornerRadius = 8.0
	NodeBorderWidth  = 2.0
	LabelFontSize    = 12.0
	ConnectionWidth  = 2.0
)

// LabelOffset is where a node's label starts relative to its top-left corner.
var LabelOffset = Point{X: 10, Y: 30}

// Known node categories.
const (
	CategoryComponent = "component"
	CategoryHook      = "hook"
	CategoryFunction  = "function"
	CategoryInterface = "interface"
)

// Palette.
var (
	ColorComponent  = color.RGBA{76, 175, 80, 255}   // #4CAF50
	ColorHook       = color.RGBA{33, 150, 243, 255}  // #2196F3
	ColorFunction   = color.RGBA{255, 152, 0, 255}   // #FF9800
	ColorDefault    = color.RGBA{156, 39, 176, 255}  // #9C27B0
	ColorBorder     = color.RGBA{255, 255, 255, 255} // #fff
	ColorLabel      = color.RGBA{255, 255, 255, 255} // #fff
	ColorConnection = color.RGBA{102, 102, 102, 255} // #666
	ColorGridPoint  = color.RGBA{224, 224, 224, 255} // #e0e0e0
	ColorLight      = color.RGBA{255, 255, 255, 255} // #fff
	ColorDark       = color.RGBA{30, 30, 30, 255}    // #1e1e1e
)

// ErrDuplicateID is returned by Model.Validate when two nodes or two
// connections share an id.
var ErrDuplicateID = errors.New("duplicate id")

// CategoryColor returns the fill colour for a node type. Every string maps
// to a colour; unknown types get ColorDefault.
func CategoryColor(t string) color.RGBA {
	switch t {
	case CategoryComponent:
		return ColorComponent
	case CategoryHook:
		return ColorHook
	case CategoryFunction:
		return ColorFunction
	default:
		return ColorDefault
	}
}

// Node is a code entity placed on the canvas. X and Y are the world
// coordinates of the box's top-left corner.
type Node struct {
	ID   string  `json:"id" toml:"id"`
	Name string  `json:"name" toml:"name"`
	Type string  `json:"type" toml:"type"`
	X    float64 `json:"x" toml:"x"`
	Y    float64 `json:"y" toml:"y"`
}

// Bounds returns the node's box in world coordinates.
func (n Node) Bounds() Rect {
	return Rect{X: n.X, Y: n.Y, Width: NodeWidth, Height: NodeHeight}
}

// Anchor returns the point connections attach to: the box centre.
func (n Node) Anchor() Point {
	return Point{X: n.X + NodeWidth/2, Y: n.Y + NodeHeight/2}
}

// Connection is a directed edge between two nodes. Type is metadata only.
type Connection struct {
	ID     string `json:"id" toml:"id"`
	Source string `json:"source" toml:"source"`
	Target string `json:"target" toml:"target"`
	Type   string `json:"type,omitempty" toml:"type,omitempty"`
}

// Model is the caller-owned data a scene is built from. The canvas never
// mutates it.
type Model struct {
	Nodes       []Node
	Connections []Connection
}

// Index returns the nodes keyed by id. When ids repeat the last one wins.
func (m Model) Index() map[string]Node {
	idx := make(map[string]Node, len(m.Nodes))
	for _, n := range m.Nodes {
		idx[n.ID] = n
	}
	return idx
}

// Lookup returns the node with the given id.
func (m Model) Lookup(id string) (Node, bool) {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Dangling returns the connections whose source or target is missing.
func (m Model) Dangling() []Connection {
	idx := m.Index()
	var out []Connection
	for _, c := range m.Connections {
		_, okS := idx[c.Source]
		_, okT := idx[c.Target]
		if !okS || !okT {
			out = append(out, c)
		}
	}
	return out
}

// Bounds returns the union of all node boxes. It is empty when there are
// no nodes.
func (m Model) Bounds() Rect {
	var r Rect
	for _, n := range m.Nodes {
		r = r.Union(n.Bounds())
	}
	return r
}

// Validate checks id uniqueness. Dangling connections are not an error.
func (m Model) Validate() error {
	seen := make(map[string]bool, len(m.Nodes))
	for i, n := range m.Nodes {
		if seen[n.ID] {
			return fmt.Errorf("node %d: %w %q", i, ErrDuplicateID, n.ID)
		}
		seen[n.ID] = true
	}
	seen = make(map[string]bool, len(m.Connections))
	for i, c := range m.Connections {
		if seen[c.ID] {
			return fmt.Errorf("connection %d: %w %q", i, ErrDuplicateID, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
