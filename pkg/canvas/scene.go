package canvas

import (
	"image/color"
	"iter"
)

// LineShape is a connection drawn between two node anchors, in world units.
type LineShape struct {
	Connection Connection
	From, To   Point
	Stroke     color.RGBA
	Width      float64
}

// TextShape is a label in world units. At is the top-left of the text.
type TextShape struct {
	Text  string
	At    Point
	Size  float64
	Color color.RGBA
}

// NodeGroup is a node's rounded box and label. The group as a whole is the
// hit-test target.
type NodeGroup struct {
	Node        Node
	Box         Rect
	Radius      float64
	Fill        color.RGBA
	Border      color.RGBA
	BorderWidth float64
	Label       TextShape

	handlers []clickHandler
	nextID   int
}

type clickHandler struct {
	id int
	fn func(Node)
}

// Contains reports whether world point p is inside the group's box.
func (g *NodeGroup) Contains(p Point) bool {
	return g.Box.Contains(p)
}

// OnClick subscribes fn to clicks on this group. The returned function
// removes the subscription.
func (g *NodeGroup) OnClick(fn func(Node)) (remove func()) {
	g.nextID++
	id := g.nextID
	g.handlers = append(g.handlers, clickHandler{id: id, fn: fn})
	return func() {
		for i, h := range g.handlers {
			if h.id == id {
				g.handlers = append(g.handlers[:i], g.handlers[i+1:]...)
				return
			}
		}
	}
}

func (g *NodeGroup) fireClick() {
	for _, h := range g.handlers {
		h.fn(g.Node)
	}
}

// Scene is the retained set of drawables. Layers paint bottom to top:
// background points, connection lines, node groups.
type Scene struct {
	grid   iter.Seq[GridPoint]
	lines  []LineShape
	groups []*NodeGroup
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// SetGrid replaces the background points.
func (s *Scene) SetGrid(points iter.Seq[GridPoint]) {
	s.grid = points
}

// GridPoints returns the background points. The sequence is empty until
// SetGrid is called.
func (s *Scene) GridPoints() iter.Seq[GridPoint] {
	if s.grid == nil {
		return func(func(GridPoint) bool) {}
	}
	return s.grid
}

// Lines returns the connection lines in paint order.
func (s *Scene) Lines() []LineShape { return s.lines }

// Groups returns the node groups in paint order.
func (s *Scene) Groups() []*NodeGroup { return s.groups }

// Clear drops every node and connection shape and their subscriptions.
func (s *Scene) Clear() {
	s.lines = nil
	s.groups = nil
}

// Rebuild discards all node and connection shapes and builds new ones from
// m. Connections with a missing endpoint are skipped. When onNodeClick is
// non-nil every group subscribes it to clicks.
func (s *Scene) Rebuild(m Model, onNodeClick func(Node)) {
	s.Clear()

	idx := m.Index()
	for _, c := range m.Connections {
		src, ok := idx[c.Source]
		if !ok {
			continue
		}
		dst, ok := idx[c.Target]
		if !ok {
			continue
		}
		s.lines = append(s.lines, LineShape{
			Connection: c,
			From:       src.Anchor(),
			To:         dst.Anchor(),
			Stroke:     ColorConnection,
			Width:      ConnectionWidth,
		})
	}

	for _, n := range m.Nodes {
		g := &NodeGroup{
			Node:        n,
			Box:         n.Bounds(),
			Radius:      NodeCornerRadius,
			Fill:        CategoryColor(n.Type),
			Border:      ColorBorder,
			BorderWidth: NodeBorderWidth,
			Label: TextShape{
				Text:  n.Name,
				At:    Point{X: n.X + LabelOffset.X, Y: n.Y + LabelOffset.Y},
				Size:  LabelFontSize,
				Color: ColorLabel,
			},
		}
		if onNodeClick != nil {
			g.OnClick(onNodeClick)
		}
		s.groups = append(s.groups, g)
	}
}

// HitTest returns the topmost group containing world point p, or nil.
func (s *Scene) HitTest(p Point) *NodeGroup {
	// Reverse paint order: the last group drawn is on top.
	for i := len(s.groups) - 1; i >= 0; i-- {
		if s.groups[i].Contains(p) {
			return s.groups[i]
		}
	}
	return nil
}

// Click fires the click subscriptions of the group under world point p and
// reports whether a group was hit.
func (s *Scene) Click(p Point) bool {
	g := s.HitTest(p)
	if g == nil {
		return false
	}
	g.fireClick()
	return true
}
