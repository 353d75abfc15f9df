// Package scene defines the static scene graph that motion is synthesized
// from: frames of visual nodes plus the transitions that link them.
package scene

import "math"

// NodeType discriminates the visual primitive a Node represents.
type NodeType string

const (
	NodeRectangle  NodeType = "rectangle"
	NodeEllipse    NodeType = "ellipse"
	NodePolyline   NodeType = "polyline"
	NodeVectorPath NodeType = "vector-path"
	NodeText       NodeType = "text"
	NodeBitmap     NodeType = "bitmap"
	NodeGroup      NodeType = "group"
	NodeSymbol     NodeType = "symbol-instance"
	NodeMesh       NodeType = "mesh"
)

// Point is a position in scene units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// CornerRadii holds per-corner radii for rectangles that round each
// corner independently.
type CornerRadii struct {
	TopLeft     float64 `yaml:"topLeft"`
	TopRight    float64 `yaml:"topRight"`
	BottomRight float64 `yaml:"bottomRight"`
	BottomLeft  float64 `yaml:"bottomLeft"`
}

// Shadow describes a drop shadow attached to a node.
type Shadow struct {
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
	Blur    float64 `yaml:"blur"`
	Color   string  `yaml:"color"`
}

// A Node is a single visual primitive in a frame's node list. All node
// kinds share the same base record; kind-specific payloads (points, path
// data, text, asset reference) are only meaningful for their own type.
type Node struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Type   NodeType `yaml:"type"`
	Parent string   `yaml:"parent,omitempty"`

	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Rotation float64 `yaml:"rotation"`
	ScaleX   float64 `yaml:"scaleX"`
	ScaleY   float64 `yaml:"scaleY"`
	PivotX   float64 `yaml:"pivotX"`
	PivotY   float64 `yaml:"pivotY"`

	Fill           string       `yaml:"fill,omitempty"`
	FillOpacity    float64      `yaml:"fillOpacity"`
	Stroke         string       `yaml:"stroke,omitempty"`
	StrokeOpacity  float64      `yaml:"strokeOpacity"`
	StrokeWidth    float64      `yaml:"strokeWidth"`
	StrokePosition string       `yaml:"strokePosition,omitempty"`
	CornerRadius   float64      `yaml:"cornerRadius"`
	CornerRadii    *CornerRadii `yaml:"cornerRadii,omitempty"`
	Shadow         *Shadow      `yaml:"shadow,omitempty"`
	Blur           float64      `yaml:"blur"`

	Visible bool    `yaml:"visible"`
	Opacity float64 `yaml:"opacity"`
	Z       int     `yaml:"z"`
	Bone    string  `yaml:"bone,omitempty"`

	Points   []Point `yaml:"points,omitempty"`
	Path     string  `yaml:"path,omitempty"`
	Text     string  `yaml:"text,omitempty"`
	TextSize float64 `yaml:"textSize,omitempty"`
	Asset    string  `yaml:"asset,omitempty"`

	// LineLength overrides the polyline's natural end-to-end length when
	// non-zero. Evaluation writes interpolated lengths here.
	LineLength float64 `yaml:"-"`
}

// UnmarshalYAML decodes a node with authoring defaults applied, so that
// omitted scale, visibility and opacity fields behave as identity values.
func (n *Node) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type rawNode Node
	raw := rawNode{ScaleX: 1, ScaleY: 1, FillOpacity: 1, StrokeOpacity: 1, Visible: true, Opacity: 1}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*n = Node(raw)
	return nil
}

// Center returns the node's geometric center in scene units.
func (n *Node) Center() (float64, float64) {
	return n.X + n.Width/2, n.Y + n.Height/2
}

// EndpointLength returns the straight-line distance between a polyline's
// first and last points, and 0 for every other node kind.
func (n *Node) EndpointLength() float64 {
	if n.Type != NodePolyline || len(n.Points) < 2 {
		return 0
	}
	first := n.Points[0]
	last := n.Points[len(n.Points)-1]
	return math.Hypot(last.X-first.X, last.Y-first.Y)
}

// LineLengthValue returns the effective line length: an assigned value
// when present, otherwise the natural endpoint distance.
func (n *Node) LineLengthValue() float64 {
	if n.LineLength != 0 {
		return n.LineLength
	}
	return n.EndpointLength()
}

// CornerRadiusValue returns the uniform corner radius, defaulting to 0
// when the node has none.
func (n *Node) CornerRadiusValue() float64 {
	return n.CornerRadius
}

// Radii returns the four corner radii in top-left, top-right,
// bottom-right, bottom-left order, expanding a uniform radius when no
// per-corner values are set.
func (n *Node) Radii() [4]float64 {
	if n.CornerRadii != nil {
		return [4]float64{n.CornerRadii.TopLeft, n.CornerRadii.TopRight, n.CornerRadii.BottomRight, n.CornerRadii.BottomLeft}
	}
	r := n.CornerRadiusValue()
	return [4]float64{r, r, r, r}
}

// Clone returns a deep copy of the node. Evaluation snapshots are always
// clones; they never alias the scene's own node storage.
func (n *Node) Clone() *Node {
	c := *n
	if n.Points != nil {
		c.Points = make([]Point, len(n.Points))
		copy(c.Points, n.Points)
	}
	if n.CornerRadii != nil {
		radii := *n.CornerRadii
		c.CornerRadii = &radii
	}
	if n.Shadow != nil {
		shadow := *n.Shadow
		c.Shadow = &shadow
	}
	return &c
}
