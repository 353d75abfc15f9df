package motion

import "github.com/matt-g-everett/motiontx/scene"

// Property names a node attribute a track can interpolate.
type Property string

const (
	PropX            Property = "x"
	PropY            Property = "y"
	PropWidth        Property = "width"
	PropHeight       Property = "height"
	PropRotation     Property = "rotation"
	PropScaleX       Property = "scaleX"
	PropScaleY       Property = "scaleY"
	PropOpacity      Property = "opacity"
	PropCornerRadius Property = "cornerRadius"
	PropLineLength   Property = "lineLength"
)

// animatedProperties is the full set considered for matched pairs.
var animatedProperties = []Property{
	PropX, PropY, PropWidth, PropHeight, PropRotation,
	PropScaleX, PropScaleY, PropOpacity, PropCornerRadius, PropLineLength,
}

// A Track interpolates one property of one node from one value to
// another. Times are milliseconds. Tracks are only ever emitted when
// From differs from To.
type Track struct {
	NodeID   string
	Property Property
	From     float64
	To       float64
	Duration float64
	Delay    float64
	Easing   string
}

// propertyValue reads a track property off a node, applying the
// defaulting accessors for derived properties.
func propertyValue(n *scene.Node, p Property) float64 {
	switch p {
	case PropX:
		return n.X
	case PropY:
		return n.Y
	case PropWidth:
		return n.Width
	case PropHeight:
		return n.Height
	case PropRotation:
		return n.Rotation
	case PropScaleX:
		return n.ScaleX
	case PropScaleY:
		return n.ScaleY
	case PropOpacity:
		return n.Opacity
	case PropCornerRadius:
		return n.CornerRadiusValue()
	case PropLineLength:
		return n.LineLengthValue()
	}
	return 0
}

// applyProperty writes an interpolated value onto a snapshot node.
func applyProperty(n *scene.Node, p Property, v float64) {
	switch p {
	case PropX:
		n.X = v
	case PropY:
		n.Y = v
	case PropWidth:
		n.Width = v
	case PropHeight:
		n.Height = v
	case PropRotation:
		n.Rotation = v
	case PropScaleX:
		n.ScaleX = v
	case PropScaleY:
		n.ScaleY = v
	case PropOpacity:
		n.Opacity = v
	case PropCornerRadius:
		n.CornerRadius = v
	case PropLineLength:
		n.LineLength = v
	}
}
