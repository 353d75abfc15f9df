package scene

// A Frame is a named static snapshot of the scene: canvas dimensions, a
// background color and an ordered node list. Variants carry alternate
// node lists for responsive states; motion synthesis always targets the
// base list.
type Frame struct {
	ID         string             `yaml:"id"`
	Name       string             `yaml:"name"`
	Width      float64            `yaml:"width"`
	Height     float64            `yaml:"height"`
	Background string             `yaml:"background,omitempty"`
	Nodes      []*Node            `yaml:"nodes"`
	Variants   map[string][]*Node `yaml:"variants,omitempty"`
}

// Center returns the frame's geometric center.
func (f *Frame) Center() (float64, float64) {
	return f.Width / 2, f.Height / 2
}

// AnimationMode selects how a transition's tracks are synthesized.
type AnimationMode string

const (
	AnimationAuto     AnimationMode = "auto"
	AnimationLinear   AnimationMode = "linear"
	AnimationInstant  AnimationMode = "instant"
	AnimationDissolve AnimationMode = "dissolve"
)

// StaggerMode selects how per-node delay offsets are distributed across
// a transition.
type StaggerMode string

const (
	StaggerNone     StaggerMode = "none"
	StaggerOrder    StaggerMode = "order"
	StaggerDistance StaggerMode = "distance"
)

// Stagger configures systematic per-node delays, by paint order or by
// spatial distance from the frame center.
type Stagger struct {
	Mode   StaggerMode `yaml:"mode"`
	Amount float64     `yaml:"amount"`
}

// An EasingOverride replaces the transition's base easing for one
// property of one node.
type EasingOverride struct {
	NodeID   string `yaml:"nodeId"`
	Property string `yaml:"property"`
	Easing   string `yaml:"easing"`
}

// A Transition is a directed edge between two frames with the timing
// configuration motion is synthesized from. Times are milliseconds.
type Transition struct {
	ID        string           `yaml:"id"`
	From      string           `yaml:"from"`
	To        string           `yaml:"to"`
	Duration  float64          `yaml:"duration"`
	Delay     float64          `yaml:"delay"`
	Easing    string           `yaml:"easing"`
	Animation AnimationMode    `yaml:"animation"`
	Stagger   Stagger          `yaml:"stagger"`
	Overrides []EasingOverride `yaml:"overrides,omitempty"`
}

// OverrideFor returns the easing override for a node/property pair.
func (t *Transition) OverrideFor(nodeID, property string) (string, bool) {
	for _, o := range t.Overrides {
		if o.NodeID == nodeID && o.Property == property {
			return o.Easing, true
		}
	}
	return "", false
}

// A Scene is the full authoring document: every frame plus every
// transition between frames.
type Scene struct {
	Frames      []*Frame      `yaml:"frames"`
	Transitions []*Transition `yaml:"transitions"`
}

// FrameByID returns the frame with the given id, or nil.
func (s *Scene) FrameByID(id string) *Frame {
	for _, f := range s.Frames {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// TransitionByID returns the transition with the given id, or nil.
func (s *Scene) TransitionByID(id string) *Transition {
	for _, t := range s.Transitions {
		if t.ID == id {
			return t
		}
	}
	return nil
}
