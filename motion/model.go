package motion

import "github.com/matt-g-everett/motiontx/scene"

// A ModelTransition carries the synthesized tracks for one transition.
type ModelTransition struct {
	TransitionID string
	Tracks       []Track
}

// A Model is the derived set of motion transitions for a whole scene. It
// is recomputable at any time from the scene alone and is rebuilt in
// full whenever frames or transition configuration change; it is never
// patched in place.
type Model struct {
	Transitions []ModelTransition
}

// Build synthesizes the motion model for every transition in the scene.
// Transitions whose frames cannot be resolved produce an empty track
// list rather than an error.
func Build(s *scene.Scene) *Model {
	m := new(Model)
	for _, t := range s.Transitions {
		mt := ModelTransition{TransitionID: t.ID}
		from := s.FrameByID(t.From)
		to := s.FrameByID(t.To)
		if from != nil && to != nil {
			centerX, centerY := to.Center()
			mt.Tracks = Synthesize(Match(from.Nodes, to.Nodes), t, centerX, centerY)
		}
		m.Transitions = append(m.Transitions, mt)
	}
	return m
}

// Transition returns the motion transition with the given id, or nil.
func (m *Model) Transition(id string) *ModelTransition {
	for i := range m.Transitions {
		if m.Transitions[i].TransitionID == id {
			return &m.Transitions[i]
		}
	}
	return nil
}

// Duration returns the playback duration of a transition: the furthest
// point any track reaches, which can exceed the transition's nominal
// duration once stagger and overrides are applied.
func (m *Model) Duration(id string) float64 {
	mt := m.Transition(id)
	if mt == nil {
		return 0
	}
	max := 0.0
	for _, t := range mt.Tracks {
		if end := t.Delay + t.Duration; end > max {
			max = end
		}
	}
	return max
}
