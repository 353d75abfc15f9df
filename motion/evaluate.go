package motion

import (
	"sort"

	"github.com/matt-g-everett/motiontx/scene"
)

// Evaluate samples every track of a transition at timeMs and returns the
// resulting node snapshots in paint order. The snapshots are fresh deep
// copies owned by the caller; the scene is never touched. Unknown
// transition ids and dangling frame references yield an empty result
// rather than an error, so Evaluate is safe to drive from untrusted
// input. It is pure and may be called concurrently.
func Evaluate(s *scene.Scene, m *Model, transitionID string, timeMs float64) []*scene.Node {
	t := s.TransitionByID(transitionID)
	mt := m.Transition(transitionID)
	if t == nil || mt == nil {
		return nil
	}
	from := s.FrameByID(t.From)
	to := s.FrameByID(t.To)
	if from == nil || to == nil {
		return nil
	}

	// Union of identities over both frames; the to-side node is the
	// baseline when it exists.
	var snapshots []*scene.Node
	byID := make(map[string]*scene.Node)
	for _, n := range to.Nodes {
		c := n.Clone()
		byID[n.ID] = c
		snapshots = append(snapshots, c)
	}
	for _, n := range from.Nodes {
		if _, ok := byID[n.ID]; ok {
			continue
		}
		c := n.Clone()
		byID[n.ID] = c
		snapshots = append(snapshots, c)
	}

	for _, track := range mt.Tracks {
		n, ok := byID[track.NodeID]
		if !ok {
			continue
		}
		applyProperty(n, track.Property, sample(track, timeMs))
	}

	sort.SliceStable(snapshots, func(i, j int) bool { return snapshots[i].Z < snapshots[j].Z })
	return snapshots
}

// sample computes a track's value at an absolute time.
func sample(t Track, timeMs float64) float64 {
	local := timeMs - t.Delay
	if t.Duration <= 0 || local >= t.Duration {
		return t.To
	}
	if local <= 0 {
		return t.From
	}
	progress := local / t.Duration
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	return t.From + (t.To-t.From)*EasingFunc(t.Easing)(progress)
}
