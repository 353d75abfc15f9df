package motion

import (
	"math"

	"github.com/matt-g-everett/motiontx/scene"
)

// enterOffset is the vertical displacement entering nodes rise from and
// exiting nodes sink by, in scene units.
const enterOffset = 12.0

// Synthesize turns one transition's pairing list into a flat track list.
// centerX/centerY is the to-frame's geometric center, used by
// distance-based stagger.
func Synthesize(pairings []Pairing, t *scene.Transition, centerX, centerY float64) []Track {
	duration := t.Duration
	delay := t.Delay
	if t.Animation == scene.AnimationInstant {
		duration = 0
		delay = 0
	}
	easing := t.Easing
	if t.Animation == scene.AnimationLinear {
		easing = "linear"
	}

	var tracks []Track
	for i, p := range pairings {
		d := delay + staggerDelay(t, i, p.Node(), centerX, centerY)

		switch p.Tag {
		case TagEnter:
			if t.Animation == scene.AnimationInstant {
				// Entering nodes simply appear under instant animation.
				continue
			}
			n := p.To
			tracks = emit(tracks, Track{n.ID, PropOpacity, 0, n.Opacity, duration, d, easing})
			if t.Animation != scene.AnimationDissolve {
				tracks = emit(tracks, Track{n.ID, PropY, n.Y + enterOffset, n.Y, duration, d, easing})
			}

		case TagExit:
			n := p.From
			switch t.Animation {
			case scene.AnimationInstant:
				tracks = emit(tracks, Track{n.ID, PropOpacity, n.Opacity, 0, 0, d, easing})
			case scene.AnimationDissolve:
				tracks = emit(tracks, Track{n.ID, PropOpacity, n.Opacity, 0, duration, d, easing})
			default:
				tracks = emit(tracks, Track{n.ID, PropOpacity, n.Opacity, 0, duration, d, easing})
				tracks = emit(tracks, Track{n.ID, PropY, n.Y, n.Y - enterOffset, duration, d, easing})
			}

		default: // matched by name or id
			if t.Animation == scene.AnimationDissolve {
				tracks = emit(tracks, Track{p.From.ID, PropOpacity, p.From.Opacity, 0, duration, d, easing})
				tracks = emit(tracks, Track{p.To.ID, PropOpacity, 0, p.To.Opacity, duration, d, easing})
				continue
			}
			for _, prop := range animatedProperties {
				from := propertyValue(p.From, prop)
				to := propertyValue(p.To, prop)
				if from == to {
					continue
				}
				e := easing
				if override, ok := t.OverrideFor(p.To.ID, string(prop)); ok {
					e = override
				}
				tracks = append(tracks, Track{p.To.ID, prop, from, to, duration, d, e})
			}
			if p.Tag == TagName && p.From.ID != p.To.ID {
				// A duplicate name paired two different identities; hide
				// the stale from-identity instantly so it never lingers.
				tracks = emit(tracks, Track{p.From.ID, PropOpacity, p.From.Opacity, 0, 0, 0, "linear"})
			}
		}
	}
	return tracks
}

// emit appends a track unless it would be a no-op.
func emit(tracks []Track, t Track) []Track {
	if t.From == t.To {
		return tracks
	}
	return append(tracks, t)
}

func staggerDelay(t *scene.Transition, index int, n *scene.Node, centerX, centerY float64) float64 {
	switch t.Stagger.Mode {
	case scene.StaggerOrder:
		return float64(index) * t.Stagger.Amount
	case scene.StaggerDistance:
		nx, ny := n.Center()
		return math.Hypot(nx-centerX, ny-centerY) / 100 * t.Stagger.Amount
	}
	return 0
}
