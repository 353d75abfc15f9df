// Package motion synthesizes interpolation tracks between two frames of
// a scene and evaluates them at arbitrary times.
package motion

import (
	"math"

	"github.com/fogleman/ease"
)

// A Curve maps normalized progress in [0,1] to eased progress. Output
// may leave [0,1] for overshoot, bounce and spring.
type Curve func(float64) float64

// DefaultEasing is the curve used when an easing name is unknown or
// unset. Lookup never fails.
const DefaultEasing = "ease"

var curves = map[string]Curve{
	"linear":    ease.Linear,
	"ease":      ease.InOutQuad,
	"ease-in":   ease.InQuad,
	"ease-out":  ease.OutQuad,
	"spring":    spring,
	"bounce":    ease.OutBounce,
	"overshoot": ease.OutBack,
}

// EasingFunc resolves an easing name to its curve, falling back to
// DefaultEasing for any name it does not recognise.
func EasingFunc(name string) Curve {
	if f, ok := curves[name]; ok {
		return f
	}
	return curves[DefaultEasing]
}

// spring is a decaying cosine oscillation that settles near 1.
func spring(t float64) float64 {
	return 1 - math.Cos(4*math.Pi*t)*math.Exp(-6*t)
}
