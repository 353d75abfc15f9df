package paint

import "math"

// affine is a 2D transform: x' = a·x + c·y + e, y' = b·x + d·y + f.
type affine struct {
	a, b, c, d, e, f float64
}

func identity() affine {
	return affine{a: 1, d: 1}
}

func translation(x, y float64) affine {
	return affine{a: 1, d: 1, e: x, f: y}
}

func rotation(degrees float64) affine {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return affine{a: cos, b: sin, c: -sin, d: cos}
}

func scaling(sx, sy float64) affine {
	return affine{a: sx, d: sy}
}

// compose returns the transform that applies n first, then m.
func compose(m, n affine) affine {
	return affine{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

// invert returns the inverse transform. Degenerate transforms (zero
// scale) invert to identity so painting degrades instead of dividing by
// zero.
func (m affine) invert() affine {
	det := m.a*m.d - m.b*m.c
	if det == 0 {
		return identity()
	}
	inv := affine{
		a: m.d / det,
		b: -m.b / det,
		c: -m.c / det,
		d: m.a / det,
	}
	inv.e = -(inv.a*m.e + inv.c*m.f)
	inv.f = -(inv.b*m.e + inv.d*m.f)
	return inv
}
