package ocr

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// blendRatioLimit caps the extrapolation factor in CanBlend so a glyph
// intensity close to 1 does not blow up the penalty.
const blendRatioLimit = 50

// Color is an assumed glyph ink color with 0-255 channels and no alpha.
// It encodes to JSON as [r, g, b].
type Color [3]int

// ParseColor parses a "#RRGGBB" hex string.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{int(r), int(g), int(b)}, nil
}

// Hex renders the color as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c[0]) / 255,
		G: float64(c[1]) / 255,
		B: float64(c[2]) / 255,
	}.Clamped().Hex()
}

// Vec returns the color as a float vector.
func (c Color) Vec() Vec3 {
	return Vec3{float64(c[0]), float64(c[1]), float64(c[2])}
}

// Vec3 is an RGB triple in float space used by the blend math.
type Vec3 [3]float64

// Scale multiplies every channel by f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v[0] * f, v[1] * f, v[2] * f}
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Cross returns the cross product v×o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - o[1]*v[2],
		v[2]*o[0] - o[2]*v[0],
		v[0]*o[1] - o[0]*v[1],
	}
}

// Norm returns the euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// CanBlend reports how far observed lies from being a blend of mix at
// proportion p (0-1) with some other valid color. The result is the worst
// per-channel overshoot of the implied second color outside [0,255]; values
// <= 0 mean such a blend exists.
func CanBlend(observed, mix Vec3, p float64) float64 {
	m := math.Min(blendRatioLimit, p/(1-p))
	r := observed[0] + (observed[0]-mix[0])*m
	g := observed[1] + (observed[1]-mix[1])*m
	b := observed[2] + (observed[2]-mix[2])*m
	return max(-r, -g, -b, r-255, g-255, b-255)
}

// Decompose3 solves p = x*c1 + y*c2 + z*c3 with Cramer's rule. Coplanar
// inputs have a zero determinant and yield NaN or Inf coefficients.
func Decompose3(p, c1, c2, c3 Vec3) (x, y, z float64) {
	r1, g1, b1 := c1[0], c1[1], c1[2]
	r2, g2, b2 := c2[0], c2[1], c2[2]
	r3, g3, b3 := c3[0], c3[1], c3[2]

	// cofactors of the column matrix [c1 c2 c3]
	a := g2*b3 - b2*g3
	bb := g3*b1 - b3*g1
	c := g1*b2 - b1*g2

	d := b2*r3 - r2*b3
	e := b3*r1 - r3*b1
	f := b1*r2 - r1*b2

	g := r2*g3 - g2*r3
	h := r3*g1 - g3*r1
	i := r1*g2 - g1*r2

	det := r1*a + g1*d + b1*g

	x = (a*p[0] + d*p[1] + g*p[2]) / det
	y = (bb*p[0] + e*p[1] + h*p[2]) / det
	z = (c*p[0] + f*p[1] + i*p[2]) / det
	return x, y, z
}

// Decompose2 splits p into amounts of c1 and c2. The third axis is the
// normal of c1 and c2 scaled to length 255, so noise is the part of p that
// neither color explains.
func Decompose2(p, c1, c2 Vec3) (x, y, noise float64) {
	c3 := c1.Cross(c2)
	c3 = c3.Scale(255 / c3.Norm())
	return Decompose3(p, c1, c2, c3)
}
