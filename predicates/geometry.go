// Package predicates implements the small set of geometric primitives the
// remeshing operators need: squared edge length, tetrahedron orientation
// and signed volume, and an element quality metric. The exact/filtered
// geometric kernel a production triangulation container would use is named
// as an external collaborator in the specification this engine implements;
// Kernel is the seam where such a kernel plugs in, and DefaultKernel is a
// plain float64 implementation adequate for the fixtures and tests in this
// repository.
package predicates

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SquaredLength returns the squared Euclidean distance between two points,
// avoiding the sqrt on the hot comparison path (every split/collapse
// threshold test compares squared lengths against emin^2/emax^2).
func SquaredLength(a, b r3.Vec) float64 {
	d := r3.Sub(b, a)
	return r3.Dot(d, d)
}

// SignedVolume returns six times the signed volume of the tetrahedron
// (a, b, c, d): positive when (b-a, c-a, d-a) is a right-handed frame.
func SignedVolume(a, b, c, d r3.Vec) float64 {
	ab := r3.Sub(b, a)
	ac := r3.Sub(c, a)
	ad := r3.Sub(d, a)
	return r3.Dot(ab, r3.Cross(ac, ad))
}

// Orientation reports the sign of SignedVolume: +1, 0 or -1.
func Orientation(a, b, c, d r3.Vec) int {
	v := SignedVolume(a, b, c, d)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Kernel is the external geometric-predicate collaborator named in the
// specification: orientation and in-sphere tests, kept behind an interface
// so a robust/filtered implementation can be substituted without touching
// the mesh or ops packages.
type Kernel interface {
	// Orientation returns the sign of the signed volume of (a,b,c,d).
	Orientation(a, b, c, d r3.Vec) int
	// InSphere returns +1 if p is inside the sphere circumscribing
	// (a,b,c,d) oriented positively, -1 if outside, 0 if cocircular.
	InSphere(a, b, c, d, p r3.Vec) int
}

// DefaultKernel is a plain float64 Kernel, precise enough for the modest
// fixture sizes exercised by this repository's tests but not
// exactness-guaranteed the way a production filtered kernel would be.
type DefaultKernel struct{}

func (DefaultKernel) Orientation(a, b, c, d r3.Vec) int {
	return Orientation(a, b, c, d)
}

// InSphere uses the standard 5x5 determinant lifted to the paraboloid
// z = x^2+y^2+z^2, normalized by the orientation of (a,b,c,d) so that the
// sign convention matches "positive means p is inside" for a
// positively-oriented (a,b,c,d).
func (DefaultKernel) InSphere(a, b, c, d, p r3.Vec) int {
	lift := func(v r3.Vec) [4]float64 {
		return [4]float64{v.X, v.Y, v.Z, v.X*v.X + v.Y*v.Y + v.Z*v.Z}
	}
	la, lb, lc, ld, lp := lift(a), lift(b), lift(c), lift(d), lift(p)

	// 5x5 determinant via cofactor expansion on the homogeneous column of 1s,
	// reduced to a 4x4 determinant of row differences against p.
	rows := [4][4]float64{
		{la[0] - lp[0], la[1] - lp[1], la[2] - lp[2], la[3] - lp[3]},
		{lb[0] - lp[0], lb[1] - lp[1], lb[2] - lp[2], lb[3] - lp[3]},
		{lc[0] - lp[0], lc[1] - lp[1], lc[2] - lp[2], lc[3] - lp[3]},
		{ld[0] - lp[0], ld[1] - lp[1], ld[2] - lp[2], ld[3] - lp[3]},
	}
	det := det4(rows)
	// For a positively oriented (a,b,c,d) this determinant is negative when
	// p is inside, so it is negated to make "inside" read as +1.
	if Orientation(a, b, c, d) > 0 {
		det = -det
	}
	switch {
	case det > 0:
		return 1
	case det < 0:
		return -1
	default:
		return 0
	}
}

func det4(m [4][4]float64) float64 {
	sub3 := func(m [3][3]float64) float64 {
		return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
			m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
			m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	}
	minor := func(col int) [3][3]float64 {
		var out [3][3]float64
		for r := 1; r < 4; r++ {
			cc := 0
			for c := 0; c < 4; c++ {
				if c == col {
					continue
				}
				out[r-1][cc] = m[r][c]
				cc++
			}
		}
		return out
	}
	det := 0.0
	sign := 1.0
	for c := 0; c < 4; c++ {
		det += sign * m[0][c] * sub3(minor(c))
		sign = -sign
	}
	return det
}

// TetVolume returns the (unsigned) volume of the tetrahedron (a,b,c,d).
func TetVolume(a, b, c, d r3.Vec) float64 {
	return math.Abs(SignedVolume(a, b, c, d)) / 6
}

// dihedralAngle returns the interior angle, in radians, between the two
// faces of a tetrahedron that meet at edge pq, with r and s the two faces'
// respective third vertices. Both apex vectors are projected perpendicular
// to the edge before measuring the angle between them, so the result does
// not depend on how far r and s sit from the edge.
func dihedralAngle(p, q, r, s r3.Vec) float64 {
	u := r3.Sub(q, p)
	uu := r3.Dot(u, u)
	proj := func(x r3.Vec) r3.Vec {
		v := r3.Sub(x, p)
		return r3.Sub(v, r3.Scale(r3.Dot(v, u)/uu, u))
	}
	v1, v2 := proj(r), proj(s)
	cross := r3.Cross(v1, v2)
	return math.Atan2(r3.Norm(cross), r3.Dot(v1, v2))
}

// Quality returns the minimum dihedral angle, in radians, across the six
// edges of tetrahedron (a,b,c,d). This is the quality metric flip
// acceptance compares: larger is better, with arccos(1/3) (~1.231 rad) being
// the dihedral angle of a regular tetrahedron and values near 0 or pi
// indicating a sliver.
func Quality(a, b, c, d r3.Vec) float64 {
	angles := [6]float64{
		dihedralAngle(a, b, c, d),
		dihedralAngle(a, c, b, d),
		dihedralAngle(a, d, b, c),
		dihedralAngle(b, c, a, d),
		dihedralAngle(b, d, a, c),
		dihedralAngle(c, d, a, b),
	}
	min := angles[0]
	for _, ang := range angles[1:] {
		if ang < min {
			min = ang
		}
	}
	return min
}
