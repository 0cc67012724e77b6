package predicates

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// MatrixKernel is a Kernel implementation that computes orientation and
// in-sphere determinants through gonum/mat's LU-based Det, rather than the
// hand-expanded cofactor expansion DefaultKernel uses. It is slower but
// delegates to BLAS/LAPACK routines, so it is the Kernel to select when the
// netlib build tag links a hardware-accelerated backend.
type MatrixKernel struct{}

func (MatrixKernel) Orientation(a, b, c, d r3.Vec) int {
	m := mat.NewDense(3, 3, []float64{
		b.X - a.X, b.Y - a.Y, b.Z - a.Z,
		c.X - a.X, c.Y - a.Y, c.Z - a.Z,
		d.X - a.X, d.Y - a.Y, d.Z - a.Z,
	})
	det := mat.Det(m)
	switch {
	case det > 0:
		return 1
	case det < 0:
		return -1
	default:
		return 0
	}
}

func (MatrixKernel) InSphere(a, b, c, d, p r3.Vec) int {
	row := func(v r3.Vec) []float64 {
		return []float64{
			v.X - p.X, v.Y - p.Y, v.Z - p.Z,
			r3.Dot(r3.Sub(v, p), r3.Sub(v, p)),
		}
	}
	m := mat.NewDense(4, 4, append(append(append(
		row(a), row(b)...), row(c)...), row(d)...))
	det := mat.Det(m)
	if (MatrixKernel{}).Orientation(a, b, c, d) > 0 {
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
