package predicates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSquaredLength(t *testing.T) {
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 3, Y: 4, Z: 0}
	assert.InDelta(t, 25.0, SquaredLength(a, b), 1e-9)
}

func TestOrientationSignsMatchHandedness(t *testing.T) {
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 1, Y: 0, Z: 0}
	c := r3.Vec{X: 0, Y: 1, Z: 0}
	d := r3.Vec{X: 0, Y: 0, Z: 1}
	assert.Equal(t, 1, Orientation(a, b, c, d))
	assert.Equal(t, -1, Orientation(a, c, b, d))
	assert.Equal(t, 0, Orientation(a, b, c, r3.Vec{X: 1, Y: 1, Z: 0}))
}

func TestTetVolumeOfUnitTet(t *testing.T) {
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 1, Y: 0, Z: 0}
	c := r3.Vec{X: 0, Y: 1, Z: 0}
	d := r3.Vec{X: 0, Y: 0, Z: 1}
	assert.InDelta(t, 1.0/6.0, TetVolume(a, b, c, d), 1e-9)
}

func TestInSpherePositiveForCircumscribedPoint(t *testing.T) {
	// A regular-ish tet centered near the origin; the centroid should read
	// as inside its own circumsphere.
	a := r3.Vec{X: 1, Y: 1, Z: 1}
	b := r3.Vec{X: 1, Y: -1, Z: -1}
	c := r3.Vec{X: -1, Y: 1, Z: -1}
	d := r3.Vec{X: -1, Y: -1, Z: 1}
	k := DefaultKernel{}
	require := Orientation(a, b, c, d)
	if require < 0 {
		a, b = b, a
	}
	assert.Equal(t, 1, k.InSphere(a, b, c, d, r3.Vec{X: 0, Y: 0, Z: 0}))
	assert.Equal(t, -1, k.InSphere(a, b, c, d, r3.Vec{X: 10, Y: 10, Z: 10}))
}
