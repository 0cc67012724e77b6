package predicates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMatrixKernelOrientationAgreesWithDefaultKernel(t *testing.T) {
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 1, Y: 0, Z: 0}
	c := r3.Vec{X: 0, Y: 1, Z: 0}
	d := r3.Vec{X: 0, Y: 0, Z: 1}

	var def DefaultKernel
	var mk MatrixKernel
	assert.Equal(t, def.Orientation(a, b, c, d), mk.Orientation(a, b, c, d))
	assert.Equal(t, def.Orientation(a, b, d, c), mk.Orientation(a, b, d, c))
}

func TestMatrixKernelInSphereAgreesWithDefaultKernel(t *testing.T) {
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 1, Y: 0, Z: 0}
	c := r3.Vec{X: 0, Y: 1, Z: 0}
	d := r3.Vec{X: 0, Y: 0, Z: 1}
	inside := r3.Vec{X: 0.1, Y: 0.1, Z: 0.1}

	var def DefaultKernel
	var mk MatrixKernel
	assert.Equal(t, def.InSphere(a, b, c, d, inside) > 0, mk.InSphere(a, b, c, d, inside) > 0)
}
