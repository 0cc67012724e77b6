package sizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestConstantFieldIgnoresPosition(t *testing.T) {
	c := Constant(2.5)
	assert.Equal(t, 2.5, c.At(r3.Vec{X: 1, Y: 2, Z: 3}))
	assert.Equal(t, 2.5, c.At(r3.Vec{}))
}

func TestBoundsScaleAroundTarget(t *testing.T) {
	emin, emax := Bounds(1.0)
	assert.InDelta(t, 0.8, emin, 1e-12)
	assert.InDelta(t, 4.0/3.0, emax, 1e-12)
	assert.Less(t, emin, emax)
}
