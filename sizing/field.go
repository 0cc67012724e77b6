// Package sizing implements the target edge-length callable the split,
// collapse and resolution-check phases consult: the Go form of the "FT
// sizing(Point)" external collaborator named in the specification this
// engine implements.
package sizing

import "gonum.org/v1/gonum/spatial/r3"

// Field is a target edge length as a function of position.
type Field interface {
	At(p r3.Vec) float64
}

// Constant is a uniform target edge length, the sizing field used by the CLI
// default and by the fixture tests in this repository.
type Constant float64

func (c Constant) At(r3.Vec) float64 {
	return float64(c)
}

// Bounds returns (emin, emax) = (4/5, 4/3) * target, the split/collapse
// thresholds and the resolution interval endpoints named throughout §4.4,
// §4.5 and §4.8.
func Bounds(target float64) (emin, emax float64) {
	return 0.8 * target, (4.0 / 3.0) * target
}
