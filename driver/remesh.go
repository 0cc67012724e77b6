package driver

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/constraint"
	"github.com/notargets/tetremesh/imaginary"
	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/ops"
	"github.com/notargets/tetremesh/predicates"
	"github.com/notargets/tetremesh/sizing"
	"github.com/notargets/tetremesh/types"
)

// Config bundles everything Remesh needs beyond the triangulation itself.
type Config struct {
	Field             sizing.Field
	Constraints       constraint.Map
	Selector          CellSelector
	ProtectBoundaries bool
	MaxIterations     int
	// Cancel, if non-nil, is polled between iterations; a true return
	// requests cooperative abort after the current phase completes.
	Cancel func() bool
}

// Remesh runs the five-step driver sequence of spec §4.8: build complex,
// add the imaginary layer, iterate split/collapse/flip/smooth until the
// resolution criterion holds or the iteration budget is exhausted, then
// strip the imaginary layer back out. The returned triangulation is always
// valid, even when Status is not StatusOK; error is non-nil only for
// malformed input.
func Remesh(t *mesh.Triangulation, cfg Config) (*mesh.Triangulation, Status, error) {
	if t == nil {
		return nil, StatusOK, fmt.Errorf("tetremesh: remesh: InvalidInput: nil triangulation")
	}
	if cfg.Field == nil {
		return nil, StatusOK, fmt.Errorf("tetremesh: remesh: InvalidInput: nil sizing field")
	}
	if err := t.IsValid(true, predicates.DefaultKernel{}); err != nil {
		return nil, StatusOK, fmt.Errorf("tetremesh: remesh: InvalidInput: %w", err)
	}
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 1
	}

	Initialize(t, cfg.Selector, cfg.Constraints)
	imaginary.AddLayer(t)

	status := StatusResolutionNotReached
	for i := 0; i < maxIterations; i++ {
		ops.Split(t, cfg.Field, cfg.ProtectBoundaries)
		ops.Collapse(t, cfg.Field, cfg.ProtectBoundaries)
		ops.Flip(t)
		ops.Smooth(t)

		if resolutionReached(t, cfg.Field) {
			status = StatusOK
			break
		}
		if cfg.Cancel != nil && cfg.Cancel() {
			status = StatusCancelled
			break
		}
	}

	imaginary.RemoveFromComplex(t)
	imaginary.RemoveScaffold(t)

	return t, status, nil
}

// resolutionReached implements spec §4.8's resolution criterion: every
// finite edge that is neither complex, nor on a complex facet, nor
// imaginary must have squared length within [emin^2, emax^2] of the
// sizing field probed at the origin.
func resolutionReached(t *mesh.Triangulation, field sizing.Field) bool {
	emin, emax := sizing.Bounds(field.At(r3.Vec{}))
	eminSq, emaxSq := emin*emin, emax*emax

	for ek := range t.FiniteEdges() {
		if t.IsComplexEdge(ek) {
			continue
		}
		ring := t.EdgeRing(ek.A, ek.B)
		if len(ring) == 0 {
			continue
		}
		if allImaginary(t, ring) {
			continue
		}
		if onComplexFacet(t, ring, ek) {
			continue
		}
		sq := predicates.SquaredLength(t.Position(ek.A), t.Position(ek.B))
		if sq < eminSq || sq > emaxSq {
			return false
		}
	}
	return true
}

func allImaginary(t *mesh.Triangulation, ring []types.CellHandle) bool {
	for _, c := range ring {
		if !t.IsImaginary(c) {
			return false
		}
	}
	return len(ring) > 0
}

// onComplexFacet reports whether edge ek lies on any complex facet of its
// ring, i.e. whether it is a subdomain-boundary edge.
func onComplexFacet(t *mesh.Triangulation, ring []types.CellHandle, ek types.EdgeKey) bool {
	for _, c := range ring {
		la, lb := t.LocalIndex(c, ek.A), t.LocalIndex(c, ek.B)
		for i := 0; i < 4; i++ {
			if i == la || i == lb {
				continue
			}
			if t.IsComplexFacet(t.FacetKey(mesh.Facet{Cell: c, Index: i})) {
				return true
			}
		}
	}
	return false
}
