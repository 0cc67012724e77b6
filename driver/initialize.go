package driver

import (
	"log"

	"github.com/notargets/tetremesh/constraint"
	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/types"
)

// CellSelector decides which cells of an input triangulation Initialize
// classifies and tags. A vertex incident only to unselected cells is left
// Unclassified. Only Initialize consults the selector: Split, Collapse and
// Flip run over every finite cell, and Smooth never moves an Unclassified
// vertex.
type CellSelector func(types.CellHandle) bool

// SelectAll is the default selector: every finite cell participates.
func SelectAll(types.CellHandle) bool { return true }

// Initialize builds the complex overlay (spec §4.3 steps 1, 2, 4, 5, 6):
// it tags subdomain-boundary facets and constrained or non-manifold edges
// as complex, classifies every participating vertex's in_dimension, and
// registers corners. It does not add the imaginary layer; call
// imaginary.AddLayer for that once Initialize returns.
func Initialize(t *mesh.Triangulation, selector CellSelector, constraints constraint.Map) {
	if selector == nil {
		selector = SelectAll
	}

	var maxSI types.SubdomainIndex
	selected := make(map[types.CellHandle]bool)
	for c := range t.FiniteCells() {
		if !selector(c) {
			continue
		}
		selected[c] = true
		if si := t.SubdomainIndex(c); si > maxSI {
			maxSI = si
		}
	}

	for c := range selected {
		for _, v := range t.CellVertices(c) {
			if t.InDimension(v) == types.Unclassified {
				t.SetInDimension(v, types.Volume)
			}
		}
	}

	t.SetMaxSubdomainIndex(maxSI)
	if maxSI == 0 {
		log.Printf("tetremesh: initialize: max subdomain index is 0, remeshing is likely to fail")
	}

	for f := range t.FiniteFacets() {
		if !selected[f.Cell] {
			continue
		}
		mirror := t.MirrorFacet(f)
		if mirror.Cell.IsNil() || !selected[mirror.Cell] {
			continue
		}
		if t.SubdomainIndex(f.Cell) == t.SubdomainIndex(mirror.Cell) {
			continue
		}
		t.MarkComplexFacet(t.FacetKey(f))
		for _, v := range t.FacetVertices(f) {
			lowerDimension(t, v, types.Surface)
		}
	}

	for ek := range t.FiniteEdges() {
		ring := t.EdgeRing(ek.A, ek.B)
		if len(ring) == 0 {
			continue
		}
		participates := false
		for _, c := range ring {
			if selected[c] {
				participates = true
				break
			}
		}
		if !participates {
			continue
		}

		constrained := constraints != nil && constraints.Get(ek.A, ek.B)
		nonManifold := len(t.IncidentSubdomains(ring)) > 2
		if !constrained && !nonManifold {
			continue
		}
		t.MarkComplexEdge(ek)
		lowerDimension(t, ek.A, types.FeatureEdge)
		lowerDimension(t, ek.B, types.FeatureEdge)
	}

	complexEdgeCount := make(map[types.VertexHandle]int)
	for ek := range t.ComplexEdgeKeys() {
		complexEdgeCount[ek.A]++
		complexEdgeCount[ek.B]++
	}

	for v := range t.FiniteVertices() {
		if t.InDimension(v) == types.Corner || complexEdgeCount[v] > 2 {
			t.MarkCorner(v)
		}
	}
}

// lowerDimension sets v's in_dimension to d if it is currently higher
// (or still Unclassified, which sorts below every real dimension but is
// not itself a valid floor: an unclassified vertex becoming complex has
// already been pulled to Volume by the loop over selected cells).
func lowerDimension(t *mesh.Triangulation, v types.VertexHandle, d types.Dimension) {
	if cur := t.InDimension(v); cur == types.Unclassified || d < cur {
		t.SetInDimension(v, d)
	}
}
