package ops

import (
	"math"

	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/predicates"
	"github.com/notargets/tetremesh/types"
)

// Flip runs greedy passes of the local flip operator over every finite
// facet (2-to-3 candidates) and every finite edge (3-to-2 candidates),
// repeating full passes until one applies no flip.
func Flip(t *mesh.Triangulation) {
	for {
		applied := false
		for f := range t.FiniteFacets() {
			if tryFlip23(t, f) {
				applied = true
			}
		}
		for ek := range t.FiniteEdges() {
			if tryFlip32(t, ek) {
				applied = true
			}
		}
		if !applied {
			return
		}
	}
}

func quality(t *mesh.Triangulation, verts [4]types.VertexHandle) float64 {
	return predicates.Quality(
		t.Position(verts[0]), t.Position(verts[1]), t.Position(verts[2]), t.Position(verts[3]),
	)
}

// tryFlip23 attempts a 2-to-3 flip across facet f, accepting only if it
// strictly improves the minimum quality of the region, both cells share a
// subdomain, and the facet is not part of the complex.
func tryFlip23(t *mesh.Triangulation, f mesh.Facet) bool {
	if !t.AliveCell(f.Cell) {
		return false // an earlier flip in this pass already removed it
	}
	mirror := t.MirrorFacet(f)
	if mirror.Cell == types.NilCell {
		return false
	}
	if t.IsComplexFacet(t.FacetKey(f)) {
		return false
	}
	if t.SubdomainIndex(f.Cell) != t.SubdomainIndex(mirror.Cell) {
		return false
	}
	if t.IsImaginary(f.Cell) || t.IsImaginary(mirror.Cell) {
		return false
	}

	verts := t.FacetVertices(f)
	a, b, c := verts[0], verts[1], verts[2]
	p := t.CellVertices(f.Cell)[f.Index]
	q := t.CellVertices(mirror.Cell)[mirror.Index]

	oldQuality := math.Min(
		quality(t, [4]types.VertexHandle{a, b, c, p}),
		quality(t, [4]types.VertexHandle{a, b, c, q}),
	)
	newQuality := math.Min(math.Min(
		quality(t, [4]types.VertexHandle{a, b, p, q}),
		quality(t, [4]types.VertexHandle{b, c, p, q})),
		quality(t, [4]types.VertexHandle{c, a, p, q}),
	)
	if !(newQuality > oldQuality) {
		return false
	}
	if predicates.Orientation(t.Position(a), t.Position(b), t.Position(p), t.Position(q)) == 0 ||
		predicates.Orientation(t.Position(b), t.Position(c), t.Position(p), t.Position(q)) == 0 ||
		predicates.Orientation(t.Position(c), t.Position(a), t.Position(p), t.Position(q)) == 0 {
		return false
	}

	_, err := t.Flip23(f)
	return err == nil
}

// tryFlip32 attempts a 3-to-2 flip collapsing the three-cell ring around
// edge (a,b) into two cells sharing the wing triangle, subject to the same
// quality-improvement and complex-preservation rules as tryFlip23.
func tryFlip32(t *mesh.Triangulation, ek types.EdgeKey) bool {
	if !t.AliveVertex(ek.A) || !t.AliveVertex(ek.B) {
		return false
	}
	if t.IsComplexEdge(ek) {
		return false
	}
	ring := t.EdgeRing(ek.A, ek.B)
	if len(ring) != 3 {
		return false
	}
	if allImaginary(t, ring) {
		return false
	}
	sd := t.SubdomainIndex(ring[0])

	wings := make(map[types.VertexHandle]struct{}, 3)
	oldQuality := math.Inf(1)
	for _, c := range ring {
		if t.SubdomainIndex(c) != sd {
			return false
		}
		verts := t.CellVertices(c)
		la, lb := t.LocalIndex(c, ek.A), t.LocalIndex(c, ek.B)
		for i, v := range verts {
			if i != la && i != lb {
				wings[v] = struct{}{}
			}
		}
		q := quality(t, verts)
		if q < oldQuality {
			oldQuality = q
		}
		for i := 0; i < 4; i++ {
			if i == la || i == lb {
				continue
			}
			if t.IsComplexFacet(t.FacetKey(mesh.Facet{Cell: c, Index: i})) {
				return false
			}
		}
	}
	if len(wings) != 3 {
		return false
	}
	w := make([]types.VertexHandle, 0, 3)
	for v := range wings {
		w = append(w, v)
	}

	newQuality := math.Min(
		quality(t, [4]types.VertexHandle{ek.A, w[0], w[1], w[2]}),
		quality(t, [4]types.VertexHandle{ek.B, w[0], w[1], w[2]}),
	)
	if !(newQuality > oldQuality) {
		return false
	}
	if predicates.Orientation(t.Position(ek.A), t.Position(w[0]), t.Position(w[1]), t.Position(w[2])) == 0 {
		return false
	}

	_, err := t.Flip32(ek.A, ek.B)
	return err == nil
}
