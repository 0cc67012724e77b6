package ops

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/predicates"
	"github.com/notargets/tetremesh/sizing"
	"github.com/notargets/tetremesh/types"
)

// Split runs one full pass of the long-edge subdivision operator: every
// finite edge longer than the local emax is split at its midpoint, longest
// first, and every edge born from a split is re-queued so the pass drains
// to a fixed point (each split strictly shortens the edges above threshold
// in its one-ring, so the queue is guaranteed to empty).
func Split(t *mesh.Triangulation, field sizing.Field, protectBoundaries bool) {
	q := newEdgeQueue(true)
	for ek := range t.FiniteEdges() {
		queueIfLong(t, field, q, ek)
	}

	for {
		ek, _, ok := q.pop()
		if !ok {
			return
		}
		if !t.AliveVertex(ek.A) || !t.AliveVertex(ek.B) {
			continue
		}
		ring := t.EdgeRing(ek.A, ek.B)
		if len(ring) == 0 {
			continue
		}
		_, emax := edgeBounds(t, field, ek.A, ek.B)
		current := predicates.SquaredLength(t.Position(ek.A), t.Position(ek.B))
		if current <= emax*emax {
			continue // stale: no longer over threshold
		}
		if allImaginary(t, ring) {
			continue
		}
		if protectBoundaries && (t.IsComplexEdge(ek) || edgeOnComplexFacet(t, ek.A, ek.B)) {
			continue
		}

		wasComplexEdge := t.IsComplexEdge(ek)
		dim := types.Volume
		switch {
		case wasComplexEdge:
			dim = types.FeatureEdge
		case edgeOnComplexFacet(t, ek.A, ek.B):
			dim = types.Surface
		}

		var taggedWings []types.VertexHandle
		for _, c := range ring {
			la, lb := t.LocalIndex(c, ek.A), t.LocalIndex(c, ek.B)
			for i := 0; i < 4; i++ {
				if i == la || i == lb {
					continue
				}
				fv := t.FacetVertices(mesh.Facet{Cell: c, Index: i})
				if !t.IsComplexFacet(types.NewFacetKey(fv[0], fv[1], fv[2])) {
					continue
				}
				for _, v := range fv {
					if v != ek.A && v != ek.B {
						taggedWings = append(taggedWings, v)
					}
				}
			}
		}

		mid := r3.Scale(0.5, r3.Add(t.Position(ek.A), t.Position(ek.B)))
		nv, children := t.InsertOnEdge(ek.A, ek.B, mid, dim)

		if wasComplexEdge {
			t.UnmarkComplexEdge(ek)
			t.MarkComplexEdge(types.NewEdgeKey(ek.A, nv))
			t.MarkComplexEdge(types.NewEdgeKey(nv, ek.B))
		}
		for _, w := range taggedWings {
			t.UnmarkComplexFacet(types.NewFacetKey(ek.A, ek.B, w))
			t.MarkComplexFacet(types.NewFacetKey(ek.A, nv, w))
			t.MarkComplexFacet(types.NewFacetKey(nv, ek.B, w))
		}

		for _, c := range children {
			verts := t.CellVertices(c)
			for _, e := range mesh.EdgeLocalIndices {
				queueIfLong(t, field, q, types.NewEdgeKey(verts[e[0]], verts[e[1]]))
			}
		}
	}
}

// edgeBounds evaluates the sizing field at an edge's midpoint and returns
// (emin, emax) for that edge.
func edgeBounds(t *mesh.Triangulation, field sizing.Field, a, b types.VertexHandle) (float64, float64) {
	mid := r3.Scale(0.5, r3.Add(t.Position(a), t.Position(b)))
	return sizing.Bounds(field.At(mid))
}

func queueIfLong(t *mesh.Triangulation, field sizing.Field, q *edgeQueue, ek types.EdgeKey) {
	_, emax := edgeBounds(t, field, ek.A, ek.B)
	sq := predicates.SquaredLength(t.Position(ek.A), t.Position(ek.B))
	if sq > emax*emax {
		q.push(ek, sq)
	}
}
