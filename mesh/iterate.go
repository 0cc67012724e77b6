package mesh

import (
	"iter"

	"github.com/notargets/tetremesh/types"
)

// FiniteCells iterates every live cell exactly once. There is no separate
// notion of an "infinite" cell in this representation (see the package
// doc), so this is simply every allocated, non-freed cell.
func (t *Triangulation) FiniteCells() iter.Seq[types.CellHandle] {
	return func(yield func(types.CellHandle) bool) {
		for i := range t.cells {
			rec := &t.cells[i]
			if !rec.alive {
				continue
			}
			h := types.CellHandle{Index: int32(i), Generation: rec.generation}
			if !yield(h) {
				return
			}
		}
	}
}

// FiniteVertices iterates every live vertex exactly once.
func (t *Triangulation) FiniteVertices() iter.Seq[types.VertexHandle] {
	return func(yield func(types.VertexHandle) bool) {
		for i := range t.vertices {
			rec := &t.vertices[i]
			if !rec.alive {
				continue
			}
			h := types.VertexHandle{Index: int32(i), Generation: rec.generation}
			if !yield(h) {
				return
			}
		}
	}
}

// FiniteFacets iterates every facet exactly once, reporting it from the side
// of the lower-indexed incident cell (or its only incident cell, on the
// domain boundary).
func (t *Triangulation) FiniteFacets() iter.Seq[Facet] {
	return func(yield func(Facet) bool) {
		for c := range t.FiniteCells() {
			rec := t.mustCell(c)
			for i := 0; i < 4; i++ {
				nb := rec.neighbors[i]
				if !nb.IsNil() && nb.Index < c.Index {
					continue
				}
				if !yield(Facet{Cell: c, Index: i}) {
					return
				}
			}
		}
	}
}

// FiniteEdges iterates every distinct edge exactly once, keyed by its
// canonical EdgeKey.
func (t *Triangulation) FiniteEdges() iter.Seq[types.EdgeKey] {
	return func(yield func(types.EdgeKey) bool) {
		seen := make(map[types.EdgeKey]struct{})
		for c := range t.FiniteCells() {
			verts := t.CellVertices(c)
			for _, e := range edgeLocalIndices {
				ek := types.NewEdgeKey(verts[e[0]], verts[e[1]])
				if _, ok := seen[ek]; ok {
					continue
				}
				seen[ek] = struct{}{}
				if !yield(ek) {
					return
				}
			}
		}
	}
}
