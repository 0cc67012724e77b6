package mesh

import "github.com/notargets/tetremesh/types"

// Facet identifies the triangular face of Cell opposite its Index-th vertex.
type Facet struct {
	Cell  types.CellHandle
	Index int
}

// MirrorFacet returns the same geometric facet as viewed from its other
// incident cell. If f is on the domain boundary (no neighbor), MirrorFacet
// returns a Facet with Cell NilCell and Index -1.
func (t *Triangulation) MirrorFacet(f Facet) Facet {
	c := t.mustCell(f.Cell)
	nb := c.neighbors[f.Index]
	if nb.IsNil() {
		return Facet{Cell: types.NilCell, Index: -1}
	}
	nbRec := t.mustCell(nb)
	idx := nbRec.localFacetIndexForNeighbor(f.Cell)
	if idx < 0 {
		panic("tetremesh: neighbor involution broken, mirror facet not found")
	}
	return Facet{Cell: nb, Index: idx}
}

// FacetVertices returns the three vertex handles of a facet, in the fixed
// facetVertexIndices order.
func (t *Triangulation) FacetVertices(f Facet) [3]types.VertexHandle {
	c := t.mustCell(f.Cell)
	tri := facetVertexIndices[f.Index]
	return [3]types.VertexHandle{
		c.vertices[tri[0]],
		c.vertices[tri[1]],
		c.vertices[tri[2]],
	}
}

// FacetKey returns the sorted, order-independent identity of a facet.
func (t *Triangulation) FacetKey(f Facet) types.FacetKey {
	vs := t.FacetVertices(f)
	return types.NewFacetKey(vs[0], vs[1], vs[2])
}

// setNeighbor wires the neighbor slot of c opposite local vertex i to nb.
// It does not touch nb's own neighbor slot; callers pair this with the
// symmetric call to keep the involution intact.
func (t *Triangulation) setNeighbor(c types.CellHandle, i int, nb types.CellHandle) {
	t.mustCell(c).neighbors[i] = nb
}

// bindNeighbors wires a into b's facet fb and b into a's facet fa,
// maintaining the neighbor involution across the shared facet.
func (t *Triangulation) bindNeighbors(a types.CellHandle, fa int, b types.CellHandle, fb int) {
	t.setNeighbor(a, fa, b)
	t.setNeighbor(b, fb, a)
}
