package mesh

import "github.com/notargets/tetremesh/types"

// AddCellOverFacet materializes a new cell on the far side of a boundary
// facet f, joining it to apex. f must currently have no neighbor. This is
// the primitive the imaginary layer builds on: apex is a fresh scaffold
// vertex, and the new cell is bound back into f, leaving its other three
// facets open for the layer builder to stitch to neighboring scaffold cells.
func (t *Triangulation) AddCellOverFacet(f Facet, apex types.VertexHandle, subdomain types.SubdomainIndex) types.CellHandle {
	if !t.CellNeighbor(f.Cell, f.Index).IsNil() {
		panic("tetremesh: AddCellOverFacet requires a boundary facet")
	}
	tri := t.FacetVertices(f)
	nc := t.addOrientedCell(apex, tri[0], tri[1], tri[2], subdomain)
	t.bindNeighbors(nc, t.LocalIndex(nc, apex), f.Cell, f.Index)
	return nc
}

// BindFacets glues two boundary facets together across their shared vertex
// triple. Used by the imaginary-layer package once every scaffold cell has
// been created, to stitch adjacent scaffold cells to each other.
func (t *Triangulation) BindFacets(a, b Facet) {
	t.bindNeighbors(a.Cell, a.Index, b.Cell, b.Index)
}

// RemoveCell deletes a cell outright, clearing any neighbor's back-reference
// to it so survivors are left with a boundary facet in its place. Used to
// strip the imaginary layer's scaffold tets once a remeshing run completes.
func (t *Triangulation) RemoveCell(c types.CellHandle) {
	rec := t.mustCell(c)
	for i := 0; i < 4; i++ {
		nb := rec.neighbors[i]
		if nb.IsNil() {
			continue
		}
		nbRec := t.mustCell(nb)
		if idx := nbRec.localFacetIndexForNeighbor(c); idx >= 0 {
			nbRec.neighbors[idx] = types.NilCell
		}
	}
	t.removeCell(c)
}

// RemoveCells deletes every cell matching doomed in one batch, the bulk
// counterpart RemoveScaffold drives. A plain per-cell loop of RemoveCell
// calls would leave a vertex's incident-cell back-pointer dangling whenever
// it happened to reference one of the removed cells even though the vertex
// keeps other live cells, since nothing recreates a cell there to refresh
// it the way starRetriangulate does for an insertion. This repoints
// any such vertex at a surviving cell before removal, and deletes any
// vertex whose star is empty once removal is done.
func (t *Triangulation) RemoveCells(doomed func(types.CellHandle) bool) {
	var condemned []types.CellHandle
	touched := make(map[types.VertexHandle]bool)
	for c := range t.FiniteCells() {
		if !doomed(c) {
			continue
		}
		condemned = append(condemned, c)
		for _, v := range t.CellVertices(c) {
			touched[v] = true
		}
	}
	condemnedSet := make(map[types.CellHandle]bool, len(condemned))
	for _, c := range condemned {
		condemnedSet[c] = true
	}

	for v := range touched {
		if !condemnedSet[t.mustVertex(v).cell] {
			continue
		}
		survivor := types.NilCell
		for _, c := range t.VertexStar(v) {
			if !condemnedSet[c] {
				survivor = c
				break
			}
		}
		t.mustVertex(v).cell = survivor
	}

	for _, c := range condemned {
		t.RemoveCell(c)
	}
	for v := range touched {
		t.RemoveIsolatedVertex(v)
	}
}
