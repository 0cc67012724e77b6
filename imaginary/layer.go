// Package imaginary implements the scaffold layer described in the
// specification this engine implements: a ring of tagged tetrahedra wrapped
// around every real domain boundary facet, so operators never need a
// separate boundary code path.
package imaginary

import (
	"log"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/types"
)

// AddLayer wraps every current boundary facet of t with a fresh tetrahedron
// tagged with the reserved imaginary subdomain index, reflecting each
// facet's opposite vertex across the facet plane to place the new apex.
// It must run exactly once, before the remeshing loop starts.
func AddLayer(t *mesh.Triangulation) {
	imaginaryIndex := t.MaxSubdomainIndex() + 1
	t.SetImaginaryIndex(imaginaryIndex)
	if t.MaxSubdomainIndex() == 0 {
		log.Printf("tetremesh: imaginary layer: max subdomain index is 0, remeshing is likely to fail")
	}

	var boundary []mesh.Facet
	for f := range t.FiniteFacets() {
		if t.CellNeighbor(f.Cell, f.Index).IsNil() {
			boundary = append(boundary, f)
		}
	}

	newCells := make([]types.CellHandle, len(boundary))
	for i, f := range boundary {
		apexOld := t.CellVertices(f.Cell)[f.Index]
		reflected := reflectAcrossFacet(t, f, apexOld)
		nv := t.AddVertex(reflected, types.Volume)
		newCells[i] = t.AddCellOverFacet(f, nv, imaginaryIndex)
		// f now separates a real subdomain from the reserved imaginary one,
		// the same "different incident subdomain_index" condition Initialize
		// uses to tag interior subdomain boundaries.
		t.MarkComplexFacet(t.FacetKey(f))
		for _, v := range t.FacetVertices(f) {
			if t.InDimension(v) > types.Surface {
				t.SetInDimension(v, types.Surface)
			}
		}
	}

	type owner struct {
		cell  types.CellHandle
		index int
	}
	open := make(map[types.FacetKey]owner)
	for _, nc := range newCells {
		for local := 0; local < 4; local++ {
			if !t.CellNeighbor(nc, local).IsNil() {
				continue
			}
			key := t.FacetKey(mesh.Facet{Cell: nc, Index: local})
			if first, ok := open[key]; ok {
				t.BindFacets(mesh.Facet{Cell: nc, Index: local}, mesh.Facet{Cell: first.cell, Index: first.index})
				delete(open, key)
			} else {
				open[key] = owner{cell: nc, index: local}
			}
		}
	}
}

// reflectAcrossFacet mirrors apex across the plane of facet f.
func reflectAcrossFacet(t *mesh.Triangulation, f mesh.Facet, apex types.VertexHandle) r3.Vec {
	tri := t.FacetVertices(f)
	p0, p1, p2 := t.Position(tri[0]), t.Position(tri[1]), t.Position(tri[2])
	n := r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
	n = r3.Scale(1/r3.Norm(n), n)
	ap := t.Position(apex)
	dist := r3.Dot(r3.Sub(ap, p0), n)
	return r3.Sub(ap, r3.Scale(2*dist, n))
}

// RemoveFromComplex strips complex tags that only survive because of the
// imaginary layer: a complex facet or edge with every incident cell
// imaginary is no longer meaningful once the scaffold is stripped. It does
// not touch the triangulation itself; call RemoveScaffold after it to
// delete the imaginary cells.
func RemoveFromComplex(t *mesh.Triangulation) {
	for fk := range t.ComplexFacetKeys() {
		if allIncidentImaginary(t, fk) {
			t.UnmarkComplexFacet(fk)
		}
	}
	for ek := range t.ComplexEdgeKeys() {
		ring := t.EdgeRing(ek.A, ek.B)
		if len(ring) == 0 {
			continue
		}
		onlyImaginary := true
		for _, c := range ring {
			if !t.IsImaginary(c) {
				onlyImaginary = false
				break
			}
		}
		if onlyImaginary {
			t.UnmarkComplexEdge(ek)
		}
	}
}

func allIncidentImaginary(t *mesh.Triangulation, fk types.FacetKey) bool {
	ring := t.EdgeRing(fk.A, fk.B)
	for _, c := range ring {
		if t.LocalIndex(c, fk.C) < 0 {
			continue
		}
		if !t.IsImaginary(c) {
			return false
		}
	}
	return true
}

// RemoveScaffold deletes every imaginary cell from the triangulation
// outright, the Finalize-time step that returns the caller a mesh with no
// trace of the scaffold left. Reflected apex vertices that were only ever
// incident to imaginary cells are deleted along with them, rather than
// left behind as dangling, unreferenced vertices.
func RemoveScaffold(t *mesh.Triangulation) {
	t.RemoveCells(t.IsImaginary)
}
