package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/predicates"
	"github.com/notargets/tetremesh/types"
)

// addOrientedCell allocates a cell over (v0,v1,v2,v3), swapping the last two
// vertices if needed so the stored cell has strictly positive signed volume.
// v0 keeps its slot either way, which callers rely on when it is a cone apex.
func (t *Triangulation) addOrientedCell(v0, v1, v2, v3 types.VertexHandle, subdomain types.SubdomainIndex) types.CellHandle {
	p0, p1, p2, p3 := t.Position(v0), t.Position(v1), t.Position(v2), t.Position(v3)
	if predicates.Orientation(p0, p1, p2, p3) < 0 {
		v2, v3 = v3, v2
	}
	return t.AddCell(v0, v1, v2, v3, subdomain)
}

// boundaryFacet is a facet of a star region as seen from the star cell it
// belongs to, along with the (possibly nil) neighbor lying outside the star.
type boundaryFacet struct {
	fromCell    types.CellHandle
	fromIndex   int
	verts       [3]types.VertexHandle
	outerNb     types.CellHandle
	outerNbBack int // outerNb's local facet index pointing back at fromCell, or -1
}

// starRetriangulate replaces every cell in star with a cone of new cells
// joining apex to each facet of star's outer boundary, inheriting each new
// cell's subdomain from whichever star cell contributed that boundary facet.
// It requires star's union to be a closed topological ball, which holds for
// every caller in this package: a single cell, two cells sharing a facet, or
// the full ring of cells sharing an edge.
//
// edgeEndpoints, when both set, is the edge being split by apex (the
// InsertOnEdge case): apex lies on the segment between them, so any outer
// boundary facet that itself contains both endpoints would cone into a
// degenerate, collinear cell. Such a facet only arises at a domain-boundary
// edge, where the outermost imaginary cap's far facet has no neighbor to
// share it with; its other two facets (each containing just one endpoint)
// already get coned normally into the two correctly split cap halves, so
// dropping the collinear one leaves no gap.
func (t *Triangulation) starRetriangulate(star []types.CellHandle, apex types.VertexHandle, edgeEndpoints ...types.VertexHandle) []types.CellHandle {
	inStar := make(map[types.CellHandle]bool, len(star))
	for _, c := range star {
		inStar[c] = true
	}
	var skipA, skipB types.VertexHandle
	skipEdge := len(edgeEndpoints) == 2
	if skipEdge {
		skipA, skipB = edgeEndpoints[0], edgeEndpoints[1]
	}

	var boundary []boundaryFacet
	for _, c := range star {
		rec := t.mustCell(c)
		for i := 0; i < 4; i++ {
			nb := rec.neighbors[i]
			if inStar[nb] {
				continue
			}
			verts := t.FacetVertices(Facet{Cell: c, Index: i})
			if skipEdge && containsBoth(verts, skipA, skipB) {
				continue
			}
			bf := boundaryFacet{
				fromCell:  c,
				fromIndex: i,
				verts:     verts,
				outerNb:   nb,
			}
			if !nb.IsNil() {
				bf.outerNbBack = t.mustCell(nb).localFacetIndexForNeighbor(c)
			} else {
				bf.outerNbBack = -1
			}
			boundary = append(boundary, bf)
		}
	}

	newCells := make([]types.CellHandle, len(boundary))
	sideFacets := make(map[types.FacetKey][2]struct {
		cell  types.CellHandle
		index int
	})
	sideCount := make(map[types.FacetKey]int)

	for bi, bf := range boundary {
		subdomain := t.SubdomainIndex(bf.fromCell)
		nc := t.addOrientedCell(apex, bf.verts[0], bf.verts[1], bf.verts[2], subdomain)
		newCells[bi] = nc

		if !bf.outerNb.IsNil() {
			t.bindNeighbors(nc, 0, bf.outerNb, bf.outerNbBack)
		}

		for local := 1; local < 4; local++ {
			verts := t.FacetVertices(Facet{Cell: nc, Index: local})
			key := types.NewFacetKey(verts[0], verts[1], verts[2])
			entry := sideFacets[key]
			n := sideCount[key]
			if n < 2 {
				entry[n] = struct {
					cell  types.CellHandle
					index int
				}{nc, local}
				sideFacets[key] = entry
				sideCount[key] = n + 1
			}
		}
	}

	for key, n := range sideCount {
		if n != 2 {
			continue
		}
		pair := sideFacets[key]
		t.bindNeighbors(pair[0].cell, pair[0].index, pair[1].cell, pair[1].index)
	}

	for _, c := range star {
		t.removeCell(c)
	}
	return newCells
}

// InsertInCell subdivides cell c into four tetrahedra meeting at a new vertex
// at pos, the CGAL insert_in_cell primitive.
func (t *Triangulation) InsertInCell(c types.CellHandle, pos r3.Vec, dim types.Dimension) (types.VertexHandle, []types.CellHandle) {
	nv := t.AddVertex(pos, dim)
	children := t.starRetriangulate([]types.CellHandle{c}, nv)
	return nv, children
}

// InsertOnFacet subdivides the one or two cells incident to f into three (on
// the domain boundary) or six (interior) tetrahedra meeting at a new vertex
// at pos, the CGAL insert_in_facet primitive.
func (t *Triangulation) InsertOnFacet(f Facet, pos r3.Vec, dim types.Dimension) (types.VertexHandle, []types.CellHandle) {
	star := []types.CellHandle{f.Cell}
	mirror := t.MirrorFacet(f)
	if !mirror.Cell.IsNil() {
		star = append(star, mirror.Cell)
	}
	onFacet := t.FacetKey(f)
	nv := t.AddVertex(pos, dim)
	children := t.starRetriangulate(star, nv)
	if mirror.Cell.IsNil() {
		// On the domain boundary f is itself an outer facet of the star, and
		// its cone to nv (which lies on f) is flat; remove that one cell.
		flat := types.NilCell
		kept := children[:0]
		for _, c := range children {
			if t.FacetKey(Facet{Cell: c, Index: 0}) == onFacet {
				flat = c
				continue
			}
			kept = append(kept, c)
		}
		t.RemoveCells(func(c types.CellHandle) bool { return c == flat })
		children = kept
	}
	return nv, children
}

// InsertOnEdge subdivides every cell in the ring sharing edge (a,b) into two,
// meeting at a new vertex at pos, the CGAL insert_in_edge primitive. This is
// the primitive the split operator drives.
func (t *Triangulation) InsertOnEdge(a, b types.VertexHandle, pos r3.Vec, dim types.Dimension) (types.VertexHandle, []types.CellHandle) {
	star := t.EdgeRing(a, b)
	nv := t.AddVertex(pos, dim)
	children := t.starRetriangulate(star, nv, a, b)
	return nv, children
}

// containsBoth reports whether a facet's vertex triple contains both a and b.
func containsBoth(verts [3]types.VertexHandle, a, b types.VertexHandle) bool {
	hasA, hasB := false, false
	for _, v := range verts {
		hasA = hasA || v == a
		hasB = hasB || v == b
	}
	return hasA && hasB
}
