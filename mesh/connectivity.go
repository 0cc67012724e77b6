package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/types"
)

// BuildConnectivity constructs a Triangulation from a raw vertex list and a
// list of per-cell four-vertex-index tuples, deriving all neighbor
// adjacency from shared facets. It mirrors the sorted-face-key matching
// BuildConnectivity of a finite element mesh reader: every facet is keyed
// by its three vertex indices, and a facet seen twice binds its two owning
// cells together; a facet seen once is left on the domain boundary.
func BuildConnectivity(positions []r3.Vec, cellVertexIndices [][4]int, subdomains []types.SubdomainIndex) (*Triangulation, []types.VertexHandle, error) {
	t := New()
	handles := make([]types.VertexHandle, len(positions))
	for i, p := range positions {
		handles[i] = t.AddVertex(p, types.Unclassified)
	}

	cellHandles := make([]types.CellHandle, len(cellVertexIndices))
	for ci, idx := range cellVertexIndices {
		for _, vi := range idx {
			if vi < 0 || vi >= len(handles) {
				return nil, nil, fmt.Errorf("tetremesh: cell %d references out-of-range vertex index %d", ci, vi)
			}
		}
		si := types.NoSubdomain
		if subdomains != nil {
			si = subdomains[ci]
		}
		if si > t.maxSubdomainIndex {
			t.maxSubdomainIndex = si
		}
		cellHandles[ci] = t.addOrientedCell(handles[idx[0]], handles[idx[1]], handles[idx[2]], handles[idx[3]], si)
	}

	type owner struct {
		cell  types.CellHandle
		local int
	}
	facetOwner := make(map[types.FacetKey]owner)
	for _, ch := range cellHandles {
		for local := 0; local < 4; local++ {
			key := t.FacetKey(Facet{Cell: ch, Index: local})
			if first, ok := facetOwner[key]; ok {
				t.bindNeighbors(ch, local, first.cell, first.local)
				delete(facetOwner, key)
			} else {
				facetOwner[key] = owner{cell: ch, local: local}
			}
		}
	}
	return t, handles, nil
}
