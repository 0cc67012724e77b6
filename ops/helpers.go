package ops

import (
	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/types"
)

// allImaginary reports whether every cell in a ring is tagged imaginary,
// the "edges between two imaginary cells only" skip condition of §4.4/§4.5.
func allImaginary(t *mesh.Triangulation, ring []types.CellHandle) bool {
	for _, c := range ring {
		if !t.IsImaginary(c) {
			return false
		}
	}
	return len(ring) > 0
}

// edgeOnComplexFacet reports whether edge (a,b) is an edge of any complex
// facet, i.e. whether it lies on a subdomain boundary.
func edgeOnComplexFacet(t *mesh.Triangulation, a, b types.VertexHandle) bool {
	for _, c := range t.EdgeRing(a, b) {
		la, lb := t.LocalIndex(c, a), t.LocalIndex(c, b)
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

// incidentSubdomains returns the subdomain set of a vertex's full star, a
// small readability wrapper over Triangulation.IncidentSubdomains.
func incidentSubdomains(t *mesh.Triangulation, v types.VertexHandle) map[types.SubdomainIndex]struct{} {
	return t.IncidentSubdomains(t.VertexStar(v))
}
