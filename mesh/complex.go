package mesh

import "github.com/notargets/tetremesh/types"

// IsComplexEdge reports whether ek is tagged as a complex (protected) edge:
// caller-constrained, or non-manifold with more than two incident
// subdomains.
func (t *Triangulation) IsComplexEdge(ek types.EdgeKey) bool {
	_, ok := t.complexEdges[ek]
	return ok
}

// MarkComplexEdge tags ek as a complex edge.
func (t *Triangulation) MarkComplexEdge(ek types.EdgeKey) {
	t.complexEdges[ek] = struct{}{}
}

// UnmarkComplexEdge removes ek's complex-edge tag, used when collapse or
// split deletes a tagged edge and when postprocessing drops a tag that only
// imaginary cells carry.
func (t *Triangulation) UnmarkComplexEdge(ek types.EdgeKey) {
	delete(t.complexEdges, ek)
}

// IsComplexFacet reports whether fk is tagged as a subdomain-boundary facet.
func (t *Triangulation) IsComplexFacet(fk types.FacetKey) bool {
	_, ok := t.complexFacets[fk]
	return ok
}

func (t *Triangulation) MarkComplexFacet(fk types.FacetKey) {
	t.complexFacets[fk] = struct{}{}
}

func (t *Triangulation) UnmarkComplexFacet(fk types.FacetKey) {
	delete(t.complexFacets, fk)
}

// IsCorner reports whether v carries a corner identity.
func (t *Triangulation) IsCorner(v types.VertexHandle) bool {
	return t.CornerID(v) != 0
}

// NumComplexEdges and NumComplexFacets report the size of the overlay.
func (t *Triangulation) NumComplexEdges() int  { return len(t.complexEdges) }
func (t *Triangulation) NumComplexFacets() int { return len(t.complexFacets) }

// ComplexEdgeKeys returns a snapshot of every complex edge key.
func (t *Triangulation) ComplexEdgeKeys() map[types.EdgeKey]struct{} {
	out := make(map[types.EdgeKey]struct{}, len(t.complexEdges))
	for k := range t.complexEdges {
		out[k] = struct{}{}
	}
	return out
}

// ComplexFacetKeys returns a snapshot of every complex facet key.
func (t *Triangulation) ComplexFacetKeys() map[types.FacetKey]struct{} {
	out := make(map[types.FacetKey]struct{}, len(t.complexFacets))
	for k := range t.complexFacets {
		out[k] = struct{}{}
	}
	return out
}
