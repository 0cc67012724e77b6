package mesh

import "github.com/notargets/tetremesh/types"

// facetVertexIndices[i] gives, in a fixed orientation-consistent order, the
// three cell-local vertex indices of the facet opposite local vertex i. This
// is the CGAL Triangulation_utils_3 vertex_triple_index table, the standard
// convention for "facet i of a tetrahedron cell".
var facetVertexIndices = [4][3]int{
	{1, 3, 2},
	{0, 2, 3},
	{0, 3, 1},
	{0, 1, 2},
}

// edgeLocalIndices enumerates the six local (i, j) vertex-index pairs of a
// tetrahedron's edges.
var edgeLocalIndices = EdgeLocalIndices

// EdgeLocalIndices is the exported form of a tetrahedron's six local edges,
// for callers outside this package that need to enumerate a cell's edges
// (the split operator's post-insertion requeue, for one).
var EdgeLocalIndices = [6][2]int{
	{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
}

// A facet's index equals the local index of the vertex opposite it, so
// facetVertexIndices needs no separate vertex-to-facet table.

type cellRecord struct {
	vertices       [4]types.VertexHandle
	neighbors      [4]types.CellHandle // NilCell means "boundary, no neighbor"
	subdomainIndex types.SubdomainIndex
	generation     uint32
	alive          bool
}

// vertexTripleIndex returns the cell-local vertex index of the j-th vertex
// (j in [0,3)) of the facet opposite local vertex i, following the fixed
// facetVertexIndices convention. It is the Go form of the collaborator
// operation `vertex_triple_index(i, j)` named in spec §6.
func vertexTripleIndex(i, j int) int {
	return facetVertexIndices[i][j]
}

// localVertexIndex returns the cell-local index of vertex v within cell c,
// or -1 if v is not a vertex of c.
func (c *cellRecord) localVertexIndex(v types.VertexHandle) int {
	for i, cv := range c.vertices {
		if cv == v {
			return i
		}
	}
	return -1
}

// localFacetIndexForNeighbor returns the local facet index at which c is
// adjacent to neighbor nb, or -1 if nb is not a neighbor of c.
func (c *cellRecord) localFacetIndexForNeighbor(nb types.CellHandle) int {
	for i, n := range c.neighbors {
		if n == nb {
			return i
		}
	}
	return -1
}
