package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/predicates"
	"github.com/notargets/tetremesh/types"
)

// twoTetFixture builds the canonical two-tet bipyramid sharing facet {1,2,3},
// the same fixture gocfd's BuildConnectivity test uses for a finite element
// mesh reader.
func twoTetFixture(t *testing.T) (*Triangulation, []types.VertexHandle) {
	t.Helper()
	positions := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 1, Z: 1},
	}
	cells := [][4]int{
		{0, 1, 2, 3},
		{1, 2, 3, 4},
	}
	tri, handles, err := BuildConnectivity(positions, cells, []types.SubdomainIndex{1, 1})
	require.NoError(t, err)
	return tri, handles
}

func TestBuildConnectivityReciprocalNeighbors(t *testing.T) {
	tri, _ := twoTetFixture(t)
	require.Equal(t, 5, tri.NumVertices())
	require.Equal(t, 2, tri.NumCells())

	facetCount := 0
	sharedFound := false
	for f := range tri.FiniteFacets() {
		facetCount++
		if !tri.CellNeighbor(f.Cell, f.Index).IsNil() {
			sharedFound = true
			mirror := tri.MirrorFacet(f)
			back := tri.MirrorFacet(mirror)
			assert.Equal(t, f, back)
		}
	}
	assert.Equal(t, 7, facetCount)
	assert.True(t, sharedFound)

	edgeCount := 0
	for range tri.FiniteEdges() {
		edgeCount++
	}
	assert.Equal(t, 9, edgeCount)

	assert.NoError(t, tri.IsValid(true, predicates.DefaultKernel{}))
}

func findInteriorFacet(t *testing.T, tri *Triangulation) Facet {
	t.Helper()
	for f := range tri.FiniteFacets() {
		if !tri.CellNeighbor(f.Cell, f.Index).IsNil() {
			return f
		}
	}
	t.Fatal("no interior facet found")
	return Facet{}
}

func TestFlip23Flip32RoundTrip(t *testing.T) {
	tri, handles := twoTetFixture(t)
	f := findInteriorFacet(t, tri)
	p := tri.CellVertices(f.Cell)[f.Index]
	mirror := tri.MirrorFacet(f)
	q := tri.CellVertices(mirror.Cell)[mirror.Index]

	created, err := tri.Flip23(f)
	require.NoError(t, err)
	assert.Equal(t, 3, tri.NumCells())
	for _, c := range created {
		assert.True(t, tri.AliveCell(c))
	}
	require.NoError(t, tri.IsValid(true, predicates.DefaultKernel{}))

	back, err := tri.Flip32(p, q)
	require.NoError(t, err)
	assert.Equal(t, 2, tri.NumCells())
	for _, c := range back {
		assert.True(t, tri.AliveCell(c))
	}
	assert.NoError(t, tri.IsValid(true, predicates.DefaultKernel{}))
	assert.Equal(t, 5, tri.NumVertices())
	_ = handles
}

func TestFlip32RejectsWrongRingSize(t *testing.T) {
	tri, handles := twoTetFixture(t)
	// (1,2) is shared by both tets: a ring of size 2, not 3.
	_, err := tri.Flip32(handles[1], handles[2])
	assert.Error(t, err)
}

func TestInsertOnEdgeSplitsEveryRingCell(t *testing.T) {
	tri, handles := twoTetFixture(t)
	ring := tri.EdgeRing(handles[1], handles[2])
	require.Len(t, ring, 2)

	nv, children := tri.InsertOnEdge(handles[1], handles[2], r3.Vec{X: 0.5, Y: 0.5, Z: 0}, types.Volume)
	assert.Len(t, children, 4)
	assert.Equal(t, 4, tri.NumCells())
	assert.True(t, tri.AliveVertex(nv))
	assert.NoError(t, tri.IsValid(true, predicates.DefaultKernel{}))

	for _, c := range children {
		assert.Equal(t, types.SubdomainIndex(1), tri.SubdomainIndex(c))
	}
}

func TestCollapseEdgeMergesRingAndRelabelsOthers(t *testing.T) {
	tri, handles := twoTetFixture(t)
	nv, _ := tri.InsertOnEdge(handles[1], handles[2], r3.Vec{X: 0.5, Y: 0.5, Z: 0}, types.Volume)

	before := tri.NumCells()
	err := tri.CollapseEdge(nv, handles[1])
	require.NoError(t, err)
	assert.False(t, tri.AliveVertex(nv))
	assert.Less(t, tri.NumCells(), before)
	assert.NoError(t, tri.IsValid(true, predicates.DefaultKernel{}))
}

func TestCollapseEdgeRejectsNonAdjacentVertices(t *testing.T) {
	tri, handles := twoTetFixture(t)
	err := tri.CollapseEdge(handles[0], handles[4])
	assert.Error(t, err)
}

func TestCollapseEdgeTransfersComplexTagsOntoTarget(t *testing.T) {
	tri, handles := twoTetFixture(t)
	nv, _ := tri.InsertOnEdge(handles[1], handles[2], r3.Vec{X: 0.5, Y: 0.5, Z: 0}, types.Volume)

	stale := types.NewEdgeKey(nv, handles[0])
	collapsed := types.NewEdgeKey(nv, handles[1])
	tri.MarkComplexEdge(stale)
	tri.MarkComplexEdge(collapsed)

	var taggedFacet types.FacetKey
	found := false
	for f := range tri.FiniteFacets() {
		fv := tri.FacetVertices(f)
		hasNv := fv[0] == nv || fv[1] == nv || fv[2] == nv
		hasTarget := fv[0] == handles[1] || fv[1] == handles[1] || fv[2] == handles[1]
		if hasNv && !hasTarget {
			taggedFacet = tri.FacetKey(f)
			found = true
			break
		}
	}
	require.True(t, found, "fixture must have a facet incident to nv but not the collapse target")
	tri.MarkComplexFacet(taggedFacet)

	relabeled := [3]types.VertexHandle{taggedFacet.A, taggedFacet.B, taggedFacet.C}
	for i, v := range relabeled {
		if v == nv {
			relabeled[i] = handles[1]
		}
	}
	wantFacet := types.NewFacetKey(relabeled[0], relabeled[1], relabeled[2])

	require.NoError(t, tri.CollapseEdge(nv, handles[1]))

	assert.False(t, tri.IsComplexEdge(stale), "stale key referencing the removed vertex must not linger")
	assert.False(t, tri.IsComplexEdge(collapsed), "the collapsed edge itself degenerates and must be dropped")
	assert.True(t, tri.IsComplexEdge(types.NewEdgeKey(handles[1], handles[0])), "tag must be carried onto the target")
	assert.True(t, tri.IsComplexFacet(wantFacet), "facet tag must be carried onto the target")
}

func TestCollapseEdgeCarriesCornerIdentityOntoTarget(t *testing.T) {
	tri, handles := twoTetFixture(t)
	nv, _ := tri.InsertOnEdge(handles[1], handles[2], r3.Vec{X: 0.5, Y: 0.5, Z: 0}, types.Volume)
	tri.MarkCorner(nv)
	id := tri.CornerID(nv)

	require.NoError(t, tri.CollapseEdge(nv, handles[1]))

	assert.True(t, tri.IsCorner(handles[1]))
	assert.Equal(t, id, tri.CornerID(handles[1]))
}

func TestInsertOnEdgeOnDomainBoundaryProducesNoDegenerateCell(t *testing.T) {
	tri, handles := twoTetFixture(t)
	// (1,2), (1,3) and (2,3) are the edges shared by both tets; every edge
	// of this fixture lies on the domain boundary, with an open,
	// non-ring-closing chain of incident cells.
	ring := tri.EdgeRing(handles[0], handles[1])
	require.Len(t, ring, 1)

	nv, children := tri.InsertOnEdge(handles[0], handles[1], r3.Vec{X: 0.5, Y: 0, Z: 0}, types.Volume)

	require.NotEmpty(t, children)
	for _, c := range children {
		verts := tri.CellVertices(c)
		assert.Greater(t, predicates.Orientation(
			tri.Position(verts[0]), tri.Position(verts[1]),
			tri.Position(verts[2]), tri.Position(verts[3]),
		), 0.0, "split cell %v must not be degenerate", c)
	}
	assert.True(t, tri.AliveVertex(nv))
	require.NoError(t, tri.IsValid(true, predicates.DefaultKernel{}))
}

func TestInsertInCellQuadruplesOneCell(t *testing.T) {
	tri, handles := twoTetFixture(t)
	var c0 types.CellHandle
	for c := range tri.FiniteCells() {
		c0 = c
		break
	}
	before := tri.NumCells()
	nv, children := tri.InsertInCell(c0, r3.Vec{X: 0.2, Y: 0.2, Z: 0.2}, types.Volume)
	assert.Len(t, children, 4)
	assert.Equal(t, before+3, tri.NumCells())
	assert.True(t, tri.AliveVertex(nv))
	assert.NoError(t, tri.IsValid(true, predicates.DefaultKernel{}))
	_ = handles
}

func TestComplexOverlayTagging(t *testing.T) {
	tri, handles := twoTetFixture(t)
	ek := types.NewEdgeKey(handles[0], handles[1])
	assert.False(t, tri.IsComplexEdge(ek))
	tri.MarkComplexEdge(ek)
	assert.True(t, tri.IsComplexEdge(ek))
	assert.Len(t, tri.ComplexEdgeKeys(), 1)
	tri.UnmarkComplexEdge(ek)
	assert.False(t, tri.IsComplexEdge(ek))
}

func TestMarkCornerAssignsStableIncrementingIDs(t *testing.T) {
	tri, handles := twoTetFixture(t)
	assert.Equal(t, 0, tri.CornerID(handles[0]))
	tri.MarkCorner(handles[0])
	tri.MarkCorner(handles[1])
	assert.Equal(t, 1, tri.CornerID(handles[0]))
	assert.Equal(t, 2, tri.CornerID(handles[1]))
	assert.True(t, tri.IsCorner(handles[0]))
	assert.Equal(t, types.Corner, tri.InDimension(handles[0]))

	// Re-marking an existing corner is a no-op.
	tri.MarkCorner(handles[0])
	assert.Equal(t, 1, tri.CornerID(handles[0]))
}

func TestStaleHandlePanics(t *testing.T) {
	tri, handles := twoTetFixture(t)
	var c0 types.CellHandle
	for c := range tri.FiniteCells() {
		c0 = c
		break
	}
	_, _ = tri.InsertInCell(c0, r3.Vec{X: 0.1, Y: 0.1, Z: 0.1}, types.Volume)
	assert.False(t, tri.AliveCell(c0))
	assert.Panics(t, func() { tri.CellVertices(c0) })
	_ = handles
}
