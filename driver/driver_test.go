package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/predicates"
	"github.com/notargets/tetremesh/sizing"
	"github.com/notargets/tetremesh/types"
)

func twoTetFixture(t *testing.T) *mesh.Triangulation {
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
	tri, _, err := mesh.BuildConnectivity(positions, cells, []types.SubdomainIndex{1, 1})
	require.NoError(t, err)
	return tri
}

func TestInitializeTracksMaxSubdomainAndClassifiesVertices(t *testing.T) {
	tri := twoTetFixture(t)

	Initialize(tri, SelectAll, nil)

	assert.Equal(t, types.SubdomainIndex(1), tri.MaxSubdomainIndex())
	for v := range tri.FiniteVertices() {
		assert.NotEqual(t, types.Unclassified, tri.InDimension(v))
	}
}

func TestInitializeMarksNoCornersWithoutComplexEdges(t *testing.T) {
	tri := twoTetFixture(t)
	Initialize(tri, SelectAll, nil)
	// No constrained edges and a single subdomain: no complex edges, so no
	// vertex should be promoted to corner via the >2-incident-edges rule.
	for v := range tri.FiniteVertices() {
		assert.False(t, tri.IsCorner(v))
	}
}

func TestRemeshReturnsValidMeshAndStatus(t *testing.T) {
	tri := twoTetFixture(t)

	result, status, err := Remesh(tri, Config{
		Field:         sizing.Constant(0.5),
		MaxIterations: 3,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, []Status{StatusOK, StatusResolutionNotReached}, status)
	require.NoError(t, result.IsValid(true, predicates.DefaultKernel{}))

	for c := range result.FiniteCells() {
		assert.False(t, result.IsImaginary(c))
	}
}

func TestRemeshRejectsNilField(t *testing.T) {
	tri := twoTetFixture(t)

	_, _, err := Remesh(tri, Config{MaxIterations: 1})

	assert.Error(t, err)
}

func TestRemeshHonorsCancel(t *testing.T) {
	tri := twoTetFixture(t)
	calls := 0

	_, status, err := Remesh(tri, Config{
		Field:         sizing.Constant(0.5),
		MaxIterations: 10,
		Cancel: func() bool {
			calls++
			return true
		},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, status)
	assert.Equal(t, 1, calls)
}

func TestBuildSubdomainAdjacencyCoversPresentSubdomains(t *testing.T) {
	tri := twoTetFixture(t)
	Initialize(tri, SelectAll, nil)

	adj := BuildSubdomainAdjacency(tri)

	assert.Contains(t, adj.Subdomains(), types.SubdomainIndex(1))
}
