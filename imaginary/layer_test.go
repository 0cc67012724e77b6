package imaginary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/predicates"
	"github.com/notargets/tetremesh/types"
)

func twoTetFixture(t *testing.T) (*mesh.Triangulation, []types.VertexHandle) {
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
	tri, handles, err := mesh.BuildConnectivity(positions, cells, []types.SubdomainIndex{1, 1})
	require.NoError(t, err)
	return tri, handles
}

func countBoundaryFacets(t *mesh.Triangulation) int {
	n := 0
	for f := range t.FiniteFacets() {
		if t.CellNeighbor(f.Cell, f.Index).IsNil() {
			n++
		}
	}
	return n
}

func TestAddLayerClosesEveryBoundaryFacet(t *testing.T) {
	tri, _ := twoTetFixture(t)
	var openFacets []mesh.Facet
	for f := range tri.FiniteFacets() {
		if tri.CellNeighbor(f.Cell, f.Index).IsNil() {
			openFacets = append(openFacets, f)
		}
	}
	boundaryBefore := countBoundaryFacets(tri)
	require.Greater(t, boundaryBefore, 0)

	AddLayer(tri)

	// Every cap has its own reflected apex, so the caps' outer facets stay
	// open; the facets that were on the domain boundary must all be closed.
	stillOpen := 0
	for _, f := range openFacets {
		if tri.CellNeighbor(f.Cell, f.Index).IsNil() {
			stillOpen++
		}
	}
	assert.Equal(t, 0, stillOpen)
	require.NoError(t, tri.IsValid(true, predicates.DefaultKernel{}))
}

func TestAddLayerTagsNewCellsImaginary(t *testing.T) {
	tri, _ := twoTetFixture(t)
	before := tri.NumCells()

	AddLayer(tri)

	imaginaryCount := 0
	for c := range tri.FiniteCells() {
		if tri.IsImaginary(c) {
			imaginaryCount++
		}
	}
	assert.Equal(t, tri.NumCells()-before, imaginaryCount)
}

func TestRemoveScaffoldDeletesAllImaginaryCells(t *testing.T) {
	tri, _ := twoTetFixture(t)
	AddLayer(tri)
	RemoveFromComplex(tri)

	RemoveScaffold(tri)

	for c := range tri.FiniteCells() {
		assert.False(t, tri.IsImaginary(c))
	}
	require.NoError(t, tri.IsValid(true, predicates.DefaultKernel{}))
}

func TestAddLayerMarksEveryDomainBoundaryFacetComplex(t *testing.T) {
	tri, _ := twoTetFixture(t)
	var boundaryKeys []types.FacetKey
	for f := range tri.FiniteFacets() {
		if tri.CellNeighbor(f.Cell, f.Index).IsNil() {
			boundaryKeys = append(boundaryKeys, tri.FacetKey(f))
		}
	}
	require.NotEmpty(t, boundaryKeys)

	AddLayer(tri)

	for _, fk := range boundaryKeys {
		assert.True(t, tri.IsComplexFacet(fk), "domain boundary facet %v must be tagged complex once it separates a real subdomain from the imaginary one", fk)
	}
}

func TestRemoveScaffoldDeletesUnreferencedReflectedApexVertices(t *testing.T) {
	tri, handles := twoTetFixture(t)
	before := tri.NumVertices()
	AddLayer(tri)
	RemoveFromComplex(tri)
	require.Greater(t, tri.NumVertices(), before, "AddLayer must have added reflected apex vertices")

	RemoveScaffold(tri)

	assert.Equal(t, before, tri.NumVertices(), "reflected apexes left with an empty star must be deleted alongside the scaffold")
	for _, h := range handles {
		assert.True(t, tri.AliveVertex(h), "original mesh vertices must survive scaffold removal")
	}
}
