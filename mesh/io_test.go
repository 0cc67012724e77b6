package mesh

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/tetremesh/predicates"
	"github.com/notargets/tetremesh/types"
)

func TestWriteMeshThenReadMeshRoundTrips(t *testing.T) {
	tri, _ := twoTetFixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteMesh(tri, &buf))

	readBack, _, err := ReadMesh(&buf)
	require.NoError(t, err)

	assert.Equal(t, tri.NumVertices(), readBack.NumVertices())
	assert.Equal(t, tri.NumCells(), readBack.NumCells())
	require.NoError(t, readBack.IsValid(true, predicates.DefaultKernel{}))
}

func TestWriteMeshPreservesVertexPositionsAgainstCellIndices(t *testing.T) {
	tri, _ := twoTetFixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteMesh(tri, &buf))
	readBack, _, err := ReadMesh(&buf)
	require.NoError(t, err)

	// Every cell must keep the same four corner positions after the round
	// trip, regardless of the order vertex lines happened to be written in
	// or which of a cell's two valid orientations addOrientedCell picked.
	origByPos := make(map[[4][3]float64]bool)
	for c := range tri.FiniteCells() {
		origByPos[cellPositionKey(tri, c)] = true
	}
	for c := range readBack.FiniteCells() {
		key := cellPositionKey(readBack, c)
		assert.True(t, origByPos[key], "cell %v's corner positions %v were not among the original cells'", c, key)
	}
}

func cellPositionKey(t *Triangulation, c types.CellHandle) [4][3]float64 {
	var key [4][3]float64
	for i, v := range t.CellVertices(c) {
		p := t.Position(v)
		key[i] = [3]float64{p.X, p.Y, p.Z}
	}
	sort.Slice(key[:], func(i, j int) bool {
		return key[i][0] < key[j][0] ||
			(key[i][0] == key[j][0] && key[i][1] < key[j][1]) ||
			(key[i][0] == key[j][0] && key[i][1] == key[j][1] && key[i][2] < key[j][2])
	})
	return key
}
