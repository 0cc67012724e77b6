package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEdgeKeyIsOrderIndependent(t *testing.T) {
	v4 := VertexHandle{Index: 4, Generation: 0}
	v0 := VertexHandle{Index: 0, Generation: 0}

	assert.Equal(t, NewEdgeKey(v4, v0), NewEdgeKey(v0, v4))
	assert.Equal(t, v0, NewEdgeKey(v4, v0).A)
	assert.Equal(t, v4, NewEdgeKey(v4, v0).B)
}

func TestEdgeKeyOrderKeyIgnoresGeneration(t *testing.T) {
	a := NewEdgeKey(VertexHandle{Index: 1}, VertexHandle{Index: 7})
	b := NewEdgeKey(VertexHandle{Index: 1, Generation: 3}, VertexHandle{Index: 7, Generation: 9})

	assert.Equal(t, a.OrderKey(), b.OrderKey())
	assert.NotEqual(t, a, b)
}

func TestNewFacetKeySortsAllThreePermutations(t *testing.T) {
	v1 := VertexHandle{Index: 1}
	v2 := VertexHandle{Index: 2}
	v3 := VertexHandle{Index: 3}

	want := NewFacetKey(v1, v2, v3)
	assert.Equal(t, want, NewFacetKey(v3, v2, v1))
	assert.Equal(t, want, NewFacetKey(v2, v3, v1))
	assert.Equal(t, want, NewFacetKey(v3, v1, v2))
}

func TestHandleIsNil(t *testing.T) {
	assert.True(t, NilVertex.IsNil())
	assert.True(t, NilCell.IsNil())
	assert.False(t, (VertexHandle{Index: 0}).IsNil())
}
