package types

import "fmt"

// EdgeKey is the order-independent identity of an edge: its two endpoint
// handles, stored with the smaller index first so that an edge between
// handles 4 and 0 is always keyed the same way regardless of which side it
// was discovered from. It is a plain comparable struct rather than a single
// packed integer (unlike a bare vertex index, a VertexHandle also carries a
// generation, so it does not fit in the 32+32 packing the index-only case
// allows) but every edge still carries its own packed, generation-free tie
// break via OrderKey, used to give the operator priority queues a stable
// total order among edges of equal squared length.
type EdgeKey struct {
	A, B VertexHandle
}

// NewEdgeKey returns the canonical key for the edge between v1 and v2.
func NewEdgeKey(v1, v2 VertexHandle) EdgeKey {
	if handleLess(v1, v2) {
		return EdgeKey{A: v1, B: v2}
	}
	return EdgeKey{A: v2, B: v1}
}

func handleLess(a, b VertexHandle) bool {
	if a.Index != b.Index {
		return a.Index < b.Index
	}
	return a.Generation < b.Generation
}

// OrderKey packs the two endpoint indices into a single uint64, smaller index
// in the low word, the way gocfd's types.EdgeKey packs a pair of int vertex
// indices into a uint64 hash. It ignores generation, so it is only a tie
// break among edges known to be simultaneously live, never a map key.
func (k EdgeKey) OrderKey() uint64 {
	i1, i2 := uint64(uint32(k.A.Index)), uint64(uint32(k.B.Index))
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	return i1 + i2<<32
}

func (k EdgeKey) String() string {
	return fmt.Sprintf("%s-%s", k.A, k.B)
}

// FacetKey is the order-independent identity of a facet: its three vertex
// handles, sorted. Used to key the complex-facet overlay.
type FacetKey struct {
	A, B, C VertexHandle
}

// NewFacetKey returns the canonical key for the facet spanned by three
// vertex handles, sorted into a fixed order.
func NewFacetKey(v1, v2, v3 VertexHandle) FacetKey {
	vs := [3]VertexHandle{v1, v2, v3}
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && handleLess(vs[j], vs[j-1]); j-- {
			vs[j], vs[j-1] = vs[j-1], vs[j]
		}
	}
	return FacetKey{A: vs[0], B: vs[1], C: vs[2]}
}

func (k FacetKey) String() string {
	return fmt.Sprintf("%s-%s-%s", k.A, k.B, k.C)
}
