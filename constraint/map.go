// Package constraint implements the caller-supplied edge-constraint property
// map named in the specification this engine implements: the collaborator
// initialization consults to decide which edges are complex regardless of
// subdomain adjacency.
package constraint

import "github.com/notargets/tetremesh/types"

// Map reports whether an edge was declared constrained by the caller.
type Map interface {
	Get(a, b types.VertexHandle) bool
}

// Set is a plain map-backed Map.
type Set map[types.EdgeKey]struct{}

// NewSet returns an empty constrained-edge set.
func NewSet() Set {
	return make(Set)
}

// Add declares the edge (a,b) constrained.
func (s Set) Add(a, b types.VertexHandle) {
	s[types.NewEdgeKey(a, b)] = struct{}{}
}

func (s Set) Get(a, b types.VertexHandle) bool {
	_, ok := s[types.NewEdgeKey(a, b)]
	return ok
}
