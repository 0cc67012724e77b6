// Package types holds the small, dependency-free value types shared by the
// mesh, predicates, ops and driver packages: arena handles and the
// edge/facet keys used to key the complex overlay and the operator queues.
package types

import "fmt"

// VertexHandle is an arena index into a Triangulation's vertex slice, paired
// implicitly with a generation check performed by the owning Triangulation.
type VertexHandle struct {
	Index      int32
	Generation uint32
}

// CellHandle is an arena index into a Triangulation's cell slice.
type CellHandle struct {
	Index      int32
	Generation uint32
}

// NilVertex is the never-valid vertex handle (Index -1). It is not the zero
// value: Index 0 names a real arena slot.
var NilVertex = VertexHandle{Index: -1}

// NilCell is the never-valid cell handle (Index -1), likewise not the zero
// value.
var NilCell = CellHandle{Index: -1}

func (v VertexHandle) IsNil() bool { return v.Index < 0 }
func (c CellHandle) IsNil() bool   { return c.Index < 0 }

func (v VertexHandle) String() string {
	return fmt.Sprintf("V%d.%d", v.Index, v.Generation)
}

func (c CellHandle) String() string {
	return fmt.Sprintf("C%d.%d", c.Index, c.Generation)
}
