// Package mesh implements the decorated tetrahedral triangulation that every
// remeshing operator reads and mutates: an arena of vertices and cells with
// per-element tags, a complex overlay, and the local surgery primitives
// (insertion, removal, 2-3/3-2 flips) that the split, collapse and flip
// operators build their policies on top of.
//
// Unbounded exterior is represented by a nil neighbor-cell reference rather
// than a dedicated infinite vertex: every cell stored in the arena is finite,
// and a facet lies on the domain boundary exactly when its neighbor slot is
// NilCell. This is a deliberate simplification of the classical
// point-at-infinity convention (see DESIGN.md); nothing in this package or
// its callers ever needs to query an infinite vertex's position or
// dimension, so a sentinel vertex would only add bookkeeping.
package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/types"
)

// Triangulation is the shared in-memory structure every operator acts on.
type Triangulation struct {
	vertices []vertexRecord
	cells    []cellRecord

	freeVertices []int32
	freeCells    []int32

	maxSubdomainIndex types.SubdomainIndex
	imaginaryIndex    types.SubdomainIndex
	nextCornerID      int

	complexEdges  map[types.EdgeKey]struct{}
	complexFacets map[types.FacetKey]struct{}
}

// New returns an empty Triangulation.
func New() *Triangulation {
	return &Triangulation{
		complexEdges:  make(map[types.EdgeKey]struct{}),
		complexFacets: make(map[types.FacetKey]struct{}),
	}
}

// NumVertices and NumCells report the number of live elements.
func (t *Triangulation) NumVertices() int {
	return len(t.vertices) - len(t.freeVertices)
}

func (t *Triangulation) NumCells() int {
	return len(t.cells) - len(t.freeCells)
}

// AddVertex allocates a new vertex at the given position and dimension,
// returning a handle stable until the vertex is removed.
func (t *Triangulation) AddVertex(pos r3.Vec, dim types.Dimension) types.VertexHandle {
	rec := vertexRecord{position: pos, inDimension: dim, cell: types.NilCell, alive: true}
	if n := len(t.freeVertices); n > 0 {
		idx := t.freeVertices[n-1]
		t.freeVertices = t.freeVertices[:n-1]
		rec.generation = t.vertices[idx].generation + 1
		t.vertices[idx] = rec
		return types.VertexHandle{Index: idx, Generation: rec.generation}
	}
	t.vertices = append(t.vertices, rec)
	return types.VertexHandle{Index: int32(len(t.vertices) - 1), Generation: 0}
}

// removeVertex frees the vertex slot, bumping its generation so any held
// handle is invalidated.
func (t *Triangulation) removeVertex(v types.VertexHandle) {
	rec := &t.vertices[v.Index]
	rec.alive = false
	rec.generation++
	t.freeVertices = append(t.freeVertices, v.Index)
}

// AddCell allocates a new tetrahedron cell over four vertices with no
// neighbors wired; callers (BuildConnectivity or an operator) are
// responsible for neighbor bookkeeping.
func (t *Triangulation) AddCell(v0, v1, v2, v3 types.VertexHandle, subdomain types.SubdomainIndex) types.CellHandle {
	rec := cellRecord{
		vertices:       [4]types.VertexHandle{v0, v1, v2, v3},
		neighbors:      [4]types.CellHandle{types.NilCell, types.NilCell, types.NilCell, types.NilCell},
		subdomainIndex: subdomain,
		alive:          true,
	}
	var h types.CellHandle
	if n := len(t.freeCells); n > 0 {
		idx := t.freeCells[n-1]
		t.freeCells = t.freeCells[:n-1]
		rec.generation = t.cells[idx].generation + 1
		t.cells[idx] = rec
		h = types.CellHandle{Index: idx, Generation: rec.generation}
	} else {
		t.cells = append(t.cells, rec)
		h = types.CellHandle{Index: int32(len(t.cells) - 1), Generation: 0}
	}
	for _, v := range rec.vertices {
		t.vertices[v.Index].cell = h
	}
	return h
}

func (t *Triangulation) removeCell(c types.CellHandle) {
	rec := &t.cells[c.Index]
	rec.alive = false
	rec.generation++
	t.freeCells = append(t.freeCells, c.Index)
}

// RemoveIsolatedVertex deletes v if no live cell is incident to it, the
// cleanup RemoveScaffold needs once every imaginary cell touching a
// reflected apex vertex is gone. It is a no-op, returning false, if v still
// has a star.
func (t *Triangulation) RemoveIsolatedVertex(v types.VertexHandle) bool {
	if len(t.VertexStar(v)) > 0 {
		return false
	}
	t.removeVertex(v)
	return true
}

// AliveVertex and AliveCell report whether a handle still refers to a live
// element (correct index, matching generation).
func (t *Triangulation) AliveVertex(v types.VertexHandle) bool {
	if v.Index < 0 || int(v.Index) >= len(t.vertices) {
		return false
	}
	r := &t.vertices[v.Index]
	return r.alive && r.generation == v.Generation
}

func (t *Triangulation) AliveCell(c types.CellHandle) bool {
	if c.Index < 0 || int(c.Index) >= len(t.cells) {
		return false
	}
	r := &t.cells[c.Index]
	return r.alive && r.generation == c.Generation
}

func (t *Triangulation) mustVertex(v types.VertexHandle) *vertexRecord {
	if !t.AliveVertex(v) {
		panic(fmt.Sprintf("tetremesh: use of stale vertex handle %s", v))
	}
	return &t.vertices[v.Index]
}

func (t *Triangulation) mustCell(c types.CellHandle) *cellRecord {
	if !t.AliveCell(c) {
		panic(fmt.Sprintf("tetremesh: use of stale cell handle %s", c))
	}
	return &t.cells[c.Index]
}

// Position returns a vertex's location in R^3.
func (t *Triangulation) Position(v types.VertexHandle) r3.Vec {
	return t.mustVertex(v).position
}

// SetPosition relocates a vertex, used by the smooth operator.
func (t *Triangulation) SetPosition(v types.VertexHandle, p r3.Vec) {
	t.mustVertex(v).position = p
}

// InDimension returns a vertex's classification dimension.
func (t *Triangulation) InDimension(v types.VertexHandle) types.Dimension {
	return t.mustVertex(v).inDimension
}

// SetInDimension sets a vertex's classification dimension.
func (t *Triangulation) SetInDimension(v types.VertexHandle, d types.Dimension) {
	t.mustVertex(v).inDimension = d
}

// CornerID returns a corner's stable 1-based identity, or 0 if v is not a
// corner.
func (t *Triangulation) CornerID(v types.VertexHandle) int {
	return t.mustVertex(v).cornerID
}

// MarkCorner assigns v the next corner id and sets its dimension to Corner.
func (t *Triangulation) MarkCorner(v types.VertexHandle) {
	rec := t.mustVertex(v)
	if rec.cornerID != 0 {
		return
	}
	t.nextCornerID++
	rec.cornerID = t.nextCornerID
	rec.inDimension = types.Corner
}

// UnmarkCorner clears a vertex's corner identity without changing its
// dimension.
func (t *Triangulation) UnmarkCorner(v types.VertexHandle) {
	t.mustVertex(v).cornerID = 0
}

// IncidentCell returns some cell incident to v, for local traversal.
func (t *Triangulation) IncidentCell(v types.VertexHandle) types.CellHandle {
	return t.mustVertex(v).cell
}

// CellVertices returns the four vertex handles of a cell, in local order.
func (t *Triangulation) CellVertices(c types.CellHandle) [4]types.VertexHandle {
	return t.mustCell(c).vertices
}

// CellNeighbor returns the neighbor across facet i (opposite local vertex i),
// or NilCell on the domain boundary.
func (t *Triangulation) CellNeighbor(c types.CellHandle, i int) types.CellHandle {
	return t.mustCell(c).neighbors[i]
}

// SubdomainIndex returns a cell's material region tag.
func (t *Triangulation) SubdomainIndex(c types.CellHandle) types.SubdomainIndex {
	return t.mustCell(c).subdomainIndex
}

// SetSubdomainIndex retags a cell's material region, used by split/collapse
// to propagate a parent's tag onto its children.
func (t *Triangulation) SetSubdomainIndex(c types.CellHandle, si types.SubdomainIndex) {
	t.mustCell(c).subdomainIndex = si
}

// IsImaginary reports whether c carries the reserved imaginary_index tag.
func (t *Triangulation) IsImaginary(c types.CellHandle) bool {
	return t.mustCell(c).subdomainIndex == t.imaginaryIndex
}

// ImaginaryIndex returns the reserved subdomain index assigned to the
// imaginary layer at initialization (max_si + 1).
func (t *Triangulation) ImaginaryIndex() types.SubdomainIndex {
	return t.imaginaryIndex
}

// SetImaginaryIndex is called once by the imaginary-layer package during
// initialization.
func (t *Triangulation) SetImaginaryIndex(si types.SubdomainIndex) {
	t.imaginaryIndex = si
}

// MaxSubdomainIndex returns the highest subdomain index observed during
// initialization.
func (t *Triangulation) MaxSubdomainIndex() types.SubdomainIndex {
	return t.maxSubdomainIndex
}

func (t *Triangulation) SetMaxSubdomainIndex(si types.SubdomainIndex) {
	t.maxSubdomainIndex = si
}

// LocalIndex exposes cellRecord.localVertexIndex to other files in this
// package's public surface for use by ops via Triangulation methods.
func (t *Triangulation) LocalIndex(c types.CellHandle, v types.VertexHandle) int {
	return t.mustCell(c).localVertexIndex(v)
}

// VertexTripleIndex returns the cell-local vertex index of the j-th vertex
// of the facet opposite local vertex i.
func (t *Triangulation) VertexTripleIndex(i, j int) int {
	return vertexTripleIndex(i, j)
}
