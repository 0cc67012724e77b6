package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/types"
)

type vertexRecord struct {
	position    r3.Vec
	inDimension types.Dimension
	cell        types.CellHandle // back-index to one incident cell, for local traversal
	cornerID    int              // 0 if not a corner, else a stable 1-based id
	generation  uint32
	alive       bool
}
