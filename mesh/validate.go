package mesh

import (
	"fmt"

	"github.com/notargets/tetremesh/predicates"
)

// IsValid audits structural consistency: every cell has four distinct
// vertices, and the neighbor relation is a proper involution (if c is
// adjacent to nb across a facet, nb is adjacent to c across the same facet).
// When deep is true and kernel is non-nil, it additionally requires every
// cell to have strictly positive signed volume, catching orientation bugs a
// structural check alone would miss.
func (t *Triangulation) IsValid(deep bool, kernel predicates.Kernel) error {
	for c := range t.FiniteCells() {
		verts := t.CellVertices(c)
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				if verts[i] == verts[j] {
					return fmt.Errorf("tetremesh: cell %s has repeated vertex %s", c, verts[i])
				}
			}
		}
		for i := 0; i < 4; i++ {
			nb := t.CellNeighbor(c, i)
			if nb.IsNil() {
				continue
			}
			if !t.AliveCell(nb) {
				return fmt.Errorf("tetremesh: cell %s references dead neighbor %s", c, nb)
			}
			back := t.mustCell(nb).localFacetIndexForNeighbor(c)
			if back < 0 {
				return fmt.Errorf("tetremesh: neighbor involution broken between %s and %s", c, nb)
			}
			if t.FacetKey(Facet{Cell: c, Index: i}) != t.FacetKey(Facet{Cell: nb, Index: back}) {
				return fmt.Errorf("tetremesh: neighbors %s and %s do not agree on their shared facet", c, nb)
			}
		}
		if deep && kernel != nil {
			p0, p1, p2, p3 := t.Position(verts[0]), t.Position(verts[1]), t.Position(verts[2]), t.Position(verts[3])
			if kernel.Orientation(p0, p1, p2, p3) <= 0 {
				return fmt.Errorf("tetremesh: cell %s does not have positive orientation", c)
			}
		}
	}
	return nil
}
