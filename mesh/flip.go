package mesh

import (
	"fmt"

	"github.com/notargets/tetremesh/types"
)

// neighborAcross returns the neighbor of cell opposite vertex v, and that
// neighbor's own local facet index pointing back at cell (-1 on boundary).
func (t *Triangulation) neighborAcross(cell types.CellHandle, v types.VertexHandle) (types.CellHandle, int) {
	idx := t.LocalIndex(cell, v)
	nb := t.CellNeighbor(cell, idx)
	if nb.IsNil() {
		return types.NilCell, -1
	}
	return nb, t.mustCell(nb).localFacetIndexForNeighbor(cell)
}

func (t *Triangulation) bindIfPresent(newCell types.CellHandle, via types.VertexHandle, oldNb types.CellHandle, oldBack int) {
	if oldNb.IsNil() {
		return
	}
	t.bindNeighbors(newCell, t.LocalIndex(newCell, via), oldNb, oldBack)
}

// Flip23 replaces the two cells sharing facet f with three cells hinged on
// the new edge joining their two apexes, the CGAL flip primitive that
// removes a facet from the triangulation.
func (t *Triangulation) Flip23(f Facet) ([3]types.CellHandle, error) {
	var zero [3]types.CellHandle
	c1 := f.Cell
	mirror := t.MirrorFacet(f)
	if mirror.Cell.IsNil() {
		return zero, fmt.Errorf("tetremesh: facet on domain boundary cannot be 2-3 flipped")
	}
	c2 := mirror.Cell

	tri := t.FacetVertices(f)
	a, b, c := tri[0], tri[1], tri[2]
	p := t.CellVertices(c1)[f.Index]
	q := t.CellVertices(c2)[mirror.Index]
	subdomain := t.SubdomainIndex(c1)

	n1a, b1a := t.neighborAcross(c1, a)
	n1b, b1b := t.neighborAcross(c1, b)
	n1c, b1c := t.neighborAcross(c1, c)
	n2a, b2a := t.neighborAcross(c2, a)
	n2b, b2b := t.neighborAcross(c2, b)
	n2c, b2c := t.neighborAcross(c2, c)

	t1 := t.addOrientedCell(a, b, p, q, subdomain)
	t2 := t.addOrientedCell(b, c, p, q, subdomain)
	t3 := t.addOrientedCell(c, a, p, q, subdomain)

	bindShared := func(x types.CellHandle, vx types.VertexHandle, y types.CellHandle, vy types.VertexHandle) {
		t.bindNeighbors(x, t.LocalIndex(x, vx), y, t.LocalIndex(y, vy))
	}
	bindShared(t1, a, t2, c)
	bindShared(t2, b, t3, a)
	bindShared(t3, c, t1, b)

	t.bindIfPresent(t2, q, n1a, b1a)
	t.bindIfPresent(t3, q, n1b, b1b)
	t.bindIfPresent(t1, q, n1c, b1c)
	t.bindIfPresent(t2, p, n2a, b2a)
	t.bindIfPresent(t3, p, n2b, b2b)
	t.bindIfPresent(t1, p, n2c, b2c)

	t.removeCell(c1)
	t.removeCell(c2)
	return [3]types.CellHandle{t1, t2, t3}, nil
}

// Flip32 replaces the three cells sharing edge (a,b) with two cells hinged on
// the facet joining their three wing vertices, the inverse of Flip23.
func (t *Triangulation) Flip32(a, b types.VertexHandle) ([2]types.CellHandle, error) {
	var zero [2]types.CellHandle
	ring := t.EdgeRing(a, b)
	if len(ring) != 3 {
		return zero, fmt.Errorf("tetremesh: edge %s-%s is shared by %d cells, not 3, cannot 3-2 flip", a, b, len(ring))
	}

	type ringInfo struct {
		wx, wy       types.VertexHandle
		nA, nB       types.CellHandle
		backA, backB int
	}
	infos := make([]ringInfo, 0, 3)
	wingSet := make(map[types.VertexHandle]bool, 3)
	for _, r := range ring {
		verts := t.CellVertices(r)
		var wx, wy types.VertexHandle
		found := 0
		for _, v := range verts {
			if v == a || v == b {
				continue
			}
			if found == 0 {
				wx = v
			} else {
				wy = v
			}
			found++
		}
		nA, backA := t.neighborAcross(r, a)
		nB, backB := t.neighborAcross(r, b)
		infos = append(infos, ringInfo{wx: wx, wy: wy, nA: nA, backA: backA, nB: nB, backB: backB})
		wingSet[wx] = true
		wingSet[wy] = true
	}
	if len(wingSet) != 3 {
		return zero, fmt.Errorf("tetremesh: edge %s-%s ring is not a single triangular fan, cannot 3-2 flip", a, b)
	}

	subdomain := t.SubdomainIndex(ring[0])
	// Any two wing vertices determine the new shared facet; picking them
	// from ring[0] and completing with the vertex absent from it gives all
	// three without needing a cyclic ring order.
	w0, w1 := infos[0].wx, infos[0].wy
	var w2 types.VertexHandle
	for v := range wingSet {
		if v != w0 && v != w1 {
			w2 = v
		}
	}

	ta := t.addOrientedCell(a, w0, w1, w2, subdomain)
	tb := t.addOrientedCell(b, w0, w1, w2, subdomain)
	t.bindNeighbors(ta, t.LocalIndex(ta, a), tb, t.LocalIndex(tb, b))

	for _, info := range infos {
		var wz types.VertexHandle
		switch {
		case info.wx != w0 && info.wy != w0:
			wz = w0
		case info.wx != w1 && info.wy != w1:
			wz = w1
		default:
			wz = w2
		}
		t.bindIfPresent(tb, wz, info.nA, info.backA)
		t.bindIfPresent(ta, wz, info.nB, info.backB)
	}

	for _, r := range ring {
		t.removeCell(r)
	}
	return [2]types.CellHandle{ta, tb}, nil
}
