package mesh

import (
	"fmt"

	"github.com/notargets/tetremesh/types"
)

// CollapseEdge merges v into target, the CGAL collapse-edge primitive
// underlying the collapse operator. Every cell in the ring shared by (v,
// target) degenerates and is removed; every other cell incident to v is
// relabeled in place, keeping its neighbors and facets untouched. It is the
// specialization of "remove a vertex by retriangulating its star" that this
// engine actually needs: the collapse operator only ever removes v by
// merging it onto an edge-adjacent survivor, never into an arbitrary
// star retriangulation.
func (t *Triangulation) CollapseEdge(v, target types.VertexHandle) error {
	ring := t.EdgeRing(v, target)
	if len(ring) == 0 {
		return fmt.Errorf("tetremesh: %s and %s do not share an edge", v, target)
	}
	star := t.VertexStar(v)
	inRing := make(map[types.CellHandle]bool, len(ring))
	for _, r := range ring {
		inRing[r] = true
	}

	t.transferIncidentTags(v, target, star)

	type outerRewire struct {
		nv, nt         types.CellHandle
		nvBack, ntBack int
	}
	rewrites := make([]outerRewire, 0, len(ring))
	for _, r := range ring {
		iv := t.LocalIndex(r, v)
		it := t.LocalIndex(r, target)
		nv := t.CellNeighbor(r, iv)
		nt := t.CellNeighbor(r, it)
		rw := outerRewire{nv: nv, nt: nt, nvBack: -1, ntBack: -1}
		if !nv.IsNil() {
			rw.nvBack = t.mustCell(nv).localFacetIndexForNeighbor(r)
		}
		if !nt.IsNil() {
			rw.ntBack = t.mustCell(nt).localFacetIndexForNeighbor(r)
		}
		rewrites = append(rewrites, rw)
	}

	var lastOther types.CellHandle
	for _, c := range star {
		if inRing[c] {
			continue
		}
		rec := t.mustCell(c)
		rec.vertices[rec.localVertexIndex(v)] = target
		lastOther = c
	}
	if !lastOther.IsNil() {
		t.mustVertex(target).cell = lastOther
	}

	for _, rw := range rewrites {
		switch {
		case rw.nv.IsNil() && rw.nt.IsNil():
		case rw.nv.IsNil():
			t.setNeighbor(rw.nt, rw.ntBack, types.NilCell)
		case rw.nt.IsNil():
			t.setNeighbor(rw.nv, rw.nvBack, types.NilCell)
		default:
			t.bindNeighbors(rw.nv, rw.nvBack, rw.nt, rw.ntBack)
		}
	}

	for _, r := range ring {
		t.removeCell(r)
	}
	t.removeVertex(v)
	return nil
}

// transferIncidentTags rewrites every complex-edge and complex-facet key
// incident to v onto target before v is relabeled away, keeping the §3
// invariant that the complex overlay stays consistent with the live vertex
// set. A key that also touches target lies entirely inside the collapsing
// ring and degenerates along with it, so it is dropped instead of rewritten.
// v's corner identity, if any, is carried onto target when target does not
// already have one of its own.
func (t *Triangulation) transferIncidentTags(v, target types.VertexHandle, star []types.CellHandle) {
	if id := t.mustVertex(v).cornerID; id != 0 {
		tv := t.mustVertex(target)
		if tv.cornerID == 0 {
			tv.cornerID = id
			tv.inDimension = types.Corner
		}
	}

	for _, c := range star {
		rec := t.mustCell(c)
		lv := rec.localVertexIndex(v)
		for i := 0; i < 4; i++ {
			if i == lv {
				continue
			}
			u := rec.vertices[i]
			ek := types.NewEdgeKey(v, u)
			if !t.IsComplexEdge(ek) {
				continue
			}
			t.UnmarkComplexEdge(ek)
			if u != target {
				t.MarkComplexEdge(types.NewEdgeKey(target, u))
			}
		}
		for i := 0; i < 4; i++ {
			if i == lv {
				continue
			}
			fv := t.FacetVertices(Facet{Cell: c, Index: i})
			fk := types.NewFacetKey(fv[0], fv[1], fv[2])
			if !t.IsComplexFacet(fk) {
				continue
			}
			t.UnmarkComplexFacet(fk)
			if fv[0] == target || fv[1] == target || fv[2] == target {
				continue
			}
			for j, w := range fv {
				if w == v {
					fv[j] = target
				}
			}
			t.MarkComplexFacet(types.NewFacetKey(fv[0], fv[1], fv[2]))
		}
	}
}
