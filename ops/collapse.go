package ops

import (
	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/predicates"
	"github.com/notargets/tetremesh/sizing"
	"github.com/notargets/tetremesh/types"
)

// Collapse runs one full pass of the short-edge merge operator: every
// finite edge shorter than the local emin is a candidate to merge one
// endpoint into the other, shortest first, subject to the direction
// priority and rejection rules of the collapse policy.
func Collapse(t *mesh.Triangulation, field sizing.Field, protectBoundaries bool) {
	q := newEdgeQueue(false)
	for ek := range t.FiniteEdges() {
		queueIfShort(t, field, q, ek)
	}

	for {
		ek, _, ok := q.pop()
		if !ok {
			return
		}
		if !t.AliveVertex(ek.A) || !t.AliveVertex(ek.B) {
			continue
		}
		ring := t.EdgeRing(ek.A, ek.B)
		if len(ring) == 0 {
			continue
		}
		emin, _ := edgeBounds(t, field, ek.A, ek.B)
		current := predicates.SquaredLength(t.Position(ek.A), t.Position(ek.B))
		if current >= emin*emin {
			continue // stale: no longer under threshold
		}
		if allImaginary(t, ring) {
			continue
		}

		source, target, ok := chooseDirection(t, ek.A, ek.B)
		if !ok {
			continue
		}

		if protectBoundaries && (t.IsComplexEdge(ek) || edgeOnComplexFacet(t, ek.A, ek.B)) {
			sameDim := t.InDimension(ek.A) == t.InDimension(ek.B) && t.InDimension(ek.A) <= types.Surface
			if !sameDim || !preservesComplexTopology(t, source, target) {
				continue
			}
		}

		if !collapseAccepted(t, field, source, target) {
			continue
		}

		if err := t.CollapseEdge(source, target); err != nil {
			continue
		}

		for _, c := range t.VertexStar(target) {
			verts := t.CellVertices(c)
			for _, e := range mesh.EdgeLocalIndices {
				queueIfShort(t, field, q, types.NewEdgeKey(verts[e[0]], verts[e[1]]))
			}
		}
	}
}

// chooseDirection applies the corner/dimension priority rules of the
// collapse policy, returning ok=false when neither direction is permitted
// (both endpoints are corners).
func chooseDirection(t *mesh.Triangulation, a, b types.VertexHandle) (source, target types.VertexHandle, ok bool) {
	cornerA, cornerB := t.IsCorner(a), t.IsCorner(b)
	switch {
	case cornerA && cornerB:
		return types.NilVertex, types.NilVertex, false
	case cornerA:
		return b, a, true
	case cornerB:
		return a, b, true
	}
	da, db := t.InDimension(a), t.InDimension(b)
	if da < db {
		return b, a, true
	}
	if db < da {
		return a, b, true
	}
	return b, a, true
}

// collapseAccepted evaluates the geometric and topological rejection rules:
// a link-condition proxy (no cell incident only to the source may, once
// relabeled, duplicate a cell already incident to the target), positive
// orientation of every relabeled cell, no resulting edge exceeding emax,
// and no drop in the number of distinct subdomains incident to the target.
func collapseAccepted(t *mesh.Triangulation, field sizing.Field, source, target types.VertexHandle) bool {
	ring := t.EdgeRing(source, target)
	inRing := make(map[types.CellHandle]bool, len(ring))
	for _, r := range ring {
		inRing[r] = true
	}

	star := t.VertexStar(source)
	others := make([]types.CellHandle, 0, len(star))
	for _, c := range star {
		if !inRing[c] {
			others = append(others, c)
		}
	}

	beforeSubdomains := incidentSubdomains(t, target)

	targetOthers := make([]types.CellHandle, 0)
	for _, c := range t.VertexStar(target) {
		if !inRing[c] {
			targetOthers = append(targetOthers, c)
		}
	}
	existingSignatures := make(map[[4]types.VertexHandle]bool, len(targetOthers))
	for _, c := range targetOthers {
		existingSignatures[signature(t.CellVertices(c))] = true
	}

	afterSubdomains := make(map[types.SubdomainIndex]struct{})
	for _, c := range targetOthers {
		afterSubdomains[t.SubdomainIndex(c)] = struct{}{}
	}

	for _, c := range others {
		verts := t.CellVertices(c)
		relabeled := verts
		for i, v := range relabeled {
			if v == source {
				relabeled[i] = target
			}
		}

		sig := signature(relabeled)
		if existingSignatures[sig] {
			return false // link condition: would duplicate an existing cell
		}
		existingSignatures[sig] = true

		if predicates.Orientation(
			t.Position(relabeled[0]), t.Position(relabeled[1]),
			t.Position(relabeled[2]), t.Position(relabeled[3]),
		) <= 0 {
			return false
		}

		afterSubdomains[t.SubdomainIndex(c)] = struct{}{}

		for _, v := range relabeled {
			if v == target {
				continue
			}
			_, emax := edgeBounds(t, field, target, v)
			sq := predicates.SquaredLength(t.Position(target), t.Position(v))
			if sq > emax*emax {
				return false
			}
		}
	}

	if len(afterSubdomains) < len(beforeSubdomains) {
		return false
	}
	return true
}

// preservesComplexTopology implements collapse rule 3's "collapsing does not
// change the complex topology" clause: every complex edge or facet incident
// to source but not to target (the ones that will be rewritten onto target
// rather than dropped as ring-degenerate) must map to a key that is not
// already a distinct complex tag, so two separate protected features are
// never silently merged into one by the collapse.
func preservesComplexTopology(t *mesh.Triangulation, source, target types.VertexHandle) bool {
	seenEdges := make(map[types.EdgeKey]bool)
	seenFacets := make(map[types.FacetKey]bool)
	for _, c := range t.VertexStar(source) {
		verts := t.CellVertices(c)
		lv := t.LocalIndex(c, source)

		for i, u := range verts {
			if i == lv || u == target {
				continue
			}
			ek := types.NewEdgeKey(source, u)
			if !t.IsComplexEdge(ek) || seenEdges[ek] {
				continue
			}
			seenEdges[ek] = true
			if t.IsComplexEdge(types.NewEdgeKey(target, u)) {
				return false
			}
		}

		for i := 0; i < 4; i++ {
			if i == lv {
				continue
			}
			fv := t.FacetVertices(mesh.Facet{Cell: c, Index: i})
			if fv[0] == target || fv[1] == target || fv[2] == target {
				continue
			}
			fk := types.NewFacetKey(fv[0], fv[1], fv[2])
			if !t.IsComplexFacet(fk) || seenFacets[fk] {
				continue
			}
			seenFacets[fk] = true
			for j, w := range fv {
				if w == source {
					fv[j] = target
				}
			}
			if t.IsComplexFacet(types.NewFacetKey(fv[0], fv[1], fv[2])) {
				return false
			}
		}
	}
	return true
}

func signature(v [4]types.VertexHandle) [4]types.VertexHandle {
	out := v
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if out[j].Index < out[i].Index || (out[j].Index == out[i].Index && out[j].Generation < out[i].Generation) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

func queueIfShort(t *mesh.Triangulation, field sizing.Field, q *edgeQueue, ek types.EdgeKey) {
	emin, _ := edgeBounds(t, field, ek.A, ek.B)
	sq := predicates.SquaredLength(t.Position(ek.A), t.Position(ek.B))
	if sq < emin*emin {
		q.push(ek, sq)
	}
}
