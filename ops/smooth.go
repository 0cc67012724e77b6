package ops

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/predicates"
	"github.com/notargets/tetremesh/types"
)

// Smooth runs one full repositioning pass: every finite non-corner vertex
// is offered a new position constrained by its dimension, and the move is
// kept only if every incident cell stays positively oriented and the
// vertex's minimum incident quality does not decrease.
func Smooth(t *mesh.Triangulation) {
	for v := range t.FiniteVertices() {
		if t.InDimension(v) == types.Corner {
			continue
		}
		star := t.VertexStar(v)
		if len(star) == 0 {
			continue
		}
		if allImaginary(t, star) {
			continue
		}

		proposed, ok := proposePosition(t, v)
		if !ok {
			continue
		}

		before := t.Position(v)
		beforeQuality := minIncidentQuality(t, v, star, before)

		t.SetPosition(v, proposed)
		if !incidentOrientationsValid(t, v, star) {
			t.SetPosition(v, before)
			continue
		}
		afterQuality := minIncidentQuality(t, v, star, proposed)
		if afterQuality < beforeQuality {
			t.SetPosition(v, before)
		}
	}
}

func proposePosition(t *mesh.Triangulation, v types.VertexHandle) (r3.Vec, bool) {
	switch t.InDimension(v) {
	case types.Volume:
		return centroidOfRing(t, v), true
	case types.Surface:
		return smoothOnSurface(t, v), true
	case types.FeatureEdge:
		return smoothOnFeatureEdge(t, v)
	default:
		return r3.Vec{}, false
	}
}

// centroidOfRing averages the positions of every other vertex incident to
// v across its full cell star.
func centroidOfRing(t *mesh.Triangulation, v types.VertexHandle) r3.Vec {
	sum := r3.Vec{}
	seen := make(map[types.VertexHandle]bool)
	count := 0
	for _, c := range t.VertexStar(v) {
		for _, u := range t.CellVertices(c) {
			if u == v || seen[u] {
				continue
			}
			seen[u] = true
			sum = r3.Add(sum, t.Position(u))
			count++
		}
	}
	if count == 0 {
		return t.Position(v)
	}
	return r3.Scale(1/float64(count), sum)
}

// smoothOnSurface averages v's one-ring neighbors that also lie on a
// complex facet with v, then projects the result onto the plane through v
// with normal equal to the normal-weighted average of v's incident complex
// facets, approximating the tangent-plane surface smoothing rule.
func smoothOnSurface(t *mesh.Triangulation, v types.VertexHandle) r3.Vec {
	neighbors := make(map[types.VertexHandle]bool)
	normalSum := r3.Vec{}
	for _, c := range t.VertexStar(v) {
		verts := t.CellVertices(c)
		lv := t.LocalIndex(c, v)
		for i := 0; i < 4; i++ {
			if i == lv {
				continue
			}
			fk := t.FacetKey(mesh.Facet{Cell: c, Index: i})
			if !t.IsComplexFacet(fk) {
				continue
			}
			fv := t.FacetVertices(mesh.Facet{Cell: c, Index: i})
			normalSum = r3.Add(normalSum, facetNormal(t, fv))
			for _, u := range fv {
				if u != v {
					neighbors[u] = true
				}
			}
		}
	}
	if len(neighbors) == 0 {
		return t.Position(v)
	}
	sum := r3.Vec{}
	for u := range neighbors {
		sum = r3.Add(sum, t.Position(u))
	}
	avg := r3.Scale(1/float64(len(neighbors)), sum)

	if r3.Norm(normalSum) == 0 {
		return avg
	}
	n := r3.Scale(1/r3.Norm(normalSum), normalSum)
	p := t.Position(v)
	offset := r3.Dot(r3.Sub(avg, p), n)
	return r3.Sub(avg, r3.Scale(offset, n))
}

func facetNormal(t *mesh.Triangulation, verts [3]types.VertexHandle) r3.Vec {
	a, b, c := t.Position(verts[0]), t.Position(verts[1]), t.Position(verts[2])
	return r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
}

// smoothOnFeatureEdge moves v to the midpoint of its two neighbors along
// complex edges incident to v; ok is false when v does not have exactly
// two such neighbors (an endpoint or a non-manifold feature vertex).
func smoothOnFeatureEdge(t *mesh.Triangulation, v types.VertexHandle) (r3.Vec, bool) {
	var neighbors []types.VertexHandle
	seen := make(map[types.VertexHandle]bool)
	for ek := range t.ComplexEdgeKeys() {
		var other types.VertexHandle
		switch v {
		case ek.A:
			other = ek.B
		case ek.B:
			other = ek.A
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			neighbors = append(neighbors, other)
		}
	}
	if len(neighbors) != 2 {
		return r3.Vec{}, false
	}
	mid := r3.Scale(0.5, r3.Add(t.Position(neighbors[0]), t.Position(neighbors[1])))
	return mid, true
}

func minIncidentQuality(t *mesh.Triangulation, v types.VertexHandle, star []types.CellHandle, pos r3.Vec) float64 {
	min := math.Inf(1)
	for _, c := range star {
		verts := t.CellVertices(c)
		positions := [4]r3.Vec{}
		for i, u := range verts {
			if u == v {
				positions[i] = pos
			} else {
				positions[i] = t.Position(u)
			}
		}
		q := predicates.Quality(positions[0], positions[1], positions[2], positions[3])
		if q < min {
			min = q
		}
	}
	return min
}

func incidentOrientationsValid(t *mesh.Triangulation, v types.VertexHandle, star []types.CellHandle) bool {
	for _, c := range star {
		verts := t.CellVertices(c)
		if predicates.Orientation(t.Position(verts[0]), t.Position(verts[1]), t.Position(verts[2]), t.Position(verts[3])) <= 0 {
			return false
		}
	}
	return true
}
