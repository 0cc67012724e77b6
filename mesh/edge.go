package mesh

import "github.com/notargets/tetremesh/types"

// EdgeVertices returns the two vertex handles of an edge given a cell and
// the local indices of its endpoints.
func (t *Triangulation) EdgeVertices(c types.CellHandle, i, j int) (types.VertexHandle, types.VertexHandle) {
	rec := t.mustCell(c)
	return rec.vertices[i], rec.vertices[j]
}

// VertexStar returns every live cell incident to v, found by hopping across
// neighbor facets that still contain v starting from v's back-index cell.
// Every cell incident to v is reachable this way because two cells sharing
// a facet that omits v cannot both contain v (a shared facet plus two
// distinct apexes is exactly what makes them distinct cells).
func (t *Triangulation) VertexStar(v types.VertexHandle) []types.CellHandle {
	start := t.IncidentCell(v)
	if start.IsNil() || !t.AliveCell(start) {
		return nil
	}
	visited := map[types.CellHandle]bool{start: true}
	stack := []types.CellHandle{start}
	var result []types.CellHandle
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, c)
		li := t.LocalIndex(c, v)
		for facet := 0; facet < 4; facet++ {
			if facet == li {
				continue
			}
			nb := t.CellNeighbor(c, facet)
			if nb.IsNil() || visited[nb] {
				continue
			}
			if t.LocalIndex(nb, v) < 0 {
				continue
			}
			visited[nb] = true
			stack = append(stack, nb)
		}
	}
	return result
}

// EdgeRing returns every live cell incident to both endpoints of an edge,
// i.e. the full set of tetrahedra sharing that edge.
func (t *Triangulation) EdgeRing(a, b types.VertexHandle) []types.CellHandle {
	star := t.VertexStar(a)
	ring := make([]types.CellHandle, 0, len(star))
	for _, c := range star {
		if t.LocalIndex(c, b) >= 0 {
			ring = append(ring, c)
		}
	}
	return ring
}

// IncidentSubdomains returns the set of distinct subdomain indices of the
// given cells (an edge ring or a vertex star), including NoSubdomain and the
// imaginary index when such cells are present.
func (t *Triangulation) IncidentSubdomains(cells []types.CellHandle) map[types.SubdomainIndex]struct{} {
	set := make(map[types.SubdomainIndex]struct{}, len(cells))
	for _, c := range cells {
		set[t.SubdomainIndex(c)] = struct{}{}
	}
	return set
}
