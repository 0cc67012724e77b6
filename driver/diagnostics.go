package driver

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/types"
)

// SubdomainAdjacency is a read-only reporting facility over the final
// complex: a square matrix indexed by subdomain_index counting the
// complex facets separating each ordered pair of subdomains. It never
// feeds back into the remeshing loop.
type SubdomainAdjacency struct {
	indexOf map[types.SubdomainIndex]int
	order   []types.SubdomainIndex
	counts  *sparse.CSR
}

// At returns the number of complex facets between subdomains a and b.
func (s SubdomainAdjacency) At(a, b types.SubdomainIndex) float64 {
	ia, ok := s.indexOf[a]
	if !ok {
		return 0
	}
	ib, ok := s.indexOf[b]
	if !ok {
		return 0
	}
	return s.counts.At(ia, ib)
}

// Subdomains returns the subdomain indices this report covers, in the
// order their matrix rows/columns are assigned.
func (s SubdomainAdjacency) Subdomains() []types.SubdomainIndex {
	return s.order
}

// BuildSubdomainAdjacency scans every complex facet of t and tallies how
// many separate each pair of subdomains, built with a DOK accumulator and
// converted to CSR for efficient repeated lookups.
func BuildSubdomainAdjacency(t *mesh.Triangulation) SubdomainAdjacency {
	indexOf := make(map[types.SubdomainIndex]int)
	var order []types.SubdomainIndex
	assign := func(si types.SubdomainIndex) int {
		if i, ok := indexOf[si]; ok {
			return i
		}
		i := len(order)
		indexOf[si] = i
		order = append(order, si)
		return i
	}

	for c := range t.FiniteCells() {
		assign(t.SubdomainIndex(c))
	}

	n := len(order)
	dok := sparse.NewDOK(n, n)

	for fk := range t.ComplexFacetKeys() {
		ring := t.EdgeRing(fk.A, fk.B)
		var cells []types.CellHandle
		for _, c := range ring {
			if t.LocalIndex(c, fk.C) >= 0 {
				cells = append(cells, c)
			}
		}
		if len(cells) != 2 {
			continue
		}
		ia := assign(t.SubdomainIndex(cells[0]))
		ib := assign(t.SubdomainIndex(cells[1]))
		dok.Set(ia, ib, dok.At(ia, ib)+1)
		if ia != ib {
			dok.Set(ib, ia, dok.At(ib, ia)+1)
		}
	}

	return SubdomainAdjacency{indexOf: indexOf, order: order, counts: dok.ToCSR()}
}
