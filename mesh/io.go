package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/tetremesh/types"
)

// ReadMeshFile opens path and parses it with ReadMesh.
func ReadMeshFile(path string) (*Triangulation, []types.VertexHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadMesh(f)
}

// ReadMesh parses a plain-text tetrahedral mesh: a VERTICES section of
// "index x y z" lines followed by a CELLS section of
// "index v0 v1 v2 v3 subdomain" lines, the same line-oriented shape the
// mesh partitioner tool's exportPartitionedMesh writes, generalized from a
// report format into a round-trippable one.
func ReadMesh(r io.Reader) (*Triangulation, []types.VertexHandle, error) {
	scanner := bufio.NewScanner(r)
	var positions []r3.Vec
	var cells [][4]int
	var subdomains []types.SubdomainIndex

	section := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "VERTICES":
			section = "VERTICES"
			continue
		case "CELLS":
			section = "CELLS"
			continue
		}
		switch section {
		case "VERTICES":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("tetremesh: mesh io: malformed vertex line %q", line)
			}
			x, errx := strconv.ParseFloat(fields[1], 64)
			y, erry := strconv.ParseFloat(fields[2], 64)
			z, errz := strconv.ParseFloat(fields[3], 64)
			if errx != nil || erry != nil || errz != nil {
				return nil, nil, fmt.Errorf("tetremesh: mesh io: malformed vertex coordinates %q", line)
			}
			positions = append(positions, r3.Vec{X: x, Y: y, Z: z})
		case "CELLS":
			if len(fields) < 6 {
				return nil, nil, fmt.Errorf("tetremesh: mesh io: malformed cell line %q", line)
			}
			var idx [4]int
			for i := 0; i < 4; i++ {
				v, err := strconv.Atoi(fields[1+i])
				if err != nil {
					return nil, nil, fmt.Errorf("tetremesh: mesh io: malformed cell vertex index %q", line)
				}
				idx[i] = v
			}
			si, err := strconv.Atoi(fields[5])
			if err != nil {
				return nil, nil, fmt.Errorf("tetremesh: mesh io: malformed subdomain index %q", line)
			}
			cells = append(cells, idx)
			subdomains = append(subdomains, types.SubdomainIndex(si))
		default:
			return nil, nil, fmt.Errorf("tetremesh: mesh io: data before VERTICES/CELLS header: %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return BuildConnectivity(positions, cells, subdomains)
}

// WriteMeshFile writes t to path in the format ReadMeshFile parses.
func WriteMeshFile(t *Triangulation, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteMesh(t, f)
}

// WriteMesh serializes t in the format ReadMesh parses.
func WriteMesh(t *Triangulation, w io.Writer) error {
	bw := bufio.NewWriter(w)

	indexOf := make(map[types.VertexHandle]int)
	var byIndex []types.VertexHandle
	for v := range t.FiniteVertices() {
		indexOf[v] = len(byIndex)
		byIndex = append(byIndex, v)
	}
	fmt.Fprintf(bw, "VERTICES %d\n", len(byIndex))
	for idx, v := range byIndex {
		p := t.Position(v)
		fmt.Fprintf(bw, "%d %.9g %.9g %.9g\n", idx, p.X, p.Y, p.Z)
	}

	var cells []types.CellHandle
	for c := range t.FiniteCells() {
		cells = append(cells, c)
	}
	fmt.Fprintf(bw, "CELLS %d\n", len(cells))
	for i, c := range cells {
		verts := t.CellVertices(c)
		fmt.Fprintf(bw, "%d %d %d %d %d %d\n", i,
			indexOf[verts[0]], indexOf[verts[1]], indexOf[verts[2]], indexOf[verts[3]],
			int(t.SubdomainIndex(c)))
	}
	return bw.Flush()
}
