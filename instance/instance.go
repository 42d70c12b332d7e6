// Package instance reads the plain-text SGCP instance format: vertex
// and edge counts, an edge list, then one line per cluster.
package instance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/solver4all/sgcp-bp/errs"
	"github.com/solver4all/sgcp-bp/graph"
)

// Instance is a parsed problem file plus its graph.
type Instance struct {
	Name string
	N    int
	M    int
	P    int
	G    *graph.Graph
}

// Load reads and parses an instance file at path.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Input(fmt.Sprintf("instance: open %s", path), err)
	}
	defer f.Close()

	inst, err := Parse(f)
	if err != nil {
		return nil, errs.Input(fmt.Sprintf("instance: parse %s", path), err)
	}
	inst.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return inst, nil
}

// Parse reads the format from r without touching the filesystem.
func Parse(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	n, err := nextInt(sc)
	if err != nil {
		return nil, fmt.Errorf("reading N: %w", err)
	}
	m, err := nextInt(sc)
	if err != nil {
		return nil, fmt.Errorf("reading M: %w", err)
	}
	p, err := nextInt(sc)
	if err != nil {
		return nil, fmt.Errorf("reading P: %w", err)
	}

	edges := make([][2]int, 0, m)
	for i := 0; i < m; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("edge line %d: unexpected EOF", i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			return nil, fmt.Errorf("edge line %d: expected 2 ids, got %d", i, len(fields))
		}
		u, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("edge line %d: %w", i, err)
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("edge line %d: %w", i, err)
		}
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, fmt.Errorf("edge line %d: vertex id out of range [0,%d)", i, n)
		}
		edges = append(edges, [2]int{u, v})
	}

	clusters := make([][]int, 0, p)
	covered := make([]bool, n)
	for k := 0; k < p; k++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("cluster line %d: unexpected EOF", k)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			return nil, fmt.Errorf("cluster line %d: empty", k)
		}
		members := make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("cluster line %d: %w", k, err)
			}
			if v < 0 || v >= n {
				return nil, fmt.Errorf("cluster line %d: vertex id out of range [0,%d)", k, n)
			}
			if covered[v] {
				return nil, fmt.Errorf("cluster line %d: vertex %d already in another cluster", k, v)
			}
			covered[v] = true
			members = append(members, v)
		}
		clusters = append(clusters, members)
	}
	for v, ok := range covered {
		if !ok {
			return nil, fmt.Errorf("vertex %d belongs to no cluster", v)
		}
	}

	return &Instance{N: n, M: m, P: p, G: graph.New(n, edges, clusters)}, nil
}

func nextInt(sc *bufio.Scanner) (int, error) {
	if !sc.Scan() {
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.Atoi(strings.TrimSpace(sc.Text()))
}
