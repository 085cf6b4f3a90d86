package graphtest

import (
	"sort"
	"testing"

	"github.com/ejacobg/edgraph/citation"
	"github.com/ejacobg/edgraph/graph"
	"github.com/google/go-cmp/cmp"
)

// Suite defines a re-usable set of tests that can be executed against any
// type that implements graph.Source.
type Suite struct {
	// Seed stores the provided records in the source under test and
	// returns it.
	Seed SeedFunc

	// Optional helper functions.
	BeforeEach func(*testing.T)
	AfterEach  func(*testing.T)
}

// TestSource runs every test of the suite.
func (s *Suite) TestSource(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*testing.T, SeedFunc)
	}{
		{"Vertex records", TestVertexRecords},
		{"Edge records", TestEdgeRecords},
		{"Dangling edges", TestDanglingEdges},
		{"Empty source", TestEmptySource},
		{"Load graph", TestLoadGraph},
	}

	if s.BeforeEach == nil {
		s.BeforeEach = func(t *testing.T) {}
	}

	if s.AfterEach == nil {
		s.AfterEach = func(t *testing.T) {}
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s.BeforeEach(t)
			test.fn(t, s.Seed)
			s.AfterEach(t)
		})
	}
}

// SeedFunc stores records in a source and returns it.
type SeedFunc func(t *testing.T, vertices []graph.Vertex, edges []graph.Edge) graph.Source

// TestVertexRecords verifies that every vertex record is returned exactly
// once, duplicates included.
func TestVertexRecords(t *testing.T, seed SeedFunc) {
	exp := []graph.Vertex{
		{ID: 6285999, Time: 2001},
		{ID: 4399216, Time: 1983},
		{ID: 6958436, Time: 2005},
		{ID: 4399216, Time: 1984},
	}
	src := seed(t, exp, nil)

	got := collectVertices(t, src)
	sortVertices(got)
	sortVertices(exp)
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("vertex records mismatch (-want +got):\n%s", diff)
	}
}

// TestEdgeRecords verifies that parallel edges survive the round trip.
func TestEdgeRecords(t *testing.T, seed SeedFunc) {
	vertices := []graph.Vertex{{ID: 1, Time: 2000}, {ID: 2, Time: 2001}, {ID: 3, Time: 2002}}
	exp := []graph.Edge{
		{Src: 2, Dst: 1},
		{Src: 3, Dst: 1},
		{Src: 3, Dst: 2},
		{Src: 3, Dst: 2},
	}
	src := seed(t, vertices, exp)

	got := collectEdges(t, src)
	sortEdges(got)
	sortEdges(exp)
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("edge records mismatch (-want +got):\n%s", diff)
	}
}

// TestDanglingEdges verifies that edges whose endpoints have no vertex
// record are accepted.
func TestDanglingEdges(t *testing.T, seed SeedFunc) {
	exp := []graph.Edge{{Src: 10, Dst: 20}}
	src := seed(t, nil, exp)

	got := collectEdges(t, src)
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("edge records mismatch (-want +got):\n%s", diff)
	}
}

// TestEmptySource verifies that an empty source yields an empty graph.
func TestEmptySource(t *testing.T, seed SeedFunc) {
	g, err := citation.Load(seed(t, nil, nil))
	if err != nil {
		t.Fatalf("failed to load graph: %v", err)
	}
	if n := g.NumVertices(); n != 0 {
		t.Errorf("got %d vertices, want 0", n)
	}
	if n := g.NumEdges(); n != 0 {
		t.Errorf("got %d edges, want 0", n)
	}
}

// TestLoadGraph builds a citation graph from the source and checks the
// vertex set and a disruption score.
func TestLoadGraph(t *testing.T, seed SeedFunc) {
	vertices := []graph.Vertex{
		{ID: 4, Time: 2003},
		{ID: 1, Time: 2000},
		{ID: 3, Time: 2002},
		{ID: 2, Time: 2001},
	}
	edges := []graph.Edge{{Src: 2, Dst: 1}, {Src: 3, Dst: 1}, {Src: 4, Dst: 2}}

	g, err := citation.Load(seed(t, vertices, edges))
	if err != nil {
		t.Fatalf("failed to load graph: %v", err)
	}

	if diff := cmp.Diff([]uint64{1, 2, 3, 4}, g.Vertices()); diff != "" {
		t.Errorf("vertex set mismatch (-want +got):\n%s", diff)
	}

	d, err := g.Disrupt(1, 2003)
	if err != nil {
		t.Fatalf("failed to compute disruption: %v", err)
	}
	if d != 1 {
		t.Errorf("got disruption %v, want 1", d)
	}
}

func collectVertices(t *testing.T, src graph.Source) []graph.Vertex {
	it, err := src.Vertices()
	if err != nil {
		t.Fatalf("failed to create vertex iterator: %v", err)
	}

	var got []graph.Vertex
	for it.Next() {
		got = append(got, *it.Vertex())
	}
	if err = it.Error(); err != nil {
		t.Errorf("iterator error: %v", err)
	}
	if err = it.Close(); err != nil {
		t.Errorf("failed to close iterator: %v", err)
	}
	return got
}

func collectEdges(t *testing.T, src graph.Source) []graph.Edge {
	it, err := src.Edges()
	if err != nil {
		t.Fatalf("failed to create edge iterator: %v", err)
	}

	var got []graph.Edge
	for it.Next() {
		got = append(got, *it.Edge())
	}
	if err = it.Error(); err != nil {
		t.Errorf("iterator error: %v", err)
	}
	if err = it.Close(); err != nil {
		t.Errorf("failed to close iterator: %v", err)
	}
	return got
}

func sortVertices(list []graph.Vertex) {
	sort.Slice(list, func(l, r int) bool {
		if list[l].ID != list[r].ID {
			return list[l].ID < list[r].ID
		}
		return list[l].Time < list[r].Time
	})
}

func sortEdges(list []graph.Edge) {
	sort.Slice(list, func(l, r int) bool {
		if list[l].Src != list[r].Src {
			return list[l].Src < list[r].Src
		}
		return list[l].Dst < list[r].Dst
	})
}
