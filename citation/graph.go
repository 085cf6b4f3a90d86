// Package citation provides an immutable, time-aware citation graph and the
// Funk & Owen-Smith disruption measure computed on top of it.
package citation

import (
	"fmt"

	"github.com/ejacobg/edgraph/graph"
)

// Graph is a directed citation graph where every vertex carries an issue
// time. A Graph is never modified after construction, so its methods can be
// called concurrently without any locking.
type Graph struct {
	times timeIndex
	adj   adjacencyIndex

	numEdges int
}

// New builds a graph from in-memory vertex and edge records. If a vertex ID
// appears more than once, the last record wins. Edges are not deduplicated
// and may reference vertices that have no time entry; queries touching the
// time of such vertices fail with graph.ErrUnknownVertex.
func New(vertices []graph.Vertex, edges []graph.Edge) *Graph {
	g := &Graph{adj: newAdjacencyIndex()}
	for _, v := range vertices {
		g.times.set(v.ID, v.Time)
	}
	for _, e := range edges {
		g.adj.addEdge(e.Src, e.Dst)
	}
	g.numEdges = len(edges)
	return g
}

// Load drains the vertex and edge iterators of src and builds a graph from
// their records.
func Load(src graph.Source) (*Graph, error) {
	g := &Graph{adj: newAdjacencyIndex()}

	vIt, err := src.Vertices()
	if err != nil {
		return nil, fmt.Errorf("load vertices: %w", err)
	}
	for vIt.Next() {
		v := vIt.Vertex()
		g.times.set(v.ID, v.Time)
	}
	if err = closeIterator(vIt); err != nil {
		return nil, fmt.Errorf("load vertices: %w", err)
	}

	eIt, err := src.Edges()
	if err != nil {
		return nil, fmt.Errorf("load edges: %w", err)
	}
	for eIt.Next() {
		e := eIt.Edge()
		g.adj.addEdge(e.Src, e.Dst)
		g.numEdges++
	}
	if err = closeIterator(eIt); err != nil {
		return nil, fmt.Errorf("load edges: %w", err)
	}

	return g, nil
}

func closeIterator(it graph.Iterator) error {
	iterErr := it.Error()
	closeErr := it.Close()
	if iterErr != nil {
		return iterErr
	}
	return closeErr
}

// NumVertices returns the number of vertices with a time entry.
func (g *Graph) NumVertices() int { return g.times.len() }

// NumEdges returns the number of edge records ingested, parallel edges
// included.
func (g *Graph) NumEdges() int { return g.numEdges }

// Vertices returns the IDs of all vertices with a time entry in ascending
// order.
func (g *Graph) Vertices() []uint64 {
	return g.times.ids()
}

// Time returns the issue time of a vertex.
func (g *Graph) Time(v uint64) (uint64, error) {
	t, ok := g.times.get(v)
	if !ok {
		return 0, fmt.Errorf("vertex %d: %w", v, graph.ErrUnknownVertex)
	}
	return t, nil
}

// Cited returns the vertices that v cites (backward citations). Parallel
// edges are returned once per edge record.
func (g *Graph) Cited(v uint64) ([]uint64, error) {
	if _, err := g.Time(v); err != nil {
		return nil, fmt.Errorf("cited: %w", err)
	}
	return g.adj.citedBy(v), nil
}

// Citing returns the vertices that cite v (forward citations) and were
// issued no later than endTime. Parallel edges are returned once per edge
// record.
func (g *Graph) Citing(v, endTime uint64) ([]uint64, error) {
	if _, err := g.Time(v); err != nil {
		return nil, fmt.Errorf("citing: %w", err)
	}
	citing, err := g.citingUntil(v, endTime)
	if err != nil {
		return nil, fmt.Errorf("citing: %w", err)
	}
	return citing, nil
}

// citingUntil filters the citers of v by their time. Unlike Citing it does
// not require v itself to have a time entry.
func (g *Graph) citingUntil(v, endTime uint64) ([]uint64, error) {
	var citing []uint64
	for _, c := range g.adj.citingOf(v) {
		t, err := g.Time(c)
		if err != nil {
			return nil, err
		}
		if t <= endTime {
			citing = append(citing, c)
		}
	}
	return citing, nil
}

// Outdegree returns the number of citations v makes. It does not vary with
// time.
func (g *Graph) Outdegree(v uint64) (int, error) {
	if _, err := g.Time(v); err != nil {
		return 0, fmt.Errorf("outdegree: %w", err)
	}
	return g.adj.outdegree(v), nil
}

// Indegree returns the number of citations v received up to endTime.
func (g *Graph) Indegree(v, endTime uint64) (int, error) {
	citing, err := g.Citing(v, endTime)
	if err != nil {
		return 0, fmt.Errorf("indegree: %w", err)
	}
	return len(citing), nil
}
