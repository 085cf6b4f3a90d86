// Package inmem provides an in-memory record source for citation graphs.
package inmem

import (
	"sync"

	"github.com/ejacobg/edgraph/graph"
)

// Compile-time check for ensuring Source implements graph.Source.
var _ graph.Source = (*Source)(nil)

// Source keeps vertex and edge records in memory. Records can be appended
// concurrently with iteration; iterators see a snapshot taken when they are
// created.
type Source struct {
	mu sync.RWMutex

	vertices []graph.Vertex
	edges    []graph.Edge
}

// NewSource creates an empty in-memory record source.
func NewSource() *Source {
	return &Source{}
}

// AddVertex appends a vertex record. Duplicate IDs are kept; the graph
// builder resolves them.
func (s *Source) AddVertex(v graph.Vertex) {
	s.mu.Lock()
	s.vertices = append(s.vertices, v)
	s.mu.Unlock()
}

// AddEdge appends an edge record. Parallel edges are kept.
func (s *Source) AddEdge(e graph.Edge) {
	s.mu.Lock()
	s.edges = append(s.edges, e)
	s.mu.Unlock()
}

// Vertices returns an iterator over the vertex records in insertion order.
func (s *Source) Vertices() (graph.VertexIterator, error) {
	s.mu.RLock()
	list := s.vertices[:len(s.vertices):len(s.vertices)]
	s.mu.RUnlock()

	return &vertexIterator{vertices: list}, nil
}

// Edges returns an iterator over the edge records in insertion order.
func (s *Source) Edges() (graph.EdgeIterator, error) {
	s.mu.RLock()
	list := s.edges[:len(s.edges):len(s.edges)]
	s.mu.RUnlock()

	return &edgeIterator{edges: list}, nil
}
