package inmem

import "github.com/ejacobg/edgraph/graph"

// vertexIterator is a graph.VertexIterator implementation for the in-memory
// source.
type vertexIterator struct {
	vertices []graph.Vertex
	curr     int
}

// Next implements graph.VertexIterator.
func (i *vertexIterator) Next() bool {
	if i.curr >= len(i.vertices) {
		return false
	}
	i.curr++
	return true
}

// Error implements graph.VertexIterator.
func (i *vertexIterator) Error() error {
	return nil
}

// Close implements graph.VertexIterator.
func (i *vertexIterator) Close() error {
	return nil
}

// Vertex implements graph.VertexIterator.
func (i *vertexIterator) Vertex() *graph.Vertex {
	vertex := i.vertices[i.curr-1]
	return &vertex
}
