package graph

// Vertex is a node of the citation graph, for example a patent or a
// publication.
type Vertex struct {
	// A unique identifier for the vertex.
	ID uint64

	// The issue or publication time of the vertex, usually a year.
	Time uint64
}

// VertexIterator is implemented by objects that can iterate vertex records.
type VertexIterator interface {
	Iterator

	// Vertex returns the currently fetched vertex object.
	Vertex() *Vertex
}
