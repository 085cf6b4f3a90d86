package graph

// Source is implemented by objects that can supply the vertex and edge records
// a citation graph is built from.
type Source interface {
	// Vertices returns an iterator over all (vertex, time) records.
	Vertices() (VertexIterator, error)

	// Edges returns an iterator over all (citing, cited) records.
	Edges() (EdgeIterator, error)
}

// Iterator is implemented by graph objects that can be iterated.
type Iterator interface {
	// Next advances the iterator. If no more items are available or an
	// error occurs, calls to Next() return false.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources associated with an iterator.
	Close() error
}
