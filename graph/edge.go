package graph

// Edge describes a citation that originates from Src (the citing vertex) and
// terminates at Dst (the cited vertex).
type Edge struct {
	// The citing vertex.
	Src uint64

	// The cited vertex.
	Dst uint64
}

// EdgeIterator is implemented by objects that can iterate edge records.
type EdgeIterator interface {
	Iterator

	// Edge returns the currently fetched edge object.
	Edge() *Edge
}
