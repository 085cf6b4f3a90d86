package partition

// Detector is implemented by types that can assign a partition of the vertex
// ID space to the running instance.
type Detector interface {
	// PartitionInfo returns the partition assigned to this instance and
	// the total number of partitions.
	PartitionInfo() (int, int, error)
}

// Fixed is a Detector that always returns the same partition information.
type Fixed struct {
	// The assigned partition.
	Partition int

	// The number of partitions.
	NumPartitions int
}

// PartitionInfo implements Detector.
func (det Fixed) PartitionInfo() (int, int, error) {
	return det.Partition, det.NumPartitions, nil
}
