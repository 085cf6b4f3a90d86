// Package partition splits the vertex ID space into contiguous ranges so that
// several scorer instances can share one batch run.
package partition

import (
	"fmt"
	"math"
)

// Range represents a contiguous vertex ID region [start, end) which is split
// into a number of partitions.
type Range struct {
	// The lower bound for the range (inclusive).
	start uint64

	// rangeSplits[i] holds the upper bound (exclusive) for partition i. The
	// last split is always the end of the range.
	rangeSplits []uint64
}

// NewRange creates a new range [start, end) and splits it into the
// provided number of partitions.
func NewRange(start, end uint64, numPartitions int) (Range, error) {
	if start >= end {
		return Range{}, fmt.Errorf("range start must be less than the range end")
	} else if numPartitions <= 0 {
		return Range{}, fmt.Errorf("number of partitions must be at least equal to 1")
	} else if uint64(numPartitions) > end-start {
		return Range{}, fmt.Errorf("range [%d, %d) cannot be split into %d partitions", start, end, numPartitions)
	}

	partSize := (end - start) / uint64(numPartitions)
	splits := make([]uint64, numPartitions)
	for partition := 0; partition < numPartitions-1; partition++ {
		splits[partition] = start + partSize*uint64(partition+1)
	}
	// The remainder of the division goes to the last partition.
	splits[numPartitions-1] = end

	return Range{start: start, rangeSplits: splits}, nil
}

// NewFullRange creates a new range that covers [0, math.MaxUint64) and splits
// it into the provided number of partitions.
func NewFullRange(numPartitions int) (Range, error) {
	return NewRange(0, math.MaxUint64, numPartitions)
}

// Extents returns the full [start, end) range this object represents.
func (r Range) Extents() (uint64, uint64) {
	return r.start, r.rangeSplits[len(r.rangeSplits)-1]
}

// PartitionExtents returns the [start, end) range for the requested partition.
func (r Range) PartitionExtents(partition int) (uint64, uint64, error) {
	if partition < 0 || partition >= len(r.rangeSplits) {
		return 0, 0, fmt.Errorf("invalid partition index")
	}

	if partition == 0 {
		return r.start, r.rangeSplits[0], nil
	}
	return r.rangeSplits[partition-1], r.rangeSplits[partition], nil
}
