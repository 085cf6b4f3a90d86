package partition

import (
	"math"
	"testing"
)

func TestNewRangeErrors(t *testing.T) {
	specs := []struct {
		descr      string
		start, end uint64
		parts      int
	}{
		{descr: "empty range", start: 10, end: 10, parts: 1},
		{descr: "inverted range", start: 10, end: 5, parts: 1},
		{descr: "no partitions", start: 0, end: 10, parts: 0},
		{descr: "more partitions than ids", start: 0, end: 3, parts: 4},
	}

	for _, spec := range specs {
		if _, err := NewRange(spec.start, spec.end, spec.parts); err == nil {
			t.Errorf("%s: expected an error", spec.descr)
		}
	}
}

func TestEvenSplit(t *testing.T) {
	r, err := NewRange(0, 100, 4)
	if err != nil {
		t.Fatal(err)
	}

	for i, exp := range [][2]uint64{{0, 25}, {25, 50}, {50, 75}, {75, 100}} {
		from, to, err := r.PartitionExtents(i)
		if err != nil {
			t.Fatalf("partition %d: %v", i, err)
		}
		if from != exp[0] || to != exp[1] {
			t.Errorf("partition %d: got [%d, %d), want [%d, %d)", i, from, to, exp[0], exp[1])
		}
	}

	if _, _, err = r.PartitionExtents(4); err == nil {
		t.Error("expected an error for an invalid partition index")
	}
}

func TestPartitionsAreContiguous(t *testing.T) {
	r, err := NewRange(10, 21, 3)
	if err != nil {
		t.Fatal(err)
	}

	next := uint64(10)
	for i := 0; i < 3; i++ {
		from, to, err := r.PartitionExtents(i)
		if err != nil {
			t.Fatalf("partition %d: %v", i, err)
		}
		if from != next || to <= from {
			t.Errorf("partition %d: got [%d, %d), want start %d", i, from, to, next)
		}
		next = to
	}
	if next != 21 {
		t.Errorf("partitions end at %d, want 21", next)
	}
}

func TestFullRange(t *testing.T) {
	r, err := NewFullRange(7)
	if err != nil {
		t.Fatal(err)
	}

	start, end := r.Extents()
	if start != 0 || end != math.MaxUint64 {
		t.Errorf("got extents [%d, %d)", start, end)
	}

	_, to, err := r.PartitionExtents(6)
	if err != nil {
		t.Fatal(err)
	}
	if to != math.MaxUint64 {
		t.Errorf("last partition ends at %d, want %d", to, uint64(math.MaxUint64))
	}
}
