package csvio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ejacobg/edgraph/graph"
	"github.com/ejacobg/edgraph/graph/graphtest"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestAcceptance(t *testing.T) {
	var dir string
	suite := graphtest.Suite{
		BeforeEach: func(t *testing.T) {
			dir = t.TempDir()
		},
		Seed: func(t *testing.T, vertices []graph.Vertex, edges []graph.Edge) graph.Source {
			var vBuf, eBuf bytes.Buffer
			for _, v := range vertices {
				vBuf.WriteString(formatPair(v.ID, v.Time))
			}
			for _, e := range edges {
				eBuf.WriteString(formatPair(e.Src, e.Dst))
			}

			src, err := NewSource(Config{
				VertexFile: writeFile(t, dir, "vertices.csv", vBuf.String()),
				EdgeFile:   writeFile(t, dir, "edges.csv", eBuf.String()),
			})
			if err != nil {
				t.Fatalf("failed to create source: %v", err)
			}
			return src
		},
	}

	suite.TestSource(t)
}

func formatPair(a, b uint64) string {
	return fmt.Sprintf("%d,%d\n", a, b)
}

func TestMissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := NewSource(Config{
		VertexFile: filepath.Join(dir, "missing.csv"),
	})
	if err == nil {
		t.Fatal("expected an error for missing files")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected error to wrap os.ErrNotExist; got %v", err)
	}
}

func TestMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	vertexFile := writeFile(t, dir, "vertices.csv", "1,2000\r\nfoo,2001\n\n3, 2002\n4\n5,2004,extra\n6,-1\n7,2007\n")
	edgeFile := writeFile(t, dir, "edges.csv", "")

	specs := []struct {
		descr   string
		lenient bool
		expIDs  []uint64
		expErr  bool
	}{
		{descr: "strict mode stops at first malformed line", expIDs: []uint64{1}, expErr: true},
		{descr: "lenient mode skips malformed lines", lenient: true, expIDs: []uint64{1, 3, 7}},
	}

	for _, spec := range specs {
		t.Run(spec.descr, func(t *testing.T) {
			src, err := NewSource(Config{VertexFile: vertexFile, EdgeFile: edgeFile, Lenient: spec.lenient})
			if err != nil {
				t.Fatalf("failed to create source: %v", err)
			}

			it, err := src.Vertices()
			if err != nil {
				t.Fatalf("failed to create iterator: %v", err)
			}
			var got []uint64
			for it.Next() {
				got = append(got, it.Vertex().ID)
			}
			if diff := cmp.Diff(spec.expIDs, got); diff != "" {
				t.Errorf("vertex IDs mismatch (-want +got):\n%s", diff)
			}

			err = it.Error()
			if spec.expErr && !errors.Is(err, graph.ErrMalformedRecord) {
				t.Errorf("unexpected error %v, want %v", err, graph.ErrMalformedRecord)
			} else if !spec.expErr && err != nil {
				t.Errorf("unexpected error %v", err)
			}
			if err = it.Close(); err != nil {
				t.Errorf("failed to close iterator: %v", err)
			}
		})
	}
}

func TestScoreWriter(t *testing.T) {
	var buf bytes.Buffer
	sw := NewScoreWriter(&buf)

	rows := []*graph.Score{
		{Vertex: 6285999, VertexTime: 2001, Year: 2005, Disruption: 0.25, Defined: true, Radicalness: 3, Indegree: 12},
		{Vertex: 6285999, VertexTime: 2001, Year: 2001},
	}
	for _, row := range rows {
		if err := sw.WriteScore(row); err != nil {
			t.Fatalf("failed to write score: %v", err)
		}
	}
	if err := sw.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	exp := "6285999,2001,2005,0.25,3,12\n6285999,2001,2001,NA,NA,0\n"
	if got := buf.String(); got != exp {
		t.Errorf("got output %q, want %q", got, exp)
	}
}
