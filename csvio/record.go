package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ejacobg/edgraph/graph"
	"github.com/sirupsen/logrus"
)

// recordReader decodes a file of two-column unsigned integer records.
type recordReader struct {
	f       *os.File
	r       *csv.Reader
	path    string
	lenient bool
	logger  *logrus.Entry

	a, b    uint64
	lastErr error
}

func openRecordReader(path string, lenient bool, logger *logrus.Entry) (*recordReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true
	r.TrimLeadingSpace = true

	return &recordReader{
		f:       f,
		r:       r,
		path:    path,
		lenient: lenient,
		logger:  logger,
	}, nil
}

func (rr *recordReader) next() bool {
	if rr.lastErr != nil {
		return false
	}

	for {
		var line int
		record, err := rr.r.Read()
		switch {
		case err == io.EOF:
			return false
		case err == nil:
			line, _ = rr.r.FieldPos(0)
			if rr.a, rr.b, err = parseRecord(record); err == nil {
				return true
			}
		default:
			// I/O errors cannot be skipped.
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				rr.lastErr = fmt.Errorf("%s: %w", rr.path, err)
				return false
			}
			line = parseErr.Line
		}

		if !rr.lenient {
			rr.lastErr = fmt.Errorf("%s:%d: %v: %w", rr.path, line, err, graph.ErrMalformedRecord)
			return false
		}
		rr.logger.WithFields(logrus.Fields{
			"file": rr.path,
			"line": line,
			"err":  err,
		}).Warn("skipping malformed record")
	}
}

func (rr *recordReader) close() error {
	return rr.f.Close()
}

func parseRecord(record []string) (uint64, uint64, error) {
	if len(record) != 2 {
		return 0, 0, fmt.Errorf("expected 2 fields, got %d", len(record))
	}

	a, err := strconv.ParseUint(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("field 1: %w", err)
	}
	b, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("field 2: %w", err)
	}
	return a, b, nil
}

// vertexIterator is a graph.VertexIterator implementation for CSV files.
type vertexIterator struct {
	rr            *recordReader
	latchedVertex *graph.Vertex
}

// Next implements graph.VertexIterator.
func (i *vertexIterator) Next() bool {
	if !i.rr.next() {
		return false
	}
	i.latchedVertex = &graph.Vertex{ID: i.rr.a, Time: i.rr.b}
	return true
}

// Error implements graph.VertexIterator.
func (i *vertexIterator) Error() error { return i.rr.lastErr }

// Close implements graph.VertexIterator.
func (i *vertexIterator) Close() error { return i.rr.close() }

// Vertex implements graph.VertexIterator.
func (i *vertexIterator) Vertex() *graph.Vertex { return i.latchedVertex }

// edgeIterator is a graph.EdgeIterator implementation for CSV files.
type edgeIterator struct {
	rr          *recordReader
	latchedEdge *graph.Edge
}

// Next implements graph.EdgeIterator.
func (i *edgeIterator) Next() bool {
	if !i.rr.next() {
		return false
	}
	i.latchedEdge = &graph.Edge{Src: i.rr.a, Dst: i.rr.b}
	return true
}

// Error implements graph.EdgeIterator.
func (i *edgeIterator) Error() error { return i.rr.lastErr }

// Close implements graph.EdgeIterator.
func (i *edgeIterator) Close() error { return i.rr.close() }

// Edge implements graph.EdgeIterator.
func (i *edgeIterator) Edge() *graph.Edge { return i.latchedEdge }
