package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ejacobg/edgraph/graph"
)

// Undefined is written in place of the disruption and radicalness columns
// of rows whose score is undefined.
const Undefined = "NA"

// ScoreWriter writes panel rows as "vertex,time,year,disruption,radicalness,indegree"
// lines without a header.
type ScoreWriter struct {
	w      *csv.Writer
	closer io.Closer
	record []string
}

// NewScoreWriter returns a ScoreWriter that writes to w. If w is an
// io.Closer it will be closed by Close.
func NewScoreWriter(w io.Writer) *ScoreWriter {
	sw := &ScoreWriter{
		w:      csv.NewWriter(w),
		record: make([]string, 6),
	}
	if c, ok := w.(io.Closer); ok {
		sw.closer = c
	}
	return sw
}

// WriteScore appends a row to the output.
func (sw *ScoreWriter) WriteScore(s *graph.Score) error {
	sw.record[0] = strconv.FormatUint(s.Vertex, 10)
	sw.record[1] = strconv.FormatUint(s.VertexTime, 10)
	sw.record[2] = strconv.FormatUint(s.Year, 10)
	if s.Defined {
		sw.record[3] = strconv.FormatFloat(s.Disruption, 'g', -1, 64)
		sw.record[4] = strconv.FormatFloat(s.Radicalness, 'g', -1, 64)
	} else {
		sw.record[3] = Undefined
		sw.record[4] = Undefined
	}
	sw.record[5] = strconv.Itoa(s.Indegree)
	return sw.w.Write(sw.record)
}

// Flush writes any buffered rows to the underlying writer.
func (sw *ScoreWriter) Flush() error {
	sw.w.Flush()
	return sw.w.Error()
}

// Close flushes the output and closes the underlying writer if possible.
func (sw *ScoreWriter) Close() error {
	if err := sw.Flush(); err != nil {
		return err
	}
	if sw.closer != nil {
		return sw.closer.Close()
	}
	return nil
}
