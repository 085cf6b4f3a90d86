// Package csvio reads citation graph records from comma-separated files and
// writes disruption panels in the same format.
//
// Vertex files hold one "id,time" record per line and edge files one
// "citing,cited" record per line. Neither has a header row.
package csvio

import (
	"fmt"
	"io"
	"os"

	"github.com/ejacobg/edgraph/graph"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Compile-time check for ensuring Source implements graph.Source.
var _ graph.Source = (*Source)(nil)

// Config encapsulates the settings for a CSV record source.
type Config struct {
	// The file with the vertex records.
	VertexFile string

	// The file with the edge records.
	EdgeFile string

	// When set, malformed lines are logged and skipped. Otherwise the
	// first malformed line aborts iteration with graph.ErrMalformedRecord.
	Lenient bool

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.VertexFile == "" {
		err = multierror.Append(err, xerrors.Errorf("vertex file has not been specified"))
	} else if _, statErr := os.Stat(cfg.VertexFile); statErr != nil {
		err = multierror.Append(err, xerrors.Errorf("vertex file: %w", statErr))
	}
	if cfg.EdgeFile == "" {
		err = multierror.Append(err, xerrors.Errorf("edge file has not been specified"))
	} else if _, statErr := os.Stat(cfg.EdgeFile); statErr != nil {
		err = multierror.Append(err, xerrors.Errorf("edge file: %w", statErr))
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		cfg.Logger = logrus.NewEntry(l)
	}
	return err
}

// Source reads vertex and edge records from a pair of CSV files. Every call
// to Vertices or Edges re-opens the respective file.
type Source struct {
	cfg Config
}

// NewSource creates a CSV record source after checking that both files
// exist.
func NewSource(cfg Config) (*Source, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("csv source: config validation failed: %w", err)
	}
	return &Source{cfg: cfg}, nil
}

// Vertices implements graph.Source.
func (s *Source) Vertices() (graph.VertexIterator, error) {
	rr, err := openRecordReader(s.cfg.VertexFile, s.cfg.Lenient, s.cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("vertices: %w", err)
	}
	return &vertexIterator{rr: rr}, nil
}

// Edges implements graph.Source.
func (s *Source) Edges() (graph.EdgeIterator, error) {
	rr, err := openRecordReader(s.cfg.EdgeFile, s.cfg.Lenient, s.cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("edges: %w", err)
	}
	return &edgeIterator{rr: rr}, nil
}
