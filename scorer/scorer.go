// Package scorer computes disruption panels: the disruption, radicalness and
// indegree of every vertex for every cutoff year of a range.
package scorer

import (
	"context"
	"io"
	"runtime"
	"sync/atomic"

	"github.com/ejacobg/edgraph/partition"
	"github.com/ejacobg/edgraph/pipeline"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Config encapsulates the settings for configuring a batch scorer.
type Config struct {
	// The graph to score.
	Graph Graph

	// The destination for the panel rows.
	Output ScoreWriter

	// The range of cutoff years, both inclusive. Only vertices issued in
	// or after FromYear are scored, and only for years they exist in.
	FromYear uint64
	ToYear   uint64

	// The number of workers computing scores in parallel. Defaults to the
	// number of CPUs.
	Workers int

	// A helper for detecting which partition of the vertex ID space is
	// assigned to this instance. Defaults to a single partition.
	PartitionDetector partition.Detector

	// When set, rows that cannot be scored because a citing vertex has no
	// time entry are logged and skipped instead of aborting the run.
	SkipUnknownVertices bool

	// A clock instance for measuring run durations. If not specified, the
	// default wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Graph == nil {
		err = multierror.Append(err, xerrors.Errorf("graph has not been provided"))
	}
	if cfg.Output == nil {
		err = multierror.Append(err, xerrors.Errorf("score output has not been provided"))
	}
	if cfg.FromYear > cfg.ToYear {
		err = multierror.Append(err, xerrors.Errorf("from year %d is after to year %d", cfg.FromYear, cfg.ToYear))
	}
	if cfg.Workers < 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for workers"))
	} else if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.PartitionDetector == nil {
		cfg.PartitionDetector = partition.Fixed{Partition: 0, NumPartitions: 1}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		cfg.Logger = logrus.NewEntry(l)
	}
	return err
}

// Scorer computes a disruption panel for the vertices of a graph.
type Scorer struct {
	cfg     Config
	p       *pipeline.Pipeline
	skipped int64
}

// New creates a new batch scorer instance.
func New(cfg Config) (*Scorer, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("scorer: config validation failed: %w", err)
	}

	s := &Scorer{cfg: cfg}
	s.p = pipeline.New(
		pipeline.FixedWorkerPool(
			newScoreCalculator(cfg.Graph, cfg.SkipUnknownVertices, &s.skipped, cfg.Logger),
			cfg.Workers,
		),
	)
	return s, nil
}

// Run scores every vertex of the assigned partition for every year of the
// configured range. Rows are written to the output in no particular order.
// Run blocks until all rows are written or an error occurs. If ctx expires
// first, Run returns an error and the output holds a partial panel.
func (s *Scorer) Run(ctx context.Context) (*Summary, error) {
	curPartition, numPartitions, err := s.cfg.PartitionDetector.PartitionInfo()
	if err != nil {
		return nil, xerrors.Errorf("scorer: unable to detect partition assignment: %w", err)
	}
	r, err := partition.NewFullRange(numPartitions)
	if err != nil {
		return nil, xerrors.Errorf("scorer: %w", err)
	}
	fromID, toID, err := r.PartitionExtents(curPartition)
	if err != nil {
		return nil, xerrors.Errorf("scorer: %w", err)
	}

	runID := uuid.New()
	logger := s.cfg.Logger.WithFields(logrus.Fields{
		"run_id":    runID.String(),
		"partition": curPartition,
		"from_year": s.cfg.FromYear,
		"to_year":   s.cfg.ToYear,
	})

	src, err := newPanelSource(s.cfg.Graph, runID, fromID, toID, s.cfg.FromYear, s.cfg.ToYear)
	if err != nil {
		return nil, xerrors.Errorf("scorer: %w", err)
	}
	logger.WithField("vertices", len(src.vertices)).Info("starting batch run")

	start := s.cfg.Clock.Now()
	atomic.StoreInt64(&s.skipped, 0)
	sink := &scoreSink{out: s.cfg.Output, summary: newSummaryBuilder()}
	if err = s.p.Process(ctx, src, sink); err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		logger.Warn("batch run interrupted")
		return nil, xerrors.Errorf("scorer: run interrupted: %w", err)
	}

	summary := sink.summary.build(runID)
	summary.Skipped = int(atomic.LoadInt64(&s.skipped))
	summary.Elapsed = s.cfg.Clock.Now().Sub(start)
	lastRunRows.Set(float64(summary.Rows))

	logger.WithFields(logrus.Fields{
		"rows":      summary.Rows,
		"undefined": summary.Undefined,
		"skipped":   summary.Skipped,
		"elapsed":   summary.Elapsed.String(),
	}).Info("completed batch run")
	return summary, nil
}
