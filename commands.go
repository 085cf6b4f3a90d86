package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/ejacobg/edgraph/cdb"
	"github.com/ejacobg/edgraph/citation"
	"github.com/ejacobg/edgraph/csvio"
	"github.com/ejacobg/edgraph/elasticsearch"
	"github.com/ejacobg/edgraph/graph"
	"github.com/ejacobg/edgraph/httpapi"
	"github.com/ejacobg/edgraph/partition"
	"github.com/ejacobg/edgraph/scorer"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func runScore(ctx context.Context, c *cli.Context, logger *logrus.Entry) error {
	job, err := loadScoreJob(c)
	if err != nil {
		return err
	}

	g, err := loadGraph(c, job.Lenient, job.Strict, logger)
	if err != nil {
		return err
	}

	sink, err := getScoreSink(job.Results, os.Stdout, logger)
	if err != nil {
		return err
	}

	s, err := scorer.New(scorer.Config{
		Graph:               g,
		Output:              sink,
		FromYear:            job.FromYear,
		ToYear:              job.ToYear,
		Workers:             job.Workers,
		PartitionDetector:   partition.Fixed{Partition: job.Partition, NumPartitions: job.Partitions},
		SkipUnknownVertices: job.SkipUnknown,
		Logger:              logger.WithField("service", "scorer"),
	})
	if err != nil {
		_ = sink.Close()
		return err
	}

	summary, err := s.Run(ctx)
	if closeErr := sink.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	for _, year := range summary.Years {
		logger.WithFields(logrus.Fields{
			"year":      year.Year,
			"rows":      year.Rows,
			"undefined": year.Undefined,
			"mean":      year.Mean,
			"min":       year.Min,
			"max":       year.Max,
		}).Info("year summary")
	}
	return nil
}

func runQuery(c *cli.Context, out io.Writer, logger *logrus.Entry) error {
	if c.NArg() == 0 {
		return fmt.Errorf("query: at least one vertex ID must be specified")
	}
	vertices := make([]uint64, 0, c.NArg())
	for _, arg := range c.Args() {
		v, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("query: invalid vertex ID %q", arg)
		}
		vertices = append(vertices, v)
	}
	years, err := parseYears(c.String("years"))
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	g, err := loadGraph(c, c.Bool("lenient"), c.Bool("strict"), logger)
	if err != nil {
		return err
	}
	return printQuery(out, g, vertices, years)
}

// printQuery writes the citing vertices and the panel row of every vertex
// for every year.
func printQuery(out io.Writer, g httpapi.Graph, vertices, years []uint64) error {
	for _, v := range vertices {
		for _, year := range years {
			citing, err := g.Citing(v, year)
			if err != nil {
				return err
			}
			score, err := scorer.Measure(g, v, year)
			if err != nil {
				return err
			}
			if _, err = fmt.Fprintf(out, "%s citing=%v\n", formatRow(score), citing); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatRow renders a panel row for the query commands.
func formatRow(score *graph.Score) string {
	disruption, radicalness := csvio.Undefined, csvio.Undefined
	if score.Defined {
		disruption = strconv.FormatFloat(score.Disruption, 'g', -1, 64)
		radicalness = strconv.FormatFloat(score.Radicalness, 'g', -1, 64)
	}
	return fmt.Sprintf("vertex=%d time=%d year=%d indegree=%d disruption=%s radicalness=%s",
		score.Vertex, score.VertexTime, score.Year, score.Indegree, disruption, radicalness)
}

func parseYears(list string) ([]uint64, error) {
	var years []uint64
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		year, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", tok)
		}
		years = append(years, year)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no years specified")
	}
	return years, nil
}

func runServe(ctx context.Context, c *cli.Context, logger *logrus.Entry) error {
	g, err := loadGraph(c, c.Bool("lenient"), c.Bool("strict"), logger)
	if err != nil {
		return err
	}

	svc, err := httpapi.NewService(httpapi.Config{
		Graph:       g,
		ListenAddr:  c.String("listen-addr"),
		DefaultYear: c.Uint64("default-year"),
		Logger:      logger.WithField("service", "query-api"),
	})
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func runImport(c *cli.Context, logger *logrus.Entry) error {
	if c.String("graph-uri") == "" {
		return fmt.Errorf("import: target database must be specified with --graph-uri")
	}
	src, err := csvio.NewSource(csvio.Config{
		VertexFile: c.String("vertices"),
		EdgeFile:   c.String("edges"),
		Lenient:    c.Bool("lenient"),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	db, err := cdb.NewSource(c.String("graph-uri"))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	numVertices, numEdges, err := copyRecords(src, db)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"vertices": numVertices,
		"edges":    numEdges,
	}).Info("import complete")
	return nil
}

type recordStore interface {
	AddVertex(v graph.Vertex) error
	AddEdge(e graph.Edge) error
}

// copyRecords streams all records of src into dst.
func copyRecords(src graph.Source, dst recordStore) (int, int, error) {
	vIt, err := src.Vertices()
	if err != nil {
		return 0, 0, err
	}
	var numVertices int
	for vIt.Next() {
		if err = dst.AddVertex(*vIt.Vertex()); err != nil {
			_ = vIt.Close()
			return numVertices, 0, err
		}
		numVertices++
	}
	if err = vIt.Error(); err != nil {
		_ = vIt.Close()
		return numVertices, 0, err
	}
	if err = vIt.Close(); err != nil {
		return numVertices, 0, err
	}

	eIt, err := src.Edges()
	if err != nil {
		return numVertices, 0, err
	}
	var numEdges int
	for eIt.Next() {
		if err = dst.AddEdge(*eIt.Edge()); err != nil {
			_ = eIt.Close()
			return numVertices, numEdges, err
		}
		numEdges++
	}
	if err = eIt.Error(); err != nil {
		_ = eIt.Close()
		return numVertices, numEdges, err
	}
	return numVertices, numEdges, eIt.Close()
}

// loadGraph builds the citation graph from the CSV files or database given
// on the command line.
func loadGraph(c *cli.Context, lenient, strict bool, logger *logrus.Entry) (*citation.Graph, error) {
	src, closeFn, err := getGraphSource(c, lenient, logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeFn() }()

	g, err := citation.Load(src)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"vertices": g.NumVertices(),
		"edges":    g.NumEdges(),
	}).Info("loaded citation graph")

	if strict {
		if err = g.Validate(); err != nil {
			return nil, fmt.Errorf("graph validation failed: %w", err)
		}
	}
	return g, nil
}

func getGraphSource(c *cli.Context, lenient bool, logger *logrus.Entry) (graph.Source, func() error, error) {
	graphURI := c.String("graph-uri")
	if graphURI == "" {
		src, err := csvio.NewSource(csvio.Config{
			VertexFile: c.String("vertices"),
			EdgeFile:   c.String("edges"),
			Lenient:    lenient,
			Logger:     logger,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using CSV graph source")
		return src, func() error { return nil }, nil
	}

	uri, err := url.Parse(graphURI)
	if err != nil {
		return nil, nil, fmt.Errorf("could not parse graph URI: %w", err)
	}

	switch uri.Scheme {
	case "postgresql":
		logger.Info("using CDB graph source")
		src, err := cdb.NewSource(graphURI)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported graph URI scheme: %q", uri.Scheme)
	}
}

type scoreSink interface {
	scorer.ScoreWriter
	Close() error
}

type esSink struct {
	*elasticsearch.ScoreIndexer
}

func (esSink) Close() error { return nil }

// stdoutWriter hides the Close method of the process output so that
// closing the score writer only flushes it.
type stdoutWriter struct {
	io.Writer
}

func getScoreSink(results string, stdout io.Writer, logger *logrus.Entry) (scoreSink, error) {
	if results == "" {
		return nil, fmt.Errorf("results destination must be specified with --results")
	}
	if results == "-" {
		logger.Info("writing CSV results to stdout")
		return csvio.NewScoreWriter(stdoutWriter{Writer: stdout}), nil
	}

	uri, err := url.Parse(results)
	if err != nil || uri.Scheme == "" {
		f, err := os.Create(results)
		if err != nil {
			return nil, fmt.Errorf("could not create results file: %w", err)
		}
		logger.WithField("file", results).Info("writing CSV results")
		return csvio.NewScoreWriter(f), nil
	}

	switch uri.Scheme {
	case "postgresql":
		logger.Info("using CDB score store")
		store, err := cdb.NewScoreStore(results)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "es":
		nodes := strings.Split(uri.Host, ",")
		for i := 0; i < len(nodes); i++ {
			nodes[i] = "http://" + nodes[i]
		}
		logger.Info("using ES score sink")
		idx, err := elasticsearch.NewScoreIndexer(nodes, false)
		if err != nil {
			return nil, err
		}
		return esSink{ScoreIndexer: idx}, nil
	default:
		return nil, fmt.Errorf("unsupported results URI scheme: %q", uri.Scheme)
	}
}

// scoreReader is implemented by result stores that can look up stored rows.
type scoreReader interface {
	FindScore(vertex, year uint64) (*graph.Score, error)
	MostDisruptive(year uint64, n int) ([]*graph.Score, error)
}

var (
	_ scoreReader = (*cdb.ScoreStore)(nil)
	_ scoreReader = (*elasticsearch.ScoreIndexer)(nil)
)

func getScoreReader(results string, logger *logrus.Entry) (scoreReader, func() error, error) {
	uri, err := url.Parse(results)
	if err != nil {
		return nil, nil, fmt.Errorf("could not parse results URI: %w", err)
	}

	switch uri.Scheme {
	case "postgresql":
		logger.Info("using CDB score store")
		store, err := cdb.NewScoreStore(results)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "es":
		nodes := strings.Split(uri.Host, ",")
		for i := 0; i < len(nodes); i++ {
			nodes[i] = "http://" + nodes[i]
		}
		logger.Info("using ES score sink")
		idx, err := elasticsearch.NewScoreIndexer(nodes, false)
		if err != nil {
			return nil, nil, err
		}
		return idx, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported results URI scheme for lookups: %q", uri.Scheme)
	}
}

func runTop(c *cli.Context, out io.Writer, logger *logrus.Entry) error {
	if c.Int("n") <= 0 {
		return fmt.Errorf("top: n must be positive")
	}
	reader, closeFn, err := getScoreReader(c.String("results"), logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	return printTop(out, reader, c.Uint64("year"), c.Int("n"))
}

// printTop writes the n rows of year with the highest disruption.
func printTop(out io.Writer, reader scoreReader, year uint64, n int) error {
	scores, err := reader.MostDisruptive(year, n)
	if err != nil {
		return err
	}
	for rank, score := range scores {
		if _, err = fmt.Fprintf(out, "rank=%d %s\n", rank+1, formatRow(score)); err != nil {
			return err
		}
	}
	return nil
}

func runLookup(c *cli.Context, out io.Writer, logger *logrus.Entry) error {
	if c.NArg() != 2 {
		return fmt.Errorf("lookup: expected VERTEX_ID and YEAR arguments")
	}
	vertex, err := strconv.ParseUint(c.Args().Get(0), 10, 64)
	if err != nil {
		return fmt.Errorf("lookup: invalid vertex ID %q", c.Args().Get(0))
	}
	year, err := strconv.ParseUint(c.Args().Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("lookup: invalid year %q", c.Args().Get(1))
	}

	reader, closeFn, err := getScoreReader(c.String("results"), logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	return printLookup(out, reader, vertex, year)
}

// printLookup writes the stored row of a vertex for a year.
func printLookup(out io.Writer, reader scoreReader, vertex, year uint64) error {
	score, err := reader.FindScore(vertex, year)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s run=%s\n", formatRow(score), score.RunID)
	return err
}
