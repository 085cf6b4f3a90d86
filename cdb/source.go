// Package cdb provides a CockroachDB/PostgreSQL backed record source and
// score store.
package cdb

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/ejacobg/edgraph/graph"
	_ "github.com/lib/pq"
)

var (
	// Compile-time check for ensuring Source implements graph.Source.
	_ graph.Source = (*Source)(nil)

	// Records are returned in insertion order so that the last record for
	// a duplicated vertex ID wins when the graph is built.
	vertexQuery = "SELECT id, time FROM vertices ORDER BY seq"
	edgeQuery   = "SELECT citing, cited FROM edges ORDER BY seq"

	insertVertexQuery = "INSERT INTO vertices (id, time) VALUES ($1, $2)"
	insertEdgeQuery   = "INSERT INTO edges (citing, cited) VALUES ($1, $2)"
)

// ErrOutOfRange is returned when an ID or time does not fit the signed
// 64-bit columns of the schema.
var ErrOutOfRange = errors.New("value exceeds the INT8 column range")

// toInt8 converts val for storage in an INT8 column.
func toInt8(name string, val uint64) (int64, error) {
	if val > math.MaxInt64 {
		return 0, fmt.Errorf("%s %d: %w", name, val, ErrOutOfRange)
	}
	return int64(val), nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS vertices (
		seq  SERIAL PRIMARY KEY,
		id   INT8 NOT NULL,
		time INT8 NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS edges (
		seq    SERIAL PRIMARY KEY,
		citing INT8 NOT NULL,
		cited  INT8 NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS disruption_scores (
		vertex      INT8 NOT NULL,
		year        INT8 NOT NULL,
		run_id      UUID NOT NULL,
		vertex_time INT8 NOT NULL,
		disruption  FLOAT8,
		radicalness FLOAT8,
		indegree    INT8 NOT NULL,
		PRIMARY KEY (vertex, year)
	)`,
}

// Source reads vertex and edge records from a CockroachDB/PostgreSQL
// database.
type Source struct {
	db *sql.DB
}

// NewSource returns a Source instance that connects to the database
// specified by dsn and makes sure the required tables exist.
func NewSource(dsn string) (*Source, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	return &Source{db: db}, nil
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	for _, stmt := range schema {
		if _, err = db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return db, nil
}

// Close terminates the connection to the backing database.
func (s *Source) Close() error {
	return s.db.Close()
}

// AddVertex stores a vertex record.
func (s *Source) AddVertex(v graph.Vertex) error {
	id, err := toInt8("vertex id", v.ID)
	if err != nil {
		return fmt.Errorf("add vertex: %w", err)
	}
	t, err := toInt8("vertex time", v.Time)
	if err != nil {
		return fmt.Errorf("add vertex: %w", err)
	}
	if _, err = s.db.Exec(insertVertexQuery, id, t); err != nil {
		return fmt.Errorf("add vertex: %w", err)
	}
	return nil
}

// AddEdge stores an edge record.
func (s *Source) AddEdge(e graph.Edge) error {
	src, err := toInt8("citing id", e.Src)
	if err != nil {
		return fmt.Errorf("add edge: %w", err)
	}
	dst, err := toInt8("cited id", e.Dst)
	if err != nil {
		return fmt.Errorf("add edge: %w", err)
	}
	if _, err = s.db.Exec(insertEdgeQuery, src, dst); err != nil {
		return fmt.Errorf("add edge: %w", err)
	}
	return nil
}

// Vertices implements graph.Source.
func (s *Source) Vertices() (graph.VertexIterator, error) {
	rows, err := s.db.Query(vertexQuery)
	if err != nil {
		return nil, fmt.Errorf("vertices: %w", err)
	}
	return &vertexIterator{rows: rows}, nil
}

// Edges implements graph.Source.
func (s *Source) Edges() (graph.EdgeIterator, error) {
	rows, err := s.db.Query(edgeQuery)
	if err != nil {
		return nil, fmt.Errorf("edges: %w", err)
	}
	return &edgeIterator{rows: rows}, nil
}
