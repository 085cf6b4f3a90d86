// Package httpapi exposes read-only queries over a loaded citation graph as
// a JSON HTTP API.
package httpapi

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/ejacobg/edgraph/scorer"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Graph is implemented by objects that can answer citation queries.
type Graph interface {
	scorer.Graph

	// Cited returns the vertices that v cites.
	Cited(v uint64) ([]uint64, error)

	// Citing returns the vertices that cite v up to endTime.
	Citing(v, endTime uint64) ([]uint64, error)
}

// Config encapsulates the settings for configuring the query API service.
type Config struct {
	// The graph to query.
	Graph Graph

	// The address to listen for incoming requests.
	ListenAddr string

	// The cutoff year used when a request does not provide one.
	DefaultYear uint64

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Graph == nil {
		err = multierror.Append(err, xerrors.Errorf("graph has not been provided"))
	}
	if cfg.ListenAddr == "" {
		err = multierror.Append(err, xerrors.Errorf("listen address has not been specified"))
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		cfg.Logger = logrus.NewEntry(l)
	}
	return err
}

// Service serves the query API.
type Service struct {
	cfg    Config
	router *mux.Router
}

// NewService creates a new query API service instance with the specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("query API service: config validation failed: %w", err)
	}

	svc := &Service{
		cfg:    cfg,
		router: mux.NewRouter(),
	}

	api := svc.router.PathPrefix("/api/v1").Subrouter()
	api.Use(svc.instrument)
	api.HandleFunc("/vertices/{id:[0-9]+}", svc.renderVertex).Methods("GET")
	api.HandleFunc("/vertices/{id:[0-9]+}/cited", svc.renderCited).Methods("GET")
	api.HandleFunc("/vertices/{id:[0-9]+}/citing", svc.renderCiting).Methods("GET")
	api.HandleFunc("/vertices/{id:[0-9]+}/disruption", svc.renderDisruption).Methods("GET")
	api.HandleFunc("/vertices/{id:[0-9]+}/timeline", svc.renderTimeline).Methods("GET")
	svc.router.NotFoundHandler = http.HandlerFunc(svc.renderNotFound)

	svc.router.Handle("/metrics", promhttp.Handler())
	return svc, nil
}

// Run serves requests until ctx expires.
func (svc *Service) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", svc.cfg.ListenAddr)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	srv := &http.Server{
		Addr:    svc.cfg.ListenAddr,
		Handler: svc.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancelFn := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelFn()
		_ = srv.Shutdown(shutdownCtx)
	}()

	svc.cfg.Logger.WithField("addr", svc.cfg.ListenAddr).Info("listening for incoming requests")
	if err = srv.Serve(l); err == http.ErrServerClosed {
		err = nil
	}
	return err
}

// ServeHTTP implements http.Handler.
func (svc *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.router.ServeHTTP(w, r)
}
