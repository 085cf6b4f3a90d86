package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var (
	appName = "edgraph"
	appSha  = "populated-at-link-time"
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	app := makeApp(logger)
	if err := app.Run(os.Args); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		os.Exit(1)
	}
}

func makeApp(logger *logrus.Entry) *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Version = appSha
	app.Usage = "compute disruption scores over a citation graph"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:   "verbose",
			EnvVar: "EDGRAPH_VERBOSE",
			Usage:  "Enable debug logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.GlobalBool("verbose") {
			logger.Logger.SetLevel(logrus.DebugLevel)
		}
		return nil
	}

	sourceFlags := []cli.Flag{
		cli.StringFlag{
			Name:   "vertices",
			EnvVar: "EDGRAPH_VERTICES",
			Usage:  "The CSV file with one id,time record per line",
		},
		cli.StringFlag{
			Name:   "edges",
			EnvVar: "EDGRAPH_EDGES",
			Usage:  "The CSV file with one citing,cited record per line",
		},
		cli.StringFlag{
			Name:   "graph-uri",
			EnvVar: "EDGRAPH_GRAPH_URI",
			Usage:  "Load the graph from a database instead of CSV files (supported URIs: postgresql://user@host:26257/edgraph?sslmode=disable)",
		},
		cli.BoolFlag{
			Name:   "lenient",
			EnvVar: "EDGRAPH_LENIENT",
			Usage:  "Skip malformed CSV lines instead of failing",
		},
		cli.BoolFlag{
			Name:   "strict",
			EnvVar: "EDGRAPH_STRICT",
			Usage:  "Reject graphs with dangling edges or citations to later vertices",
		},
	}

	resultsStoreFlag := cli.StringFlag{
		Name:   "results",
		EnvVar: "EDGRAPH_RESULTS",
		Usage:  "The store holding scored results (supported URIs: postgresql://..., es://node1:9200,...,nodeN:9200)",
	}

	app.Commands = []cli.Command{
		{
			Name:  "score",
			Usage: "compute the disruption panel of every vertex for a range of cutoff years",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:   "config",
					EnvVar: "EDGRAPH_CONFIG",
					Usage:  "A YAML job file providing defaults for the scoring flags",
				},
				cli.StringFlag{
					Name:   "results",
					EnvVar: "EDGRAPH_RESULTS",
					Value:  "-",
					Usage:  "Where to write the panel rows (supported values: FILE, - for stdout, postgresql://..., es://node1:9200,...,nodeN:9200)",
				},
				cli.Uint64Flag{
					Name:   "from-year",
					EnvVar: "EDGRAPH_FROM_YEAR",
					Value:  defaultFromYear,
					Usage:  "The first cutoff year; vertices issued earlier are not scored",
				},
				cli.Uint64Flag{
					Name:   "to-year",
					EnvVar: "EDGRAPH_TO_YEAR",
					Value:  defaultToYear,
					Usage:  "The last cutoff year",
				},
				cli.IntFlag{
					Name:   "workers",
					EnvVar: "EDGRAPH_WORKERS",
					Value:  runtime.NumCPU(),
					Usage:  "The number of workers computing scores (defaults to number of CPUs)",
				},
				cli.IntFlag{
					Name:   "partition",
					EnvVar: "EDGRAPH_PARTITION",
					Usage:  "The vertex ID partition assigned to this instance",
				},
				cli.IntFlag{
					Name:   "partitions",
					EnvVar: "EDGRAPH_PARTITIONS",
					Value:  1,
					Usage:  "The number of instances sharing the run",
				},
				cli.BoolFlag{
					Name:   "skip-unknown",
					EnvVar: "EDGRAPH_SKIP_UNKNOWN",
					Usage:  "Skip rows whose citing vertices have no time entry instead of aborting",
				},
			}, sourceFlags...),
			Action: func(c *cli.Context) error {
				return runWithSignals(logger, func(ctx context.Context) error {
					return runScore(ctx, c, logger.WithField("command", "score"))
				})
			},
		},
		{
			Name:      "query",
			Usage:     "print the citations and disruption scores of vertices for a list of years",
			ArgsUsage: "VERTEX_ID [VERTEX_ID...]",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:   "years",
					EnvVar: "EDGRAPH_YEARS",
					Value:  "1990,2000,2010",
					Usage:  "A comma-separated list of cutoff years",
				},
			}, sourceFlags...),
			Action: func(c *cli.Context) error {
				return runQuery(c, os.Stdout, logger.WithField("command", "query"))
			},
		},
		{
			Name:  "serve",
			Usage: "serve read-only graph queries over HTTP",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:   "listen-addr",
					EnvVar: "EDGRAPH_LISTEN_ADDR",
					Value:  ":8080",
					Usage:  "The address to listen for incoming requests",
				},
				cli.Uint64Flag{
					Name:   "default-year",
					EnvVar: "EDGRAPH_DEFAULT_YEAR",
					Value:  defaultToYear,
					Usage:  "The cutoff year used by requests that do not specify one",
				},
			}, sourceFlags...),
			Action: func(c *cli.Context) error {
				return runWithSignals(logger, func(ctx context.Context) error {
					return runServe(ctx, c, logger.WithField("command", "serve"))
				})
			},
		},
		{
			Name:  "top",
			Usage: "print the most disruptive vertices of a year from stored results",
			Flags: []cli.Flag{
				resultsStoreFlag,
				cli.Uint64Flag{
					Name:   "year",
					EnvVar: "EDGRAPH_YEAR",
					Value:  defaultToYear,
					Usage:  "The cutoff year to rank",
				},
				cli.IntFlag{
					Name:   "n",
					EnvVar: "EDGRAPH_TOP_N",
					Value:  10,
					Usage:  "The number of vertices to print",
				},
			},
			Action: func(c *cli.Context) error {
				return runTop(c, os.Stdout, logger.WithField("command", "top"))
			},
		},
		{
			Name:      "lookup",
			Usage:     "print the stored result row of a vertex for a year",
			ArgsUsage: "VERTEX_ID YEAR",
			Flags:     []cli.Flag{resultsStoreFlag},
			Action: func(c *cli.Context) error {
				return runLookup(c, os.Stdout, logger.WithField("command", "lookup"))
			},
		},
		{
			Name:  "import",
			Usage: "copy vertex and edge records from CSV files into a database",
			Flags: sourceFlags,
			Action: func(c *cli.Context) error {
				return runImport(c, logger.WithField("command", "import"))
			},
		},
	}
	return app
}

// runWithSignals runs fn with a context that is cancelled on SIGINT or SIGHUP.
func runWithSignals(logger *logrus.Entry, fn func(context.Context) error) error {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			logger.WithField("signal", s.String()).Infof("shutting down due to signal")
			cancelFn()
		case <-ctx.Done():
		}
	}()

	if err := fn(ctx); err != nil {
		return fmt.Errorf("%s: %w", appName, err)
	}
	logger.Info("shutdown complete")
	return nil
}
