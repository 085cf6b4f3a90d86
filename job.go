package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"
)

const (
	defaultFromYear uint64 = 1976
	defaultToYear   uint64 = 2010
)

// scoreJob holds the settings of a batch run. Fields left out of a job file
// keep the values of the matching command-line flags.
type scoreJob struct {
	FromYear    uint64 `yaml:"from_year"`
	ToYear      uint64 `yaml:"to_year"`
	Workers     int    `yaml:"workers"`
	Partition   int    `yaml:"partition"`
	Partitions  int    `yaml:"partitions"`
	Strict      bool   `yaml:"strict"`
	Lenient     bool   `yaml:"lenient"`
	SkipUnknown bool   `yaml:"skip_unknown"`
	Results     string `yaml:"results"`
}

// loadScoreJob builds the job settings for the score command. Flags given
// explicitly on the command line override the job file.
func loadScoreJob(c *cli.Context) (scoreJob, error) {
	job := scoreJob{
		FromYear:    c.Uint64("from-year"),
		ToYear:      c.Uint64("to-year"),
		Workers:     c.Int("workers"),
		Partition:   c.Int("partition"),
		Partitions:  c.Int("partitions"),
		Strict:      c.Bool("strict"),
		Lenient:     c.Bool("lenient"),
		SkipUnknown: c.Bool("skip-unknown"),
		Results:     c.String("results"),
	}

	path := c.String("config")
	if path == "" {
		return job, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return job, fmt.Errorf("read job file: %w", err)
	}
	fromFile := job
	if err = yaml.Unmarshal(data, &fromFile); err != nil {
		return job, fmt.Errorf("parse job file %s: %w", path, err)
	}

	return mergeJob(job, fromFile, c.IsSet), nil
}

// mergeJob returns the job file settings with every field whose flag isSet
// reports as explicitly given replaced by the flag value.
func mergeJob(flags, fromFile scoreJob, isSet func(string) bool) scoreJob {
	merged := fromFile
	if isSet("from-year") {
		merged.FromYear = flags.FromYear
	}
	if isSet("to-year") {
		merged.ToYear = flags.ToYear
	}
	if isSet("workers") {
		merged.Workers = flags.Workers
	}
	if isSet("partition") {
		merged.Partition = flags.Partition
	}
	if isSet("partitions") {
		merged.Partitions = flags.Partitions
	}
	if isSet("strict") {
		merged.Strict = flags.Strict
	}
	if isSet("lenient") {
		merged.Lenient = flags.Lenient
	}
	if isSet("skip-unknown") {
		merged.SkipUnknown = flags.SkipUnknown
	}
	if isSet("results") {
		merged.Results = flags.Results
	}
	return merged
}
