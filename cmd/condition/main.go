// Command condition runs a conditioning pipeline over a CSV time series.
//
// Usage:
//
//	condition [flags] -stages JSON  < in.csv > out.csv
//	condition [flags] -config stages.json -in in.csv -out out.csv
//
// The first CSV column holds timestamps and every further column one
// channel. A leading row that does not parse as numbers is treated as a
// header and copied to the output.
//
// Examples:
//
//	condition -stages '{"downsample":[4]}' < raw.csv
//	condition -stages '[{"trend-removal":["linear"]},{"filter-chain":{"lp":["lowpassiir","FilterOrder",4,"HalfPowerFrequency",30]}}]' -summary < raw.csv
//	condition -config stages.json -in raw.csv -out clean.csv -v -metrics-file run.prom
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/algo-condition/dsp/condition"
	"github.com/cwbudde/algo-condition/internal/monitoring"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	stages      string
	inPath      string
	outPath     string
	verbose     bool
	strict      bool
	summary     bool
	workers     int
	metricsPath string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("condition", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "JSON stage configuration file")
	fs.StringVar(&o.stages, "stages", "", "inline JSON stage configuration")
	fs.StringVar(&o.inPath, "in", "-", "input CSV file, - for stdin")
	fs.StringVar(&o.outPath, "out", "-", "output CSV file, - for stdout")
	fs.BoolVar(&o.verbose, "v", false, "log one line per stage to stderr")
	fs.BoolVar(&o.strict, "strict", false, "fail on unknown stage kinds instead of skipping them")
	fs.BoolVar(&o.summary, "summary", false, "print per-channel statistics before and after to stderr")
	fs.IntVar(&o.workers, "workers", 0, "channels processed concurrently (0 = GOMAXPROCS)")
	fs.StringVar(&o.metricsPath, "metrics-file", "", "write Prometheus metrics of the run to this file")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: condition [flags]\n\n")
		fmt.Fprintf(stderr, "Runs a signal-conditioning pipeline over a CSV time series.\n")
		fmt.Fprintf(stderr, "Exactly one of -config and -stages is required.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if (o.configPath == "") == (o.stages == "") {
		fs.Usage()
		return o, errors.New("exactly one of -config and -stages is required")
	}

	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		fmt.Fprintf(stderr, "error: %v\n", err)

		return 2
	}

	if err := execute(o, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	return 0
}

func execute(o options, stdin io.Reader, stdout, stderr io.Writer) error {
	raw := []byte(o.stages)
	if o.configPath != "" {
		var err error
		if raw, err = os.ReadFile(o.configPath); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := condition.ParseConfig(raw)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(o.inPath, stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	series, err := readSeries(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	opts := []condition.Option{condition.WithMaxWorkers(o.workers)}

	var (
		reporters []condition.Reporter
		notices   []condition.Notice
	)

	if o.verbose {
		monitoring.SetLogger(log.New(stderr, "", log.LstdFlags).Printf)
		reporters = append(reporters, condition.LogReporter())
	}

	if o.summary {
		reporters = append(reporters, condition.ReporterFunc(func(n condition.Notice) {
			notices = append(notices, n)
		}))
	}

	if len(reporters) > 0 {
		opts = append(opts, condition.WithReporter(condition.ReporterFunc(func(n condition.Notice) {
			for _, r := range reporters {
				r.Report(n)
			}
		})))
	}

	if o.strict {
		opts = append(opts, condition.WithStrictStages())
	}

	var reg *prometheus.Registry
	if o.metricsPath != "" {
		reg = prometheus.NewRegistry()
		opts = append(opts, condition.WithMetrics(reg))
	}

	out, outTime, runErr := condition.New(opts...).Run(series.signal, series.time, cfg)

	if reg != nil {
		if err := prometheus.WriteToTextfile(o.metricsPath, reg); err != nil {
			return errors.Join(runErr, fmt.Errorf("write metrics: %w", err))
		}
	}

	if runErr != nil {
		return runErr
	}

	result := series.with(out, outTime)

	if o.summary {
		if err := writeSummary(stderr, series, result, filterRows(cfg, notices)); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	w, closeOut, err := openOutput(o.outPath, stdout)
	if err != nil {
		return err
	}

	if err := writeSeries(w, result); err != nil {
		_ = closeOut()
		return fmt.Errorf("write output: %w", err)
	}

	return closeOut()
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}

	return f, f.Close, nil
}
