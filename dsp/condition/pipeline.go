package condition

import (
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/algo-condition/dsp/core"
	"github.com/cwbudde/algo-condition/internal/metrics"
)

type config struct {
	registry *Registry
	reporter Reporter
	metrics  *metrics.Registry
	strict   bool
	workers  int
}

// Option configures a Pipeline.
type Option func(*config)

// WithRegistry replaces the built-in stage handlers.
func WithRegistry(r *Registry) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.registry = r
		}
	}
}

// WithReporter receives a Notice after every stage.
func WithReporter(r Reporter) Option {
	return func(cfg *config) {
		cfg.reporter = r
	}
}

// WithMetrics registers the pipeline collectors with reg. Collectors are
// registered once per call, so a registerer can back only one pipeline.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.metrics = metrics.NewRegistry(reg)
		}
	}
}

// WithStrictStages makes stages without a handler fail with
// ErrUnknownStage instead of being skipped.
func WithStrictStages() Option {
	return func(cfg *config) {
		cfg.strict = true
	}
}

// WithMaxWorkers bounds the number of channels processed concurrently.
// Values below 1 select GOMAXPROCS.
func WithMaxWorkers(n int) Option {
	return func(cfg *config) {
		cfg.workers = n
	}
}

func defaultConfig() config {
	return config{}
}

func (c config) finalized() config {
	if c.registry == nil {
		c.registry = DefaultRegistry()
	}

	if c.workers < 1 {
		c.workers = runtime.GOMAXPROCS(0)
	}

	return c
}

// Pipeline executes configurations. It is safe for concurrent use.
type Pipeline struct {
	cfg config
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Pipeline{cfg: cfg.finalized()}
}

// Run applies the stages of cfg in order and returns the resulting signal
// and timestamps. signal and time are not modified. With no recognized
// stage the result equals the input. On error both results are nil.
func (p *Pipeline) Run(signal *core.Matrix, time []float64, cfg Config) (*core.Matrix, []float64, error) {
	out, err := p.run(signal, time, cfg)
	if err != nil {
		p.cfg.metrics.ObserveRun(metrics.OutcomeError, 0)
		return nil, nil, err
	}

	rows, cols := signal.Dims()
	p.cfg.metrics.ObserveRun(metrics.OutcomeOK, rows*cols)

	return out.Signal, out.Time, nil
}

func (p *Pipeline) run(signal *core.Matrix, ts []float64, cfg Config) (Frame, error) {
	if signal == nil {
		return Frame{}, fmt.Errorf("%w: nil signal", ErrDimensionMismatch)
	}

	if signal.Rows() != len(ts) {
		return Frame{}, fmt.Errorf("%w: %d rows, %d timestamps", ErrDimensionMismatch, signal.Rows(), len(ts))
	}

	frame := Frame{Signal: signal.Clone(), Time: slices.Clone(ts)}
	if frame.Time == nil {
		frame.Time = []float64{}
	}

	runID := uuid.New()

	for i, stage := range cfg {
		if stage == nil {
			return Frame{}, &StageError{Index: i, Err: fmt.Errorf("%w: nil stage", ErrConfiguration)}
		}

		kind := stage.Kind()

		h := p.cfg.registry.Lookup(kind)
		if h == nil {
			if p.cfg.strict {
				p.cfg.metrics.ObserveStage(string(kind), metrics.OutcomeError, 0)
				return Frame{}, &StageError{Index: i, Kind: kind, Err: ErrUnknownStage}
			}

			p.cfg.metrics.ObserveStage(string(kind), metrics.OutcomeSkipped, 0)
			p.report(Notice{RunID: runID, Index: i, Kind: kind, Skipped: true, Rows: frame.Signal.Rows(), Cols: frame.Signal.Cols()})

			continue
		}

		start := time.Now()

		env := newEnv(frame, p.cfg.workers)

		next, err := h(env, frame, stage)
		if err == nil {
			err = checkFrame(next)
		}

		elapsed := time.Since(start)

		if err != nil {
			p.cfg.metrics.ObserveStage(string(kind), metrics.OutcomeError, elapsed.Seconds())
			return Frame{}, &StageError{Index: i, Kind: kind, Err: err}
		}

		p.cfg.metrics.ObserveStage(string(kind), metrics.OutcomeOK, elapsed.Seconds())

		frame = next
		rows, cols := frame.Signal.Dims()
		p.report(Notice{
			RunID:      runID,
			Index:      i,
			Kind:       kind,
			Elapsed:    elapsed,
			Rows:       rows,
			Cols:       cols,
			SampleRate: env.usedRate(),
		})
	}

	return frame, nil
}

func checkFrame(f Frame) error {
	if f.Signal == nil {
		return fmt.Errorf("%w: handler returned nil signal", ErrDimensionMismatch)
	}

	if f.Signal.Rows() != len(f.Time) {
		return fmt.Errorf("%w: handler returned %d rows, %d timestamps", ErrDimensionMismatch, f.Signal.Rows(), len(f.Time))
	}

	return nil
}

func (p *Pipeline) report(n Notice) {
	if p.cfg.reporter != nil {
		p.cfg.reporter.Report(n)
	}
}

// Run applies cfg with a default Pipeline.
func Run(signal *core.Matrix, time []float64, cfg Config) (*core.Matrix, []float64, error) {
	return New().Run(signal, time, cfg)
}
