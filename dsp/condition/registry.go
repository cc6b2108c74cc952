package condition

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-condition/dsp/core"
	"github.com/cwbudde/algo-condition/dsp/samplerate"
)

// Frame is the series flowing between stages.
type Frame struct {
	Signal *core.Matrix
	Time   []float64
}

// Env describes the current series to a stage handler.
type Env struct {
	Samples  int
	Channels int
	// Workers bounds per-channel parallelism.
	Workers int

	rate func() (float64, error)
	used *atomic.Bool
}

func newEnv(f Frame, workers int) Env {
	rows, cols := f.Signal.Dims()

	return Env{
		Samples:  rows,
		Channels: cols,
		Workers:  workers,
		rate: sync.OnceValues(func() (float64, error) {
			return samplerate.Estimate(f.Time)
		}),
		used: new(atomic.Bool),
	}
}

// SampleRate returns the rate estimated from the current timestamps. The
// estimate is computed on first use. The error matches
// ErrSampleRateUndefined.
func (e Env) SampleRate() (float64, error) {
	if e.rate == nil {
		return 0, ErrSampleRateUndefined
	}

	if e.used != nil {
		e.used.Store(true)
	}

	return e.rate()
}

// usedRate returns the rate a handler obtained from SampleRate, or 0 when
// it never asked or the rate was undefined.
func (e Env) usedRate() float64 {
	if e.used == nil || !e.used.Load() {
		return 0
	}

	rate, err := e.rate()
	if err != nil {
		return 0
	}

	return rate
}

// Handler executes one stage. It must not modify in and must return a frame
// with as many signal rows as timestamps.
type Handler func(env Env, in Frame, stage Stage) (Frame, error)

// Registry maps stage kinds to handlers. It is not safe for concurrent
// registration; lookups after setup may run concurrently.
type Registry struct {
	handlers map[Kind]Handler
}

var errDuplicateStage = errors.New("condition: duplicate stage kind")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Kind]Handler)}
}

// DefaultRegistry returns a registry with the built-in stage kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(KindTrendRemoval, removeTrend)
	r.MustRegister(KindDownsample, downsample)
	r.MustRegister(KindFilterChain, filterChain)

	return r
}

// Register adds a handler for kind.
func (r *Registry) Register(kind Kind, h Handler) error {
	if kind == "" {
		return errors.New("condition: empty stage kind")
	}

	if h == nil {
		return errors.New("condition: nil handler")
	}

	if _, exists := r.handlers[kind]; exists {
		return fmt.Errorf("%w: %s", errDuplicateStage, kind)
	}

	r.handlers[kind] = h

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(kind Kind, h Handler) {
	if err := r.Register(kind, h); err != nil {
		panic(err.Error())
	}
}

// Lookup returns the handler for kind, or nil.
func (r *Registry) Lookup(kind Kind) Handler {
	return r.handlers[kind]
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int { return len(r.handlers) }
