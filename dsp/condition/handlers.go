package condition

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-condition/dsp/core"
	"github.com/cwbudde/algo-condition/dsp/decimate"
	"github.com/cwbudde/algo-condition/dsp/filter/design"
	"github.com/cwbudde/algo-condition/dsp/trend"
)

// stageAs accepts a stage record by value or by non-nil pointer.
func stageAs[T Stage](stage Stage) (T, error) {
	switch s := any(stage).(type) {
	case T:
		return s, nil
	case *T:
		if s != nil {
			return *s, nil
		}
	}

	var zero T

	return zero, fmt.Errorf("%w: %T cannot configure %s", ErrConfiguration, stage, zero.Kind())
}

func removeTrend(_ Env, in Frame, stage Stage) (Frame, error) {
	s, err := stageAs[TrendRemoval](stage)
	if err != nil {
		return Frame{}, err
	}

	opts := []trend.Option{trend.WithBreakpoints(s.Breakpoints...)}
	if s.Discontinuous {
		opts = append(opts, trend.WithDiscontinuous())
	}

	out, err := trend.Remove(in.Signal, s.Degree, opts...)
	if err != nil {
		if errors.Is(err, trend.ErrInvalidDegree) || errors.Is(err, trend.ErrInvalidBreakpoint) {
			return Frame{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}

		return Frame{}, err
	}

	return Frame{Signal: out, Time: slices.Clone(in.Time)}, nil
}

// factor resolves the decimation factor, estimating the sample rate only
// in frequency mode.
func (s Downsample) factor(env Env) (int, error) {
	switch {
	case s.Factor != 0 && s.TargetHz != 0:
		return 0, fmt.Errorf("%w: downsample sets both factor %d and target %v Hz", ErrConfiguration, s.Factor, s.TargetHz)
	case s.Factor != 0:
		if s.Factor < 1 {
			return 0, fmt.Errorf("%w: downsample factor must be >= 1, got %d", ErrConfiguration, s.Factor)
		}

		return s.Factor, nil
	case s.TargetHz != 0:
		if !(s.TargetHz > 0) || math.IsInf(s.TargetHz, 0) {
			return 0, fmt.Errorf("%w: downsample target must be a positive frequency, got %v", ErrConfiguration, s.TargetHz)
		}

		rate, err := env.SampleRate()
		if err != nil {
			return 0, err
		}

		r := math.Round(rate / s.TargetHz)
		if r < 1 {
			return 0, fmt.Errorf("%w: target %v Hz exceeds the sample rate %v Hz", ErrConfiguration, s.TargetHz, rate)
		}

		return int(r), nil
	default:
		return 0, fmt.Errorf("%w: downsample needs a factor or a target frequency", ErrConfiguration)
	}
}

func downsample(env Env, in Frame, stage Stage) (Frame, error) {
	s, err := stageAs[Downsample](stage)
	if err != nil {
		return Frame{}, err
	}

	factor, err := s.factor(env)
	if err != nil {
		return Frame{}, err
	}

	d, err := decimate.New(factor, decimate.WithFilter(s.Filter))
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %w", ErrFilterDesign, err)
	}

	rows := d.OutputLen(env.Samples)
	out := core.NewMatrix(rows, env.Channels)

	var g errgroup.Group
	if env.Workers > 0 {
		g.SetLimit(env.Workers)
	}

	for j := range env.Channels {
		g.Go(func() error {
			y, err := d.Process(in.Signal.Column(j))
			if err != nil {
				return fmt.Errorf("channel %d: %w", j, err)
			}

			out.SetColumn(j, y)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Frame{}, err
	}

	return Frame{Signal: out, Time: resampleTime(in.Time, rows)}, nil
}

// resampleTime spreads n timestamps evenly over the span of t.
func resampleTime(t []float64, n int) []float64 {
	if n == 0 || len(t) == 0 {
		return []float64{}
	}

	return core.Linspace(t[0], t[len(t)-1], n)
}

func filterChain(env Env, in Frame, stage Stage) (Frame, error) {
	s, err := stageAs[FilterChain](stage)
	if err != nil {
		return Frame{}, err
	}

	rate, err := env.SampleRate()
	if err != nil {
		return Frame{}, err
	}

	filters := make([]*design.Filter, len(s.Filters))
	for i, nf := range s.Filters {
		f, err := design.Design(nf.Spec, rate)
		if err != nil {
			return Frame{}, fmt.Errorf("%w: filter %q: %w", ErrFilterDesign, nf.Name, err)
		}

		filters[i] = f
	}

	out := in.Signal.Clone()
	col := make([]float64, env.Samples)

	for j := range env.Channels {
		col = out.ColumnInto(col, j)

		for i, f := range filters {
			col, err = f.ZeroPhase(col)
			if err != nil {
				return Frame{}, fmt.Errorf("filter %q, channel %d: %w", s.Filters[i].Name, j, err)
			}
		}

		out.SetColumn(j, col)
	}

	return Frame{Signal: out, Time: slices.Clone(in.Time)}, nil
}
