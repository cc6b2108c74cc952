package condition

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-condition/dsp/samplerate"
)

var (
	// ErrDimensionMismatch indicates that the number of signal rows and
	// timestamps differ.
	ErrDimensionMismatch = errors.New("condition: signal rows and time length differ")
	// ErrConfiguration indicates malformed stage parameters.
	ErrConfiguration = errors.New("condition: invalid stage configuration")
	// ErrFilterDesign indicates that a filter of a filter chain could not be
	// parsed or designed.
	ErrFilterDesign = errors.New("condition: filter design failed")
	// ErrSampleRateUndefined indicates that a stage needed the sample rate
	// but the timestamps do not define one.
	ErrSampleRateUndefined = samplerate.ErrUndefined
	// ErrUnknownStage is returned in strict mode for stages without a
	// registered handler.
	ErrUnknownStage = errors.New("condition: unknown stage kind")
)

// StageError reports which stage of a configuration failed.
type StageError struct {
	Index int
	Kind  Kind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("condition: stage %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
