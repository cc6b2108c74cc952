package design

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-condition/dsp/window"
)

// ParseParams builds a Spec from a name/value design list of the form
//
//	[response, "Name", value, "Name", value, ...]
//
// as decoded from JSON. Names are case-insensitive:
//
//	FilterOrder                        integer order
//	HalfPowerFrequency, CutoffFrequency,
//	PassbandFrequency (suffix 1 or 2)  edge frequencies in Hz
//	CenterFrequency                    notch center in Hz
//	QualityFactor                      notch Q
//	DesignMethod                       "butter" or "cheby1"
//	PassbandRipple                     Chebyshev ripple in dB
//	Window                             FIR window name
//	KaiserBeta                         Kaiser window beta
//
// SampleRate is rejected: the rate is supplied when the filter is designed.
func ParseParams(params []any) (Spec, error) {
	if len(params) == 0 {
		return Spec{}, fmt.Errorf("%w: empty parameter list", ErrInvalidSpec)
	}

	name, ok := params[0].(string)
	if !ok {
		return Spec{}, fmt.Errorf("%w: response must be a string, got %T", ErrInvalidSpec, params[0])
	}

	response, err := ParseResponse(name)
	if err != nil {
		return Spec{}, err
	}

	spec := DefaultSpec(response)

	rest := params[1:]
	if len(rest)%2 != 0 {
		return Spec{}, fmt.Errorf("%w: parameter %v has no value", ErrInvalidSpec, rest[len(rest)-1])
	}

	for i := 0; i < len(rest); i += 2 {
		key, ok := rest[i].(string)
		if !ok {
			return Spec{}, fmt.Errorf("%w: parameter name must be a string, got %T", ErrInvalidSpec, rest[i])
		}

		if err := spec.set(key, rest[i+1]); err != nil {
			return Spec{}, err
		}
	}

	return spec, nil
}

func (s *Spec) set(key string, value any) error {
	switch strings.ToLower(key) {
	case "filterorder":
		v, err := number(key, value)
		if err != nil {
			return err
		}

		if v != math.Trunc(v) || v < 1 {
			return fmt.Errorf("%w: FilterOrder must be a positive integer, got %v", ErrInvalidSpec, v)
		}

		s.Order = int(v)
	case "halfpowerfrequency", "cutofffrequency", "passbandfrequency",
		"halfpowerfrequency1", "cutofffrequency1", "passbandfrequency1",
		"centerfrequency":
		v, err := number(key, value)
		if err != nil {
			return err
		}

		s.Cutoff = v
	case "halfpowerfrequency2", "cutofffrequency2", "passbandfrequency2":
		v, err := number(key, value)
		if err != nil {
			return err
		}

		s.Cutoff2 = v
	case "qualityfactor":
		v, err := number(key, value)
		if err != nil {
			return err
		}

		s.Q = v
	case "passbandripple":
		v, err := number(key, value)
		if err != nil {
			return err
		}

		s.RippleDB = v
	case "kaiserbeta":
		v, err := number(key, value)
		if err != nil {
			return err
		}

		s.KaiserBeta = v
	case "designmethod":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: DesignMethod must be a string, got %T", ErrInvalidSpec, value)
		}

		m, err := ParseMethod(str)
		if err != nil {
			return err
		}

		s.Method = m
	case "window":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: Window must be a string, got %T", ErrInvalidSpec, value)
		}

		w, err := window.ParseType(str)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
		}

		s.Window = w
	case "samplerate":
		return fmt.Errorf("%w: SampleRate is derived from the time vector and cannot be set", ErrInvalidSpec)
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidSpec, key)
	}

	return nil
}

func number(key string, value any) (float64, error) {
	var v float64

	switch n := value.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", ErrInvalidSpec, key, err)
		}
		v = f
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidSpec, key, value)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidSpec, key, v)
	}

	return v, nil
}
