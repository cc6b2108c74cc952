package design

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-condition/dsp/window"
)

// Errors returned by Design and ParseParams.
var (
	ErrInvalidSpec = errors.New("design: invalid filter specification")
	ErrUnstable    = errors.New("design: unstable filter")
)

// Response selects the kind of filter Design builds.
type Response int

const (
	ResponseLowpassIIR Response = iota + 1
	ResponseHighpassIIR
	ResponseBandpassIIR
	ResponseLowpassFIR
	ResponseHighpassFIR
	ResponseBandpassFIR
	ResponseBandstopFIR
	ResponseNotch
)

var responseNames = map[Response]string{
	ResponseLowpassIIR:  "lowpassiir",
	ResponseHighpassIIR: "highpassiir",
	ResponseBandpassIIR: "bandpassiir",
	ResponseLowpassFIR:  "lowpassfir",
	ResponseHighpassFIR: "highpassfir",
	ResponseBandpassFIR: "bandpassfir",
	ResponseBandstopFIR: "bandstopfir",
	ResponseNotch:       "notch",
}

func (r Response) String() string {
	if name, ok := responseNames[r]; ok {
		return name
	}

	return fmt.Sprintf("response(%d)", int(r))
}

// IsFIR reports whether r is realized with FIR taps.
func (r Response) IsFIR() bool {
	switch r {
	case ResponseLowpassFIR, ResponseHighpassFIR, ResponseBandpassFIR, ResponseBandstopFIR:
		return true
	default:
		return false
	}
}

// band reports whether r needs two edge frequencies.
func (r Response) band() bool {
	switch r {
	case ResponseBandpassIIR, ResponseBandpassFIR, ResponseBandstopFIR:
		return true
	default:
		return false
	}
}

// ParseResponse maps a case-insensitive response name to its Response.
func ParseResponse(name string) (Response, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for r, s := range responseNames {
		if s == n {
			return r, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown response %q", ErrInvalidSpec, name)
}

// Method selects the IIR prototype.
type Method int

const (
	MethodButter Method = iota
	MethodCheby1
)

func (m Method) String() string {
	switch m {
	case MethodButter:
		return "butter"
	case MethodCheby1:
		return "cheby1"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod maps "butter" or "cheby1" (case-insensitive) to a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "butter", "butterworth":
		return MethodButter, nil
	case "cheby1", "chebyshev1":
		return MethodCheby1, nil
	default:
		return 0, fmt.Errorf("%w: unknown design method %q", ErrInvalidSpec, name)
	}
}

// Defaults applied by Design for unset Spec fields.
const (
	DefaultRippleDB = 1.0
	DefaultNotchQ   = 10.0
)

// Spec describes one filter independent of the sample rate. Frequencies are
// in Hz.
//
// Cutoff is the -3 dB point of a Butterworth design, the passband edge of a
// Chebyshev design, the -6 dB point of a windowed-sinc design and the center
// of a notch. Band responses use Cutoff as the lower and Cutoff2 as the upper
// edge.
type Spec struct {
	Response Response
	Order    int
	Cutoff   float64
	Cutoff2  float64

	// Method and RippleDB apply to IIR responses.
	Method   Method
	RippleDB float64

	// Q applies to notch filters.
	Q float64

	// Window and KaiserBeta apply to FIR responses.
	Window     window.Type
	KaiserBeta float64
}

// DefaultSpec returns a Spec for response with the remaining fields at
// their defaults: Butterworth, Hamming window.
func DefaultSpec(response Response) Spec {
	return Spec{
		Response:   response,
		Method:     MethodButter,
		Window:     window.TypeHamming,
		KaiserBeta: window.DefaultKaiserBeta,
	}
}

func (s Spec) finalized() Spec {
	if s.RippleDB == 0 {
		s.RippleDB = DefaultRippleDB
	}

	if s.Q == 0 {
		s.Q = DefaultNotchQ
	}

	if s.KaiserBeta == 0 {
		s.KaiserBeta = window.DefaultKaiserBeta
	}

	return s
}

// validate checks s against the sample rate.
func (s Spec) validate(sampleRate float64) error {
	if _, ok := responseNames[s.Response]; !ok {
		return fmt.Errorf("%w: response not set", ErrInvalidSpec)
	}

	if _, ok := normalizedW0(s.Cutoff, sampleRate); !ok {
		return fmt.Errorf("%w: %s frequency %v Hz outside (0, %v)", ErrInvalidSpec, s.Response, s.Cutoff, sampleRate/2)
	}

	if s.Response.band() {
		if _, ok := normalizedW0(s.Cutoff2, sampleRate); !ok {
			return fmt.Errorf("%w: %s upper frequency %v Hz outside (0, %v)", ErrInvalidSpec, s.Response, s.Cutoff2, sampleRate/2)
		}

		if s.Cutoff >= s.Cutoff2 {
			return fmt.Errorf("%w: %s band edges %v >= %v", ErrInvalidSpec, s.Response, s.Cutoff, s.Cutoff2)
		}
	}

	switch {
	case s.Response == ResponseNotch:
		if !(s.Q > 0) {
			return fmt.Errorf("%w: notch quality factor must be > 0, got %v", ErrInvalidSpec, s.Q)
		}
	case s.Order < 1:
		return fmt.Errorf("%w: %s order must be >= 1, got %d", ErrInvalidSpec, s.Response, s.Order)
	case s.Response == ResponseBandpassIIR && s.Order%2 != 0:
		return fmt.Errorf("%w: bandpass IIR order must be even, got %d", ErrInvalidSpec, s.Order)
	}

	if !s.Response.IsFIR() && s.Method == MethodCheby1 && !(s.RippleDB > 0) {
		return fmt.Errorf("%w: passband ripple must be > 0 dB, got %v", ErrInvalidSpec, s.RippleDB)
	}

	if s.KaiserBeta < 0 {
		return fmt.Errorf("%w: kaiser beta must be >= 0, got %v", ErrInvalidSpec, s.KaiserBeta)
	}

	return nil
}
