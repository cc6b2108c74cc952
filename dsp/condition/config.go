package condition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/cwbudde/algo-condition/dsp/decimate"
	"github.com/cwbudde/algo-condition/dsp/filter/design"
)

// ParseConfig decodes a JSON configuration. Two forms are accepted:
//
//	{"trend-removal": [1], "downsample": [4], "filter-chain": {...}}
//	[{"downsample": [4]}, {"downsample": [2]}]
//
// Object member order is kept as execution order. The array form allows a
// kind to appear more than once. Parameters per kind:
//
//	trend-removal  [degree], [degree, [breakpoints...]],
//	               [degree, [breakpoints...], "Continuous", bool]
//	downsample     [factor] or ["frequency", hz], optionally followed by
//	               "Filter", "iir" | "fir"
//	filter-chain   {"name": [design list], ...} or [{"name": [design list]}, ...]
//
// A degree may be a number or "constant" / "linear". Design lists are
// documented at design.ParseParams. Unknown kinds decode to Unrecognized.
func ParseConfig(data []byte) (Config, error) {
	cfg := Config{}

	var stageErr error

	err := eachMember(data, func(key string, raw json.RawMessage) error {
		stage, err := ParseStage(Kind(key), raw)
		if err != nil {
			stageErr = &StageError{Index: len(cfg), Kind: Kind(key), Err: err}
			return stageErr
		}

		cfg = append(cfg, stage)

		return nil
	})
	if stageErr != nil {
		return nil, stageErr
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return cfg, nil
}

// ParseStage decodes the raw JSON parameters of one stage of kind.
func ParseStage(kind Kind, raw json.RawMessage) (Stage, error) {
	switch kind {
	case KindTrendRemoval:
		params, err := decodeList(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}

		return parseTrendRemoval(params)
	case KindDownsample:
		params, err := decodeList(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}

		return parseDownsample(params)
	case KindFilterChain:
		return parseFilterChain(raw)
	default:
		return Unrecognized{Name: string(kind), Params: bytes.Clone(raw)}, nil
	}
}

func parseTrendRemoval(params []any) (TrendRemoval, error) {
	var s TrendRemoval

	if len(params) == 0 {
		return s, fmt.Errorf("%w: trend-removal needs a degree", ErrConfiguration)
	}

	switch v := params[0].(type) {
	case string:
		switch strings.ToLower(v) {
		case "constant":
			s.Degree = 0
		case "linear":
			s.Degree = 1
		default:
			return s, fmt.Errorf("%w: unknown trend degree %q", ErrConfiguration, v)
		}
	default:
		n, err := integer(params[0])
		if err != nil || n < 0 {
			return s, fmt.Errorf("%w: trend degree must be a non-negative integer, got %v", ErrConfiguration, params[0])
		}

		s.Degree = n
	}

	rest := params[1:]
	if len(rest) > 0 {
		if list, ok := rest[0].([]any); ok {
			for _, b := range list {
				n, err := integer(b)
				if err != nil {
					return s, fmt.Errorf("%w: breakpoint %v must be an integer sample index", ErrConfiguration, b)
				}

				s.Breakpoints = append(s.Breakpoints, n)
			}

			rest = rest[1:]
		}
	}

	err := eachOption(rest, func(name string, value any) error {
		if !strings.EqualFold(name, "continuous") {
			return fmt.Errorf("%w: unknown trend-removal option %q", ErrConfiguration, name)
		}

		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: Continuous must be a boolean, got %v", ErrConfiguration, value)
		}

		s.Discontinuous = !b

		return nil
	})

	return s, err
}

func parseDownsample(params []any) (Downsample, error) {
	var s Downsample

	if len(params) == 0 {
		return s, fmt.Errorf("%w: downsample needs a factor", ErrConfiguration)
	}

	var rest []any

	if mode, ok := params[0].(string); ok {
		if !strings.EqualFold(mode, "frequency") || len(params) < 2 {
			return s, fmt.Errorf("%w: downsample expects [factor] or [\"frequency\", hz]", ErrConfiguration)
		}

		hz, err := number(params[1])
		if err != nil || !(hz > 0) {
			return s, fmt.Errorf("%w: downsample frequency must be positive, got %v", ErrConfiguration, params[1])
		}

		s.TargetHz = hz
		rest = params[2:]
	} else {
		n, err := integer(params[0])
		if err != nil || n < 1 {
			return s, fmt.Errorf("%w: downsample factor must be an integer >= 1, got %v", ErrConfiguration, params[0])
		}

		s.Factor = n
		rest = params[1:]
	}

	err := eachOption(rest, func(name string, value any) error {
		if !strings.EqualFold(name, "filter") {
			return fmt.Errorf("%w: unknown downsample option %q", ErrConfiguration, name)
		}

		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: Filter must be a string, got %v", ErrConfiguration, value)
		}

		f, err := decimate.ParseFilterType(str)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfiguration, err)
		}

		s.Filter = f

		return nil
	})

	return s, err
}

func parseFilterChain(raw json.RawMessage) (FilterChain, error) {
	var s FilterChain

	err := eachMember(raw, func(name string, value json.RawMessage) error {
		params, err := decodeList(value)
		if err != nil {
			return fmt.Errorf("filter %q: %w", name, err)
		}

		spec, err := design.ParseParams(params)
		if err != nil {
			return fmt.Errorf("filter %q: %w", name, err)
		}

		s.Filters = append(s.Filters, NamedFilter{Name: name, Spec: spec})

		return nil
	})
	if err != nil {
		return FilterChain{}, fmt.Errorf("%w: %w", ErrFilterDesign, err)
	}

	return s, nil
}

// eachMember calls fn for every member of a JSON object in document order,
// or for the single member of every object in a JSON array.
func eachMember(data []byte, fn func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	switch tok {
	case json.Delim('{'):
		if err := readMembers(dec, fn); err != nil {
			return err
		}
	case json.Delim('['):
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			if tok != json.Delim('{') {
				return fmt.Errorf("array elements must be objects, got %v", tok)
			}

			n := 0

			err = readMembers(dec, func(key string, value json.RawMessage) error {
				n++
				if n > 1 {
					return fmt.Errorf("array element has more than one member (%q)", key)
				}

				return fn(key, value)
			})
			if err != nil {
				return err
			}

			if n == 0 {
				return errors.New("array element has no member")
			}
		}

		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	default:
		return fmt.Errorf("expected object or array, got %v", tok)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after configuration")
	}

	return nil
}

// readMembers consumes object members up to and including the closing
// brace.
func readMembers(dec *json.Decoder, fn func(key string, value json.RawMessage) error) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}

		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}

		if err := fn(key, value); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

// decodeList decodes a JSON array, keeping numbers as json.Number.
func decodeList(raw json.RawMessage) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var list []any
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("parameters must be a list: %w", err)
	}

	return list, nil
}

// eachOption walks trailing name/value pairs.
func eachOption(rest []any, fn func(name string, value any) error) error {
	if len(rest)%2 != 0 {
		return fmt.Errorf("%w: option %v has no value", ErrConfiguration, rest[len(rest)-1])
	}

	for i := 0; i < len(rest); i += 2 {
		name, ok := rest[i].(string)
		if !ok {
			return fmt.Errorf("%w: option name must be a string, got %v", ErrConfiguration, rest[i])
		}

		if err := fn(name, rest[i+1]); err != nil {
			return err
		}
	}

	return nil
}

func number(v any) (float64, error) {
	var f float64

	switch n := v.(type) {
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, err
		}
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not finite: %v", v)
	}

	return f, nil
}

func integer(v any) (int, error) {
	f, err := number(v)
	if err != nil {
		return 0, err
	}

	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("not an integer: %v", v)
	}

	return int(f), nil
}
