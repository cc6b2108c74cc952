package condition

import (
	"encoding/json"

	"github.com/cwbudde/algo-condition/dsp/decimate"
	"github.com/cwbudde/algo-condition/dsp/filter/design"
)

// Kind identifies a stage type.
type Kind string

// Built-in stage kinds.
const (
	KindTrendRemoval Kind = "trend-removal"
	KindDownsample   Kind = "downsample"
	KindFilterChain  Kind = "filter-chain"
)

// Stage is one step of a Config.
type Stage interface {
	Kind() Kind
}

// Config is an ordered list of stages. Slice order is execution order.
type Config []Stage

// TrendRemoval subtracts a least-squares polynomial trend from every
// channel.
type TrendRemoval struct {
	// Degree is the polynomial degree: 0 removes the mean, 1 a line.
	Degree int
	// Breakpoints are 0-based sample indices that start a new piece.
	Breakpoints []int
	// Discontinuous fits every piece independently.
	Discontinuous bool
}

// Kind implements Stage.
func (TrendRemoval) Kind() Kind { return KindTrendRemoval }

// Downsample low-pass filters every channel and keeps every Factor-th
// sample. Exactly one of Factor and TargetHz must be set; TargetHz derives
// the factor as round(rate / TargetHz).
type Downsample struct {
	Factor   int
	TargetHz float64
	Filter   decimate.FilterType
}

// Kind implements Stage.
func (Downsample) Kind() Kind { return KindDownsample }

// NamedFilter is one filter of a FilterChain.
type NamedFilter struct {
	Name string
	Spec design.Spec
}

// FilterChain applies its filters in order, each forward and backward, to
// every channel.
type FilterChain struct {
	Filters []NamedFilter
}

// Kind implements Stage.
func (FilterChain) Kind() Kind { return KindFilterChain }

// Unrecognized holds a stage of a kind the parser does not know. Its raw
// parameters are kept for custom handlers.
type Unrecognized struct {
	Name   string
	Params json.RawMessage
}

// Kind implements Stage.
func (u Unrecognized) Kind() Kind { return Kind(u.Name) }
