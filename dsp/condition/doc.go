// Package condition runs an ordered chain of conditioning stages over a
// multichannel time series.
//
// A [Config] lists stages in execution order. Before every stage the
// pipeline re-derives the number of samples, the number of channels and the
// sample rate of the current series, so a stage always sees the output of
// its predecessor:
//
//	cfg := condition.Config{
//		condition.TrendRemoval{Degree: trend.Linear},
//		condition.Downsample{Factor: 4},
//		condition.FilterChain{Filters: []condition.NamedFilter{{Name: "lp", Spec: spec}}},
//	}
//	out, outTime, err := condition.Run(signal, time, cfg)
//
// Three stage kinds are built in: "trend-removal", "downsample" and
// "filter-chain". Stages whose kind has no registered handler are skipped
// unless the pipeline is built with [WithStrictStages]. [ParseConfig] reads
// the same configuration from JSON.
//
// Every stage returns new values; the input matrix and time vector are never
// modified.
package condition
