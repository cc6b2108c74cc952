package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-condition/dsp/condition"
	"github.com/cwbudde/algo-condition/dsp/filter/design"
	"github.com/cwbudde/algo-condition/dsp/samplerate"
	"github.com/cwbudde/algo-condition/stats/frequency"
	timestats "github.com/cwbudde/algo-condition/stats/time"
)

// filterRow is the zero-phase response of one filter as designed by a
// filter-chain stage.
type filterRow struct {
	stage    int
	name     string
	response design.Response
	rate     float64
	cutoffDB float64
	nyqDB    float64
}

// filterRows redesigns the filters of every filter-chain stage at the rate
// reported for that stage.
func filterRows(cfg condition.Config, notices []condition.Notice) []filterRow {
	var rows []filterRow

	for _, n := range notices {
		if n.Kind != condition.KindFilterChain || n.SampleRate <= 0 || n.Index >= len(cfg) {
			continue
		}

		var chain condition.FilterChain

		switch s := cfg[n.Index].(type) {
		case condition.FilterChain:
			chain = s
		case *condition.FilterChain:
			if s == nil {
				continue
			}
			chain = *s
		default:
			continue
		}

		for _, nf := range chain.Filters {
			f, err := design.Design(nf.Spec, n.SampleRate)
			if err != nil {
				continue
			}

			rows = append(rows, filterRow{
				stage:    n.Index,
				name:     nf.Name,
				response: f.Spec().Response,
				rate:     n.SampleRate,
				cutoffDB: f.ZeroPhaseDB(f.Spec().Cutoff),
				nyqDB:    f.ZeroPhaseDB(n.SampleRate / 2),
			})
		}
	}

	return rows
}

func formatDB(db float64) string {
	if db < -300 {
		return "< -300"
	}

	return fmt.Sprintf("%.1f", db)
}

func writeSummary(w io.Writer, before, after series, filters []filterRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rateBefore := describeRate(before.time)
	rateAfter := describeRate(after.time)

	fmt.Fprintf(tw, "Samples\t%d -> %d\n", before.signal.Rows(), after.signal.Rows())
	fmt.Fprintf(tw, "Rate\t%s -> %s\n", rateBefore, rateAfter)

	if jitter, err := samplerate.Jitter(before.time); err == nil {
		fmt.Fprintf(tw, "Input jitter\t%.3g\n", jitter)
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Channel\tMean\tRMS\tPeak\tGain [dB]\tDominant [Hz]\n")
	fmt.Fprintf(tw, "-------\t----\t---\t----\t---------\t-------------\n")

	sb := timestats.Channels(before.signal)
	sa := timestats.Channels(after.signal)

	for j := range sb {
		var a timestats.Stats
		if j < len(sa) {
			a = sa[j]
		}

		fmt.Fprintf(tw, "%s\t%.4g -> %.4g\t%.4g -> %.4g\t%.4g -> %.4g\t%.2f\t%s -> %s\n",
			before.channelName(j),
			sb[j].Mean, a.Mean,
			sb[j].RMS, a.RMS,
			sb[j].Peak, a.Peak,
			timestats.GainDB(sb[j], a),
			dominant(before, j), dominant(after, j),
		)
	}

	if len(filters) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "Stage\tFilter\tResponse\tRate [Hz]\tAt cutoff [dB]\tAt Nyquist [dB]\n")
		fmt.Fprintf(tw, "-----\t------\t--------\t---------\t--------------\t---------------\n")

		for _, r := range filters {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.6g\t%s\t%s\n",
				r.stage, r.name, r.response, r.rate, formatDB(r.cutoffDB), formatDB(r.nyqDB))
		}
	}

	return tw.Flush()
}

func describeRate(time []float64) string {
	rate, err := samplerate.Estimate(time)
	if err != nil {
		return "undefined"
	}

	return fmt.Sprintf("%.6g Hz", rate)
}

func dominant(s series, j int) string {
	if j >= s.signal.Cols() {
		return "-"
	}

	rate, err := samplerate.Estimate(s.time)
	if err != nil {
		return "-"
	}

	st, err := frequency.Analyze(s.signal.Column(j), rate)
	if err != nil {
		return "-"
	}

	return fmt.Sprintf("%.4g", st.Dominant)
}
