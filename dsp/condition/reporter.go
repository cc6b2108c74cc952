package condition

import (
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-condition/internal/monitoring"
)

// Notice describes one processed or skipped stage.
type Notice struct {
	RunID   uuid.UUID
	Index   int
	Kind    Kind
	Elapsed time.Duration
	Skipped bool
	// Rows and Cols are the output dimensions of the stage.
	Rows int
	Cols int
	// SampleRate is the rate the stage ran at, or 0 when it did not use
	// one.
	SampleRate float64
}

// Reporter receives a Notice after every stage. Reporters must not retain
// or modify pipeline data; they cannot alter results.
type Reporter interface {
	Report(n Notice)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(n Notice)

// Report implements Reporter.
func (f ReporterFunc) Report(n Notice) { f(n) }

// LogReporter returns a Reporter that writes one line per notice through
// monitoring.Logf.
func LogReporter() Reporter {
	return ReporterFunc(func(n Notice) {
		if n.Skipped {
			monitoring.Logf("condition: run %s stage %d (%s) skipped: no handler", n.RunID, n.Index, n.Kind)
			return
		}

		if n.SampleRate > 0 {
			monitoring.Logf("condition: run %s stage %d (%s) at %.6g Hz -> %dx%d in %s",
				n.RunID, n.Index, n.Kind, n.SampleRate, n.Rows, n.Cols, n.Elapsed)
			return
		}

		monitoring.Logf("condition: run %s stage %d (%s) -> %dx%d in %s",
			n.RunID, n.Index, n.Kind, n.Rows, n.Cols, n.Elapsed)
	})
}
