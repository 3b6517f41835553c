// Package harness runs probes adaptively until a target measurement window
// or an outer-iteration cap is reached and derives stable per-operation
// latency figures from the noisy wall-clock samples.
package harness

import (
	"fmt"
	"io"
	"os"
	"time"

	"rexbench/internal/schema"
)

// clock is swapped out in tests.
var clock = time.Now

// Probe is the unit of code under measurement. One Run call is one timed
// outer iteration and performs the requested number of primitive
// operations, returning the total observed match count across them.
type Probe interface {
	Run(iterations int) (hits int, err error)
}

// ProbeFunc adapts a plain function to the Probe interface.
type ProbeFunc func(iterations int) (int, error)

func (f ProbeFunc) Run(iterations int) (int, error) { return f(iterations) }

// Options bound a single benchmark's wall time. The window/cap pair is the
// only cancellation mechanism: measurement stops as soon as the accumulated
// time reaches TargetWindow or the outer-iteration count reaches
// MaxOuterIterations, whichever comes first.
type Options struct {
	Warmup             int
	TargetWindow       time.Duration
	MaxOuterIterations int
}

// DefaultOptions mirrors the tuning the suite was calibrated with: a 100ms
// window averages out scheduler jitter on fast probes while the cap keeps
// very slow probes from running unbounded.
func DefaultOptions() Options {
	return Options{
		Warmup:             3,
		TargetWindow:       100 * time.Millisecond,
		MaxOuterIterations: 100_000,
	}
}

// Session accumulates records for one benchmark run. It is owned by the
// caller, passed into each Measure call, and discarded at run end; no state
// is shared across sessions.
type Session struct {
	opts    Options
	records map[string]schema.Record
	diag    io.Writer
}

// NewSession creates a session with the given options. Diagnostics for
// skipped benchmarks go to diag; a nil diag means stderr.
func NewSession(opts Options, diag io.Writer) *Session {
	if opts.Warmup < 0 {
		opts.Warmup = 0
	}
	if opts.MaxOuterIterations < 1 {
		opts.MaxOuterIterations = 1
	}
	if opts.TargetWindow <= 0 {
		// Guarantees at least one timed iteration.
		opts.TargetWindow = time.Nanosecond
	}
	if diag == nil {
		diag = os.Stderr
	}
	return &Session{
		opts:    opts,
		records: make(map[string]schema.Record),
		diag:    diag,
	}
}

// Measure times probe adaptively and records the mean per-primitive-op
// latency under name. internalIterations is the number of primitive
// operations the probe performs per outer call; values below 1 are treated
// as 1.
//
// If requireMatch is set and the probe observes no match during warmup, the
// benchmark is skipped with a diagnostic and the suite continues; one broken
// benchmark never aborts the run.
func (s *Session) Measure(name string, internalIterations int, requireMatch bool, probe Probe) error {
	if internalIterations < 1 {
		internalIterations = 1
	}

	// Warmup runs are discarded from every reported statistic, but they
	// double as the match-presence sanity check.
	warmup := s.opts.Warmup
	if warmup == 0 && requireMatch {
		warmup = 1
	}
	for i := 0; i < warmup; i++ {
		hits, err := probe.Run(internalIterations)
		if err != nil {
			fmt.Fprintf(s.diag, "Warning: benchmark %s skipped: %v\n", name, err)
			return err
		}
		if requireMatch && hits == 0 {
			err := fmt.Errorf("benchmark %s: expected a match but probe found none", name)
			fmt.Fprintf(s.diag, "Warning: %v\n", err)
			return err
		}
	}

	var (
		accumulated time.Duration
		outer       int
	)

	for accumulated < s.opts.TargetWindow && outer < s.opts.MaxOuterIterations {
		start := clock()
		if _, err := probe.Run(internalIterations); err != nil {
			fmt.Fprintf(s.diag, "Warning: benchmark %s skipped: %v\n", name, err)
			return err
		}
		accumulated += clock().Sub(start)
		outer++
	}

	totalOps := int64(outer) * int64(internalIterations)
	meanNs := float64(accumulated.Nanoseconds()) / float64(totalOps)

	s.records[name] = schema.NewRecord(meanNs, totalOps)
	return nil
}

// Record returns the stored record for name, if any.
func (s *Session) Record(name string) (schema.Record, bool) {
	r, ok := s.records[name]
	return r, ok
}

// Len reports how many benchmarks completed in this session.
func (s *Session) Len() int { return len(s.records) }

// ResultSet snapshots the session into an engine-tagged result set.
func (s *Session) ResultSet(engine string) *schema.ResultSet {
	rs := schema.NewResultSet(engine)
	for name, rec := range s.records {
		rs.Results[name] = rec
	}
	return rs
}
