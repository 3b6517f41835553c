package harness

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances a fixed amount per reading, making the adaptive loop
// fully deterministic.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func withFakeClock(t *testing.T, step time.Duration) {
	t.Helper()
	fc := &fakeClock{now: time.Unix(0, 0), step: step}
	old := clock
	clock = fc.Now
	t.Cleanup(func() { clock = old })
}

type countingProbe struct {
	calls int
	hits  int
	err   error
}

func (p *countingProbe) Run(iterations int) (int, error) {
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	return p.hits * iterations, nil
}

func TestMeasureRecordsMeanLatency(t *testing.T) {
	// The clock advances 500µs per reading and Measure reads it twice per
	// outer iteration, so each outer iteration appears to take 500µs.
	withFakeClock(t, 500*time.Microsecond)

	s := NewSession(Options{Warmup: 2, TargetWindow: 10 * time.Millisecond, MaxOuterIterations: 100_000}, &bytes.Buffer{})
	p := &countingProbe{hits: 1}

	require.NoError(t, s.Measure("literal_match_short", 100, true, p))

	rec, ok := s.Record("literal_match_short")
	require.True(t, ok)

	// 20 outer iterations of 500µs fill the 10ms window; 100 internal ops
	// per outer call gives 2000 total ops at a 5000ns mean.
	assert.Equal(t, int64(2000), rec.Iterations)
	assert.InDelta(t, 10_000_000.0/2000.0, rec.TimeNs, 1e-9)
	assert.InDelta(t, rec.TimeNs/1e6, rec.TimeMs, 1e-12)
	// 2 warmup calls + 20 measured.
	assert.Equal(t, 22, p.calls)
}

func TestMeasureRespectsIterationCap(t *testing.T) {
	withFakeClock(t, time.Nanosecond)

	s := NewSession(Options{Warmup: 0, TargetWindow: time.Hour, MaxOuterIterations: 50}, &bytes.Buffer{})
	p := &countingProbe{hits: 1}

	require.NoError(t, s.Measure("anchor_start", 1, false, p))

	rec, _ := s.Record("anchor_start")
	assert.Equal(t, int64(50), rec.Iterations)
	assert.Equal(t, 50, p.calls)
}

func TestLargerWindowNeverFewerIterations(t *testing.T) {
	run := func(window time.Duration) int64 {
		withFakeClock(t, 250*time.Microsecond)
		s := NewSession(Options{Warmup: 0, TargetWindow: window, MaxOuterIterations: 100_000}, &bytes.Buffer{})
		require.NoError(t, s.Measure("range_lowercase", 1, false, &countingProbe{hits: 1}))
		rec, _ := s.Record("range_lowercase")
		return rec.Iterations
	}

	small := run(5 * time.Millisecond)
	large := run(50 * time.Millisecond)
	assert.GreaterOrEqual(t, large, small)
}

func TestRequiredMatchFailureSkipsOnlyThatBenchmark(t *testing.T) {
	withFakeClock(t, time.Microsecond)

	var diag bytes.Buffer
	s := NewSession(Options{Warmup: 1, TargetWindow: time.Millisecond, MaxOuterIterations: 10}, &diag)

	err := s.Measure("literal_match_long", 100, true, &countingProbe{hits: 0})
	require.Error(t, err)
	assert.Contains(t, diag.String(), "literal_match_long")

	_, ok := s.Record("literal_match_long")
	assert.False(t, ok)

	// The session keeps working for subsequent benchmarks.
	require.NoError(t, s.Measure("anchor_end", 100, true, &countingProbe{hits: 1}))
	assert.Equal(t, 1, s.Len())
}

func TestProbeErrorIsContained(t *testing.T) {
	withFakeClock(t, time.Microsecond)

	var diag bytes.Buffer
	s := NewSession(DefaultOptions(), &diag)

	boom := errors.New("pattern failed to compile")
	err := s.Measure("group_quantified", 50, false, &countingProbe{err: boom})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, diag.String(), "group_quantified")
	assert.Equal(t, 0, s.Len())
}

func TestResultSetSnapshot(t *testing.T) {
	withFakeClock(t, time.Microsecond)

	s := NewSession(Options{Warmup: 0, TargetWindow: 10 * time.Microsecond, MaxOuterIterations: 4}, &bytes.Buffer{})
	require.NoError(t, s.Measure("match_all_simple", 10, false, &countingProbe{hits: 3}))

	rs := s.ResultSet("go-regexp")
	assert.Equal(t, "go-regexp", rs.Engine)
	assert.NotEmpty(t, rs.Timestamp)
	assert.Contains(t, rs.Results, "match_all_simple")
}

func TestInternalIterationRules(t *testing.T) {
	cases := map[string]int{
		"literal_match_short":       100,
		"literal_match_long":        100,
		"wildcard_match_any":        50,
		"quantifier_zero_or_more":   50,
		"range_digits":              50,
		"anchor_start":              100,
		"alternation_simple":        50,
		"alternation_common_prefix": 1,
		"group_alternation":         50,
		"match_all_pattern":         10,
		"complex_email_extraction":  2,
		"complex_number_extraction": 25,
		"simd_alphanumeric_large":   10,
		"literal_prefix_medium":     1,
		"required_literal_short":    1,
		"no_literal_baseline":       1,
		"something_unknown":         1,
	}

	for name, want := range cases {
		assert.Equal(t, want, InternalIterations(name), name)
	}
}

func TestFirstMatchingRuleWins(t *testing.T) {
	rules := []IterationRule{
		{Prefix: "a_specific_case", Iterations: 7},
		{Prefix: "a_", Iterations: 3},
	}
	assert.Equal(t, 7, internalIterations("a_specific_case_x", rules))
	assert.Equal(t, 3, internalIterations("a_generic", rules))
	assert.Equal(t, 1, internalIterations("other", rules))
}
