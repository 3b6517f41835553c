// Package compare aligns two benchmark result sets, computes per-entry and
// aggregate speedup statistics, and classifies relative performance.
package compare

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"rexbench/internal/schema"
)

// Ratio is a speedup value. It marshals +Inf (the defined sentinel for a
// zero candidate time) as the string "Infinity" so artifacts stay valid
// JSON and round-trip losslessly.
type Ratio float64

func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	switch {
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(f)
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Infinity"`:
		*r = Ratio(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*r = Ratio(math.Inf(-1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Ratio(f)
	return nil
}

// Entry is the per-benchmark comparison, recomputed on every invocation and
// never treated as a source of truth for re-comparison.
type Entry struct {
	Name                string  `json:"name"`
	BaselineTimeMs      float64 `json:"baseline_time_ms"`
	CandidateTimeMs     float64 `json:"candidate_time_ms"`
	Speedup             Ratio   `json:"speedup"`
	BaselineIterations  int64   `json:"baseline_iterations"`
	CandidateIterations int64   `json:"candidate_iterations"`
}

// Summary aggregates the comparison.
type Summary struct {
	BaselineEngine       string `json:"baseline_engine"`
	CandidateEngine      string `json:"candidate_engine"`
	BaselineLabel        string `json:"baseline_label"`
	CandidateLabel       string `json:"candidate_label"`
	BaselineTimestamp    string `json:"baseline_timestamp"`
	CandidateTimestamp   string `json:"candidate_timestamp"`
	TotalCompared        int    `json:"total_compared"`
	CandidateFasterCount int    `json:"candidate_faster_count"`
	BaselineFasterCount  int    `json:"baseline_faster_count"`
	AverageSpeedup       Ratio  `json:"average_speedup"`
	GeometricMeanSpeedup Ratio  `json:"geometric_mean_speedup"`
}

// Comparison is the full output artifact: summary, all entries sorted by
// benchmark name, and the rendered text report.
type Comparison struct {
	Summary Summary `json:"summary"`
	Entries []Entry `json:"benchmarks"`
	Report  string  `json:"report"`
}

// Classification labels, evaluated against the fixed thresholds in
// descending order; the first match wins.
const (
	ClassDominantWin    = "dominant win"
	ClassFaster         = "faster"
	ClassSlightlyFaster = "slightly faster"
	ClassSimilar        = "similar"
	ClassSlightlySlower = "slightly slower"
	ClassSlower         = "slower"
)

// Classify maps a speedup to its label. +Inf always classifies as a
// dominant win.
func Classify(speedup float64) string {
	switch {
	case speedup > 10:
		return ClassDominantWin
	case speedup > 2:
		return ClassFaster
	case speedup > 1.1:
		return ClassSlightlyFaster
	case speedup > 0.9:
		return ClassSimilar
	case speedup > 0.5:
		return ClassSlightlySlower
	default:
		return ClassSlower
	}
}

// Speedup is the ratio of baseline latency to candidate latency. A zero
// candidate time yields +Inf rather than an error.
func Speedup(baselineMs, candidateMs float64) float64 {
	if candidateMs == 0 {
		return math.Inf(1)
	}
	return baselineMs / candidateMs
}

// Options control role labeling. Explicit labels win; otherwise roles come
// from the known-engine table when the two identifiers are distinguishable,
// and fall back to generic labels when they are not.
type Options struct {
	BaselineLabel  string
	CandidateLabel string
}

// Known engine identifiers and the role they conventionally play. Two
// revisions of the same engine compare with generic labels instead of a
// guess.
var knownBaselineEngines = map[string]bool{
	"go-regexp": true,
	"stdlib":    true,
	"regexp":    true,
}

var knownCandidateEngines = map[string]bool{
	"regexp2": true,
}

// InferRoles decides which of two result sets is the baseline. It returns
// the sets in (baseline, candidate) order and whether the known-identifier
// table made the call; when it did not, the input order stands.
func InferRoles(first, second *schema.ResultSet) (baseline, candidate *schema.ResultSet, inferred bool) {
	if knownBaselineEngines[first.Engine] && knownCandidateEngines[second.Engine] {
		return first, second, true
	}
	if knownCandidateEngines[first.Engine] && knownBaselineEngines[second.Engine] {
		return second, first, true
	}
	return first, second, false
}

func labels(baseline, candidate *schema.ResultSet, opts Options) (string, string) {
	bl, cl := opts.BaselineLabel, opts.CandidateLabel
	if bl == "" {
		bl = baseline.Engine
	}
	if cl == "" {
		cl = candidate.Engine
	}
	if bl == cl || bl == "" || cl == "" {
		return "Baseline", "Candidate"
	}
	return bl, cl
}

// Compare aligns the two sets on benchmark names present in both, computes
// the per-entry speedups and aggregate statistics, and renders the text
// report. It is a pure derivation: the same inputs produce bit-identical
// output on every invocation.
func Compare(baseline, candidate *schema.ResultSet, opts Options) *Comparison {
	baselineLabel, candidateLabel := labels(baseline, candidate, opts)

	var entries []Entry
	for _, name := range baseline.Names() {
		br := baseline.Results[name]
		cr, ok := candidate.Results[name]
		if !ok {
			// Names present in only one side are dropped, not errors.
			continue
		}

		entries = append(entries, Entry{
			Name:                name,
			BaselineTimeMs:      br.TimeMs,
			CandidateTimeMs:     cr.TimeMs,
			Speedup:             Ratio(Speedup(br.TimeMs, cr.TimeMs)),
			BaselineIterations:  br.Iterations,
			CandidateIterations: cr.Iterations,
		})
	}

	summary := Summary{
		BaselineEngine:     baseline.Engine,
		CandidateEngine:    candidate.Engine,
		BaselineLabel:      baselineLabel,
		CandidateLabel:     candidateLabel,
		BaselineTimestamp:  baseline.Timestamp,
		CandidateTimestamp: candidate.Timestamp,
		TotalCompared:      len(entries),
	}

	if len(entries) > 0 {
		var sum, logSum float64
		for _, e := range entries {
			s := float64(e.Speedup)
			sum += s
			logSum += math.Log(s)
			if s > 1 {
				summary.CandidateFasterCount++
			} else if s < 1 {
				summary.BaselineFasterCount++
			}
		}
		n := float64(len(entries))
		summary.AverageSpeedup = Ratio(sum / n)
		summary.GeometricMeanSpeedup = Ratio(math.Exp(logSum / n))
	}

	c := &Comparison{Summary: summary, Entries: entries}
	c.Report = renderReport(c)
	return c
}

// rankedEntries returns the entries sorted by descending speedup with a
// stable alphabetical tie-break.
func rankedEntries(entries []Entry) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return float64(ranked[i].Speedup) > float64(ranked[j].Speedup)
	})
	return ranked
}

// Save writes the comparison artifact as indented JSON, creating missing
// directories.
func (c *Comparison) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal comparison: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// LoadArtifact reads a previously saved comparison artifact, keeping the
// missing-file and malformed-JSON failure modes distinguishable.
func LoadArtifact(path string) (*Comparison, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("comparison file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var c Comparison
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	return &c, nil
}
