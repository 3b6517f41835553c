// Package schema defines the benchmark result interchange format shared by
// the timing harness, the output parser, and the comparator.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const nsPerMs = 1_000_000

// Record holds the measured latency for a single benchmark. TimeNs is the
// authoritative value; TimeMs is derived from it on construction.
type Record struct {
	TimeNs     float64 `json:"time_ns"`
	TimeMs     float64 `json:"time_ms"`
	Iterations int64   `json:"iterations"`
}

// NewRecord builds a Record from a mean per-operation latency in
// nanoseconds and the total primitive operation count it was averaged over.
func NewRecord(timeNs float64, iterations int64) Record {
	return Record{
		TimeNs:     timeNs,
		TimeMs:     timeNs / nsPerMs,
		Iterations: iterations,
	}
}

// ResultSet is the engine-tagged collection of records produced by one
// benchmark run. It is written once at the end of a run and never mutated
// afterwards.
type ResultSet struct {
	Engine    string            `json:"engine"`
	Timestamp string            `json:"timestamp"`
	Results   map[string]Record `json:"results"`
}

// NewResultSet creates an empty ResultSet stamped with the current time.
func NewResultSet(engine string) *ResultSet {
	return &ResultSet{
		Engine:    engine,
		Timestamp: time.Now().Format(time.RFC3339),
		Results:   make(map[string]Record),
	}
}

// Names returns the benchmark names in ascending order.
func (rs *ResultSet) Names() []string {
	names := make([]string, 0, len(rs.Results))
	for name := range rs.Results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes the ResultSet as indented JSON, creating any missing parent
// directories. The caller controls the destination path.
func (rs *ResultSet) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result set: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Load reads a ResultSet from disk. A missing file and malformed JSON are
// reported as distinct errors so callers can tell the two apart in their
// diagnostics.
func Load(path string) (*ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("results file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var rs ResultSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	if rs.Results == nil {
		rs.Results = make(map[string]Record)
	}

	return &rs, nil
}
