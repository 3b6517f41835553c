// Package parser recovers structured benchmark records from the free-text
// tabular report some engines print instead of structured output.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"rexbench/internal/schema"
)

// ErrNoRecords reports that a non-empty input contained no parseable result
// lines. It is warning-grade: callers may proceed with an empty set instead
// of aborting the pipeline.
var ErrNoRecords = errors.New("no benchmark results found in output")

// Result lines look like:
//
//	| literal_match_short       |   0.00001621246337890 |   8300 |
var lineRegex = regexp.MustCompile(`^\s*\|\s*(\S+)\s*\|\s*([\d.]+)\s*\|\s*(\d+)\s*\|`)

// ParseReport reads tabular report lines and converts each well-formed data
// line into a named record, silently ignoring headers, separators, and other
// non-matching lines. Reported times are milliseconds and are converted to
// nanoseconds for schema uniformity.
func ParseReport(r io.Reader) (map[string]schema.Record, error) {
	results := make(map[string]schema.Record)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sawInput := false
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			sawInput = true
		}

		matches := lineRegex.FindStringSubmatch(line)
		if matches == nil {
			continue
		}

		timeMs, err := strconv.ParseFloat(matches[2], 64)
		if err != nil {
			continue
		}
		iterations, err := strconv.ParseInt(matches[3], 10, 64)
		if err != nil {
			continue
		}

		results[matches[1]] = schema.Record{
			TimeNs:     timeMs * 1_000_000,
			TimeMs:     timeMs,
			Iterations: iterations,
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	if len(results) == 0 && sawInput {
		return results, ErrNoRecords
	}

	return results, nil
}

// ParseToResultSet wraps ParseReport and tags the records with an engine
// identifier. The ErrNoRecords warning passes through alongside the (empty)
// set.
func ParseToResultSet(r io.Reader, engine string) (*schema.ResultSet, error) {
	records, err := ParseReport(r)
	if err != nil && !errors.Is(err, ErrNoRecords) {
		return nil, err
	}

	rs := schema.NewResultSet(engine)
	rs.Results = records
	return rs, err
}
