package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rexbench/internal/compare"
	"rexbench/internal/schema"
)

func writeArtifact(t *testing.T) string {
	t.Helper()
	baseline := &schema.ResultSet{
		Engine:    "go-regexp",
		Timestamp: "2026-08-23T10:00:00Z",
		Results: map[string]schema.Record{
			"literal_match_short": schema.NewRecord(10e6, 1000),
			"range_lowercase":     schema.NewRecord(4e6, 1000),
		},
	}
	candidate := &schema.ResultSet{
		Engine:    "regexp2",
		Timestamp: "2026-08-23T10:05:00Z",
		Results: map[string]schema.Record{
			"literal_match_short": schema.NewRecord(2e6, 1000),
			"range_lowercase":     schema.NewRecord(4e6, 1000),
		},
	}

	c := compare.Compare(baseline, candidate, compare.Options{})
	path := filepath.Join(t.TempDir(), "comparison.json")
	require.NoError(t, c.Save(path))
	return path
}

func resetVizFlags(t *testing.T) {
	t.Helper()
	prevDir, prevPrefix := vizDir, vizPrefix
	t.Cleanup(func() {
		vizDir, vizPrefix = prevDir, prevPrefix
	})
}

func TestVisualizeCmdRendersCharts(t *testing.T) {
	resetVizFlags(t)

	artifact := writeArtifact(t)
	vizDir = t.TempDir()
	vizPrefix = "run1_"

	stdout := new(bytes.Buffer)
	visualizeCmd.SetOut(stdout)
	visualizeCmd.SetErr(new(bytes.Buffer))

	require.NoError(t, runVisualize(visualizeCmd, []string{artifact}))

	for _, name := range []string{"run1_speedup_chart.png", "run1_time_comparison.png", "run1_category_analysis.png"} {
		info, err := os.Stat(filepath.Join(vizDir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
		assert.Contains(t, stdout.String(), name)
	}
}

func TestVisualizeCmdMissingArtifact(t *testing.T) {
	resetVizFlags(t)

	visualizeCmd.SetOut(new(bytes.Buffer))
	visualizeCmd.SetErr(new(bytes.Buffer))

	err := runVisualize(visualizeCmd, []string{filepath.Join(t.TempDir(), "absent.json")})
	assert.Error(t, err)
}
