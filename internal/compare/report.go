package compare

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the classification column of the detail table.
var (
	dominantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")). // Bright green
			Bold(true)
	fasterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")) // Green
	slightlyFasterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("114")) // Pale green
	similarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")) // Gray
	slightlySlowerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("217")) // Pale red
	slowerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)
)

func styledClass(class string) string {
	switch class {
	case ClassDominantWin:
		return dominantStyle.Render(class)
	case ClassFaster:
		return fasterStyle.Render(class)
	case ClassSlightlyFaster:
		return slightlyFasterStyle.Render(class)
	case ClassSimilar:
		return similarStyle.Render(class)
	case ClassSlightlySlower:
		return slightlySlowerStyle.Render(class)
	default:
		return slowerStyle.Render(class)
	}
}

// FormatTime renders a millisecond value with precision appropriate to its
// magnitude.
func FormatTime(timeMs float64) string {
	switch {
	case timeMs < 0.001:
		return fmt.Sprintf("%.3f µs", timeMs*1000)
	case timeMs < 1:
		return fmt.Sprintf("%.3f ms", timeMs)
	default:
		return fmt.Sprintf("%.2f ms", timeMs)
	}
}

// FormatSpeedup renders a speedup ratio, keeping the +Inf sentinel
// readable.
func FormatSpeedup(speedup float64) string {
	if math.IsInf(speedup, 1) {
		return "infx"
	}
	return fmt.Sprintf("%.2fx", speedup)
}

const reportRule = "===================================================================================================="

func renderReport(c *Comparison) string {
	var b strings.Builder
	s := c.Summary

	fmt.Fprintln(&b, reportRule)
	fmt.Fprintf(&b, "%s VS %s BENCHMARK COMPARISON\n",
		strings.ToUpper(s.CandidateLabel), strings.ToUpper(s.BaselineLabel))
	fmt.Fprintln(&b, reportRule)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "SUMMARY:")
	fmt.Fprintf(&b, "  Total benchmarks compared: %d\n", s.TotalCompared)
	fmt.Fprintf(&b, "  %s faster: %d benchmarks\n", s.CandidateLabel, s.CandidateFasterCount)
	fmt.Fprintf(&b, "  %s faster: %d benchmarks\n", s.BaselineLabel, s.BaselineFasterCount)
	fmt.Fprintf(&b, "  Average speedup: %s\n", FormatSpeedup(float64(s.AverageSpeedup)))
	fmt.Fprintf(&b, "  Geometric mean speedup: %s\n", FormatSpeedup(float64(s.GeometricMeanSpeedup)))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "DETAILED RESULTS:")
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "BENCHMARK\t%s\t%s\tSPEEDUP\tSTATUS\n",
		strings.ToUpper(s.BaselineLabel), strings.ToUpper(s.CandidateLabel))
	for _, e := range c.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Name,
			FormatTime(e.BaselineTimeMs),
			FormatTime(e.CandidateTimeMs),
			FormatSpeedup(float64(e.Speedup)),
			styledClass(Classify(float64(e.Speedup))),
		)
	}
	w.Flush()
	fmt.Fprintln(&b)

	ranked := rankedEntries(c.Entries)

	topN := 5
	if len(ranked) < topN {
		topN = len(ranked)
	}

	fmt.Fprintf(&b, "TOP %d SPEEDUPS (%s vs %s):\n", topN, s.CandidateLabel, s.BaselineLabel)
	for i := 0; i < topN; i++ {
		fmt.Fprintf(&b, "  %d. %s: %s faster\n", i+1, ranked[i].Name, FormatSpeedup(float64(ranked[i].Speedup)))
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "BOTTOM %d SPEEDUPS:\n", topN)
	bottom := ranked[len(ranked)-topN:]
	for i, e := range bottom {
		fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, e.Name, FormatSpeedup(float64(e.Speedup)))
	}

	return b.String()
}
