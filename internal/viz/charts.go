package viz

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"rexbench/internal/compare"
)

// Band colors follow the comparator classification thresholds.
var (
	dominantColor       = color.RGBA{0, 255, 0, 255}     // bright green
	fasterColor         = color.RGBA{102, 204, 102, 255} // green
	slightlyFasterColor = color.RGBA{153, 204, 153, 255} // light green
	similarColor        = color.RGBA{204, 204, 204, 255} // gray
	slowerColor         = color.RGBA{255, 153, 153, 255} // light red

	baselineColor  = color.RGBA{255, 127, 14, 255} // orange
	candidateColor = color.RGBA{31, 119, 180, 255} // blue

	categoryMeanColor  = color.RGBA{135, 206, 235, 255} // sky blue
	categoryCountColor = color.RGBA{240, 128, 128, 255} // light coral
)

func bandColor(speedup float64) color.RGBA {
	switch {
	case speedup > 10:
		return dominantColor
	case speedup > 2:
		return fasterColor
	case speedup > 1.1:
		return slightlyFasterColor
	case speedup > 0.9:
		return similarColor
	default:
		return slowerColor
	}
}

// clampForPlot replaces the +Inf sentinel with a finite display value so
// the axis stays drawable. The comparison artifact keeps the real value.
func clampForPlot(speedups []float64) []float64 {
	maxFinite := 1.0
	for _, s := range speedups {
		if !math.IsInf(s, 0) && s > maxFinite {
			maxFinite = s
		}
	}

	out := make([]float64, len(speedups))
	for i, s := range speedups {
		if math.IsInf(s, 1) {
			out[i] = maxFinite * 1.25
		} else {
			out[i] = s
		}
	}
	return out
}

// SpeedupChart renders a horizontal bar chart of per-benchmark speedups,
// sorted descending and color-banded by classification threshold.
func SpeedupChart(c *compare.Comparison, path string) error {
	if len(c.Entries) == 0 {
		return fmt.Errorf("no comparison entries to plot")
	}

	entries := make([]compare.Entry, len(c.Entries))
	copy(entries, c.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		// Ascending so the fastest ends up at the top of the chart.
		return float64(entries[i].Speedup) < float64(entries[j].Speedup)
	})

	names := make([]string, len(entries))
	speedups := make([]float64, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		speedups[i] = float64(e.Speedup)
	}
	plotted := clampForPlot(speedups)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Performance vs %s", c.Summary.CandidateLabel, c.Summary.BaselineLabel)
	p.X.Label.Text = fmt.Sprintf("Speedup Factor (%s vs %s)", c.Summary.CandidateLabel, c.Summary.BaselineLabel)

	// One single-bar series per benchmark so each bar carries its own
	// threshold band color.
	for i := range plotted {
		values := make(plotter.Values, len(plotted))
		values[i] = plotted[i]

		bar, err := plotter.NewBarChart(values, vg.Points(8))
		if err != nil {
			return fmt.Errorf("speedup chart: %w", err)
		}
		bar.Horizontal = true
		bar.Color = bandColor(speedups[i])
		bar.LineStyle.Width = 0
		p.Add(bar)
	}
	p.NominalY(names...)

	// Reference line at 1x.
	equal := plotter.XYs{{X: 1, Y: -0.5}, {X: 1, Y: float64(len(names)) - 0.5}}
	line, err := plotter.NewLine(equal)
	if err != nil {
		return fmt.Errorf("speedup chart: %w", err)
	}
	line.Color = color.RGBA{255, 0, 0, 255}
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	p.Legend.Add("equal performance", line)
	p.Legend.Top = true

	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(10*vg.Inch, vg.Inch*vg.Length(2+len(names)/3), path)
}

// logTimeAxis rescales millisecond values into log10 space relative to the
// axis floor (the largest decade at or below the smallest value), returning
// the bar heights and the decade ticks labeling the axis. Bar charts anchor
// their bars and data range at zero, which a plot.LogScale axis cannot
// represent, so the axis stays linear and the transform happens here.
func logTimeAxis(baselineMs, candidateMs []float64) (baseline, candidate plotter.Values, ticks []plot.Tick) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vs := range [][]float64{baselineMs, candidateMs} {
		for _, v := range vs {
			lv := math.Log10(logSafe(v))
			lo = math.Min(lo, lv)
			hi = math.Max(hi, lv)
		}
	}

	floor := int(math.Floor(lo))
	ceil := int(math.Ceil(hi))
	if ceil == floor {
		ceil = floor + 1
	}

	baseline = make(plotter.Values, len(baselineMs))
	candidate = make(plotter.Values, len(candidateMs))
	for i, v := range baselineMs {
		baseline[i] = math.Log10(logSafe(v)) - float64(floor)
	}
	for i, v := range candidateMs {
		candidate[i] = math.Log10(logSafe(v)) - float64(floor)
	}

	for e := floor; e <= ceil; e++ {
		// Parsing "1eN" lands on the exact decade float; math.Pow drifts
		// an ulp for negative exponents and would mangle the labels.
		decade, _ := strconv.ParseFloat(fmt.Sprintf("1e%d", e), 64)
		ticks = append(ticks, plot.Tick{
			Value: float64(e - floor),
			Label: strconv.FormatFloat(decade, 'g', -1, 64),
		})
	}
	return baseline, candidate, ticks
}

// TimeComparisonChart renders grouped bars of absolute baseline and
// candidate times per benchmark on a logarithmic axis.
func TimeComparisonChart(c *compare.Comparison, path string) error {
	if len(c.Entries) == 0 {
		return fmt.Errorf("no comparison entries to plot")
	}

	names := make([]string, len(c.Entries))
	baselineMs := make([]float64, len(c.Entries))
	candidateMs := make([]float64, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Name
		baselineMs[i] = e.BaselineTimeMs
		candidateMs[i] = e.CandidateTimeMs
	}
	baseline, candidate, ticks := logTimeAxis(baselineMs, candidateMs)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Execution Time Comparison: %s vs %s", c.Summary.CandidateLabel, c.Summary.BaselineLabel)
	p.Y.Label.Text = "Time (ms) - log scale"
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Min = 0
	p.Y.Max = ticks[len(ticks)-1].Value

	barWidth := vg.Points(5)

	baseBars, err := plotter.NewBarChart(baseline, barWidth)
	if err != nil {
		return fmt.Errorf("time chart: %w", err)
	}
	baseBars.Color = baselineColor
	baseBars.Offset = -barWidth / 2
	baseBars.LineStyle.Width = 0

	candBars, err := plotter.NewBarChart(candidate, barWidth)
	if err != nil {
		return fmt.Errorf("time chart: %w", err)
	}
	candBars.Color = candidateColor
	candBars.Offset = barWidth / 2
	candBars.LineStyle.Width = 0

	p.Add(baseBars, candBars)
	p.Legend.Add(c.Summary.BaselineLabel, baseBars)
	p.Legend.Add(c.Summary.CandidateLabel, candBars)
	p.Legend.Top = true
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YTop

	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(vg.Inch*vg.Length(3+len(names)/2), 6*vg.Inch, path)
}

// CategoryChart renders per-category mean-speedup bars and per-category
// benchmark-count bars stacked in a single image.
func CategoryChart(c *compare.Comparison, path string) error {
	categories := Categorize(c.Entries)
	if len(categories) == 0 {
		return fmt.Errorf("no categorizable benchmarks to plot")
	}

	labels := make([]string, len(categories))
	means := make(plotter.Values, len(categories))
	counts := make(plotter.Values, len(categories))
	for i, cat := range categories {
		labels[i] = cat.Label
		means[i] = clampForPlot([]float64{cat.Mean()})[0]
		counts[i] = float64(len(cat.Speedups))
	}

	meanPlot := plot.New()
	meanPlot.Title.Text = fmt.Sprintf("Average Speedup by Category (%s vs %s)", c.Summary.CandidateLabel, c.Summary.BaselineLabel)
	meanPlot.Y.Label.Text = "Average Speedup Factor"
	meanBars, err := plotter.NewBarChart(means, vg.Points(24))
	if err != nil {
		return fmt.Errorf("category chart: %w", err)
	}
	meanBars.Color = categoryMeanColor
	meanBars.LineStyle.Width = 0
	meanPlot.Add(meanBars)
	meanPlot.NominalX(labels...)

	countPlot := plot.New()
	countPlot.Title.Text = "Benchmark Distribution by Category"
	countPlot.Y.Label.Text = "Number of Benchmarks"
	countBars, err := plotter.NewBarChart(counts, vg.Points(24))
	if err != nil {
		return fmt.Errorf("category chart: %w", err)
	}
	countBars.Color = categoryCountColor
	countBars.LineStyle.Width = 0
	countPlot.Add(countBars)
	countPlot.NominalX(labels...)

	// Two stacked tiles in one PNG.
	const width, height = 10 * vg.Inch, 10 * vg.Inch
	img := vgimg.New(width, height)
	dc := draw.New(img)

	top := draw.Crop(dc, 0, 0, height/2, 0)
	bottom := draw.Crop(dc, 0, 0, 0, -height/2)
	meanPlot.Draw(top)
	countPlot.Draw(bottom)

	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("category chart: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("category chart: %w", err)
	}
	return nil
}

// RenderAll writes the three chart artifacts next to each other, returning
// the paths written.
func RenderAll(c *compare.Comparison, dir, prefix string) ([]string, error) {
	paths := []string{
		filepath.Join(dir, prefix+"speedup_chart.png"),
		filepath.Join(dir, prefix+"time_comparison.png"),
		filepath.Join(dir, prefix+"category_analysis.png"),
	}

	if err := SpeedupChart(c, paths[0]); err != nil {
		return nil, err
	}
	if err := TimeComparisonChart(c, paths[1]); err != nil {
		return nil, err
	}
	if err := CategoryChart(c, paths[2]); err != nil {
		return nil, err
	}
	return paths, nil
}

// logSafe keeps zero times plottable on a log axis.
func logSafe(v float64) float64 {
	if v <= 0 {
		return 1e-9
	}
	return v
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
