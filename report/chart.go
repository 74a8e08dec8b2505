package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/n0madic/go-bandit-sim/simulate"
)

// maxChartPoints caps the samples plotted per series so long horizons do
// not bloat the HTML page.
const maxChartPoints = 1000

// WriteChart renders the cumulative click and regret comparison as a
// self-contained HTML page with one line per policy.
func WriteChart(w io.Writer, summary *simulate.Summary) error {
	idx := sampled(summary.Horizon, strideFor(summary.Horizon))

	page := components.NewPage()
	page.AddCharts(
		seriesChart("Cumulative Clicks", summary, idx, func(r simulate.Result) []float64 {
			return r.CumulativeReward
		}),
		seriesChart("Cumulative Regret", summary, idx, func(r simulate.Result) []float64 {
			return r.CumulativeRegret
		}),
	)
	return page.Render(w)
}

func seriesChart(title string, summary *simulate.Summary, idx []int, series func(simulate.Result) []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeInfographic,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("horizon %d, seed %d", summary.Horizon, summary.Seed),
		}),
	)

	line.SetXAxis(stepLabels(idx))
	for _, res := range summary.Results {
		line.AddSeries(res.Kind.String(), lineData(series(res), idx))
	}
	return line
}

// strideFor picks the smallest stride that keeps a series of length n under
// the point cap.
func strideFor(n int) int {
	stride := (n + maxChartPoints - 1) / maxChartPoints
	if stride < 1 {
		stride = 1
	}
	return stride
}

// sampled returns the step indexes plotted for a series of length n: every
// stride-th step, and always the final one.
func sampled(n, stride int) []int {
	idx := make([]int, 0, n/stride+1)
	for i := stride - 1; i < n; i += stride {
		idx = append(idx, i)
	}
	if idx[len(idx)-1] != n-1 {
		idx = append(idx, n-1)
	}
	return idx
}

func stepLabels(idx []int) []string {
	labels := make([]string, len(idx))
	for i, step := range idx {
		labels[i] = strconv.Itoa(step + 1)
	}
	return labels
}

func lineData(series []float64, idx []int) []opts.LineData {
	data := make([]opts.LineData, len(idx))
	for i, step := range idx {
		data[i] = opts.LineData{Value: series[step]}
	}
	return data
}
