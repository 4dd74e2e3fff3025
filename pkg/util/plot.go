package util

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/vlsi-lab/floorplanner/pkg/algorithms"
)

// ConvergenceChart creates a line chart of the best, best-so-far and mean
// fitness of every generation in the trace.
func ConvergenceChart(trace []algorithms.GenerationStats, title string) (*charts.Line, error) {
	if len(trace) == 0 {
		return nil, fmt.Errorf("trace is empty for %s", title)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d generations", len(trace)),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "generation",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "fitness",
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	generations := make([]string, len(trace))
	best := make([]opts.LineData, len(trace))
	bestSoFar := make([]opts.LineData, len(trace))
	mean := make([]opts.LineData, len(trace))
	for i, stats := range trace {
		generations[i] = strconv.Itoa(stats.Generation + 1)
		best[i] = opts.LineData{Value: stats.Best.Fitness}
		bestSoFar[i] = opts.LineData{Value: stats.BestSoFar.Fitness}
		mean[i] = opts.LineData{Value: stats.MeanFitness}
	}

	line.SetXAxis(generations).
		AddSeries("Best", best).
		AddSeries("Best so far", bestSoFar).
		AddSeries("Mean", mean).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithLineChartOpts(opts.LineChart{
				Smooth: opts.Bool(false),
			}),
		)
	return line, nil
}

// RenderConvergence writes the convergence chart as HTML to w
func RenderConvergence(w io.Writer, trace []algorithms.GenerationStats, title string) error {
	line, err := ConvergenceChart(trace, title)
	if err != nil {
		return err
	}
	return line.Render(w)
}

// PlotConvergence writes the convergence chart to an HTML file. The default
// file name is derived from the title.
func PlotConvergence(trace []algorithms.GenerationStats, title string, outputPath ...string) error {
	filename := fmt.Sprintf("%s_convergence.html", title)
	if len(outputPath) > 0 && outputPath[0] != "" {
		filename = outputPath[0]
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := RenderConvergence(f, trace, title); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
