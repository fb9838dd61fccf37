// Package report implements human readable reports of an experiment:
// HTML charts of tracked data and coloured console summaries
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samuelfneumann/smartcab/utils/intutils"
	"gonum.org/v1/gonum/stat"
)

// Series is a named sequence of per-trial values
type Series struct {
	Name string
	Data []float64
}

// Chart renders a line chart of each series against the trial number
// as an HTML page to w. Series may have different lengths.
func Chart(w io.Writer, title string, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("chart: no series to plot")
	}

	lengths := make([]int, len(series))
	for i, s := range series {
		lengths[i] = len(s.Data)
	}
	numTrials := intutils.Max(lengths...)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "trial",
		}),
	)

	trials := make([]string, numTrials)
	for i := range trials {
		trials[i] = fmt.Sprintf("%d", i+1)
	}
	line = line.SetXAxis(trials)

	for _, s := range series {
		items := make([]opts.LineData, len(s.Data))
		for i, v := range s.Data {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	return nil
}

// WriteChart renders the chart of Chart to the file at path, creating
// parent directories as needed
func WriteChart(path, title string, series ...Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("writeChart: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writeChart: %w", err)
	}
	defer f.Close()

	return Chart(f, title, series...)
}

// MovingAverage returns the mean of each window of data ending at each
// index. Windows at the start of data are truncated.
func MovingAverage(data []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}

	averages := make([]float64, len(data))
	for i := range data {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		averages[i] = stat.Mean(data[start:i+1], nil)
	}
	return averages
}
