package chart

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// viridis colors, one per accent class
var palette = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

// RenderAccentBar writes an HTML page with a horizontal bar chart of the
// per-accent confidence scores, lowest at the bottom.
func RenderAccentBar(w io.Writer, scores map[string]float64) error {
	if len(scores) == 0 {
		return fmt.Errorf("no scores to chart")
	}

	type entry struct {
		label string
		score float64
	}
	entries := make([]entry, 0, len(scores))
	for label, score := range scores {
		entries = append(entries, entry{label, score})
	}
	// Ascending so the top prediction ends up at the top of the flipped axis
	sort.Slice(entries, func(i, j int) bool { return entries[i].score < entries[j].score })

	labels := make([]string, len(entries))
	data := make([]opts.BarData, len(entries))
	for i, e := range entries {
		labels[i] = e.label
		data[i] = opts.BarData{
			Value: e.score,
			ItemStyle: &opts.ItemStyle{
				Color: palette[i%len(palette)],
			},
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Accent Classification Results"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Confidence",
			Max:  1,
			AxisLabel: &opts.AxisLabel{
				Formatter: opts.FuncOpts("function (value) { return (value * 100).toFixed(0) + '%'; }"),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Accent"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "700px", Height: "400px"}),
	)

	bar.SetXAxis(labels).AddSeries("Confidence", data,
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "right",
		}),
	)
	bar.XYReversal()

	return bar.Render(w)
}
