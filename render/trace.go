// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"os"

	chart "github.com/wcharczuk/go-chart"
)

// SearchTrace writes a PNG line chart of an epsilon search: the accuracy of
// every scored candidate by attempt, the baseline accuracy and the
// baseline ± tol band.
func SearchTrace(path, title string, baseline, tol float64, accuracies []float64) error {
	if len(accuracies) == 0 {
		return fmt.Errorf("render: SearchTrace: %w", ErrNoData)
	}
	xs := make([]float64, len(accuracies))
	for i := range xs {
		xs[i] = float64(i)
	}
	last := float64(len(accuracies) - 1)
	if last < 1 {
		last = 1
	}
	span := []float64{0, last}
	flat := func(y float64) []float64 { return []float64{y, y} }

	graph := chart.Chart{
		Title:      title,
		TitleStyle: chart.StyleShow(),
		XAxis: chart.XAxis{
			Name:      "attempt",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      "accuracy",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "candidates",
				XValues: xs,
				YValues: accuracies,
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.GetAlternateColor(0),
					DotWidth:    3,
				},
			},
			chart.ContinuousSeries{
				Name:    "baseline",
				XValues: span,
				YValues: flat(baseline),
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.ColorBlack,
				},
			},
			chart.ContinuousSeries{
				Name:    "baseline - eps",
				XValues: span,
				YValues: flat(baseline - tol),
				Style: chart.Style{
					Show:            true,
					StrokeColor:     chart.ColorRed,
					StrokeDashArray: []float64{4, 2},
				},
			},
			chart.ContinuousSeries{
				Name:    "baseline + eps",
				XValues: span,
				YValues: flat(baseline + tol),
				Style: chart.Style{
					Show:            true,
					StrokeColor:     chart.ColorRed,
					StrokeDashArray: []float64{4, 2},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: SearchTrace: %w", err)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("render: SearchTrace: %w", err)
	}

	return f.Close()
}
