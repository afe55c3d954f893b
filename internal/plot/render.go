// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plot

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// =============================================================================
// PNG RENDERING
// =============================================================================

// markerStyle renders points only, no connecting line.
func markerStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    5,
		DotColor:    col,
	}
}

var markerColors = map[string]drawing.Color{
	MarkerMinID:  chart.ColorBlue,
	MarkerMaxID:  chart.ColorOrange,
	MarkerCalcID: chart.ColorRed,
}

// RenderPNG renders the figure to PNG, the "save the figure" feature.
// Curves render as lines, marker series as unconnected dots, annotations
// as coordinate labels.
func RenderPNG(fig *Figure, w io.Writer, width, height int) error {
	if len(fig.Curves) == 0 {
		return fmt.Errorf("nothing to render")
	}
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 500
	}

	graph := chart.Chart{
		Title:  fig.Title,
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Name: fig.XLabel},
		YAxis:  chart.YAxis{Name: fig.YLabel},
	}

	for _, c := range fig.Curves {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    c.Label,
			XValues: c.X,
			YValues: c.Y,
		})
	}

	for _, m := range fig.Markers() {
		col, ok := markerColors[m.ID]
		if !ok {
			col = chart.ColorBlack
		}
		xs := make([]float64, len(m.Points))
		ys := make([]float64, len(m.Points))
		var labels []chart.Value2
		for i, p := range m.Points {
			xs[i] = p.X
			ys[i] = p.Y
			if m.Annotate && p.Label != "" {
				labels = append(labels, chart.Value2{XValue: p.X, YValue: p.Y, Label: p.Label})
			}
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    m.Label,
			XValues: xs,
			YValues: ys,
			Style:   markerStyle(col),
		})
		if len(labels) > 0 {
			graph.Series = append(graph.Series, chart.AnnotationSeries{Annotations: labels})
		}
	}

	if hasLegend(fig) {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph.Render(chart.PNG, w)
}

func hasLegend(fig *Figure) bool {
	for _, c := range fig.Curves {
		if c.Label != "" {
			return true
		}
	}
	for _, m := range fig.Markers() {
		if m.Label != "" {
			return true
		}
	}
	return false
}
