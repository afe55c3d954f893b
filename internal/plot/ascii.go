// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// TERMINAL RENDERING
// =============================================================================

// curveGlyphs cycle per curve; marker glyphs are fixed per series ID.
var (
	curveGlyphs  = []rune{'*', 'o', '+', '~', '#', '%'}
	markerGlyphs = map[string]rune{
		MarkerMinID:  'v',
		MarkerMaxID:  '^',
		MarkerCalcID: 'X',
	}
)

// RenderGrid renders the figure into a fixed-size rune grid for the TUI,
// with y-axis tick labels on the left and a legend underneath. width and
// height are the total cell budget including labels.
func RenderGrid(fig *Figure, width, height int) string {
	const labelWidth = 11
	plotW := width - labelWidth - 1
	plotH := height - 2 // x-axis line and x labels
	if plotW < 8 || plotH < 3 || len(fig.Curves) == 0 {
		return "plot area too small"
	}

	xmin, xmax, ymin, ymax := bounds(fig)
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		ymax, ymin = ymin+0.5, ymin-0.5
	}

	grid := make([][]rune, plotH)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotW))
	}
	set := func(x, y float64, glyph rune) {
		col := int(math.Round((x - xmin) / (xmax - xmin) * float64(plotW-1)))
		row := plotH - 1 - int(math.Round((y-ymin)/(ymax-ymin)*float64(plotH-1)))
		if col >= 0 && col < plotW && row >= 0 && row < plotH {
			grid[row][col] = glyph
		}
	}

	for n, c := range fig.Curves {
		glyph := curveGlyphs[n%len(curveGlyphs)]
		for i := range c.X {
			set(c.X[i], c.Y[i], glyph)
		}
	}
	// Markers draw last so they stay visible on top of curve glyphs.
	for _, m := range fig.Markers() {
		glyph, ok := markerGlyphs[m.ID]
		if !ok {
			glyph = '?'
		}
		for _, p := range m.Points {
			set(p.X, p.Y, glyph)
		}
	}

	var b strings.Builder
	for i, row := range grid {
		label := ""
		switch i {
		case 0:
			label = fmt.Sprintf("%.4g", ymax)
		case plotH - 1:
			label = fmt.Sprintf("%.4g", ymin)
		case (plotH - 1) / 2:
			label = fmt.Sprintf("%.4g", (ymin+ymax)/2)
		}
		b.WriteString(pad(label, labelWidth))
		b.WriteRune('│')
		b.WriteString(string(row))
		b.WriteRune('\n')
	}
	b.WriteString(pad("", labelWidth))
	b.WriteRune('└')
	b.WriteString(strings.Repeat("─", plotW))
	b.WriteRune('\n')
	b.WriteString(pad("", labelWidth+1) +
		spread(fmt.Sprintf("%.4g", xmin), fig.XLabel, fmt.Sprintf("%.4g", xmax), plotW))

	if legend := legendLines(fig); legend != "" {
		b.WriteRune('\n')
		b.WriteString(legend)
	}
	return b.String()
}

// legendLines lists curve labels with their glyphs plus annotated marker
// coordinates.
func legendLines(fig *Figure) string {
	var lines []string
	for n, c := range fig.Curves {
		if c.Label == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %c %s", curveGlyphs[n%len(curveGlyphs)], c.Label))
	}
	for _, m := range fig.Markers() {
		glyph, ok := markerGlyphs[m.ID]
		if !ok {
			glyph = '?'
		}
		if m.Label != "" {
			lines = append(lines, fmt.Sprintf("  %c %s", glyph, m.Label))
		}
		if !m.Annotate {
			continue
		}
		for _, p := range m.Points {
			if p.Label != "" {
				lines = append(lines, fmt.Sprintf("  %c %s", glyph, p.Label))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// spread lays out left, middle and right labels across one line of the
// given width, dropping the middle label when it does not fit.
func spread(left, mid, right string, width int) string {
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < runewidth.StringWidth(mid)+2 {
		mid = ""
	}
	lpad := (gap - runewidth.StringWidth(mid)) / 2
	rpad := gap - runewidth.StringWidth(mid) - lpad
	if lpad < 0 || rpad < 0 {
		return pad(left+" "+right, width)
	}
	return left + strings.Repeat(" ", lpad) + mid + strings.Repeat(" ", rpad) + right
}

// pad right-pads to the given display width, truncating overlong labels.
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

func bounds(fig *Figure) (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	consider := func(x, y float64) {
		xmin = math.Min(xmin, x)
		xmax = math.Max(xmax, x)
		ymin = math.Min(ymin, y)
		ymax = math.Max(ymax, y)
	}
	for _, c := range fig.Curves {
		for i := range c.X {
			consider(c.X[i], c.Y[i])
		}
	}
	for _, m := range fig.Markers() {
		for _, p := range m.Points {
			consider(p.X, p.Y)
		}
	}
	return
}
