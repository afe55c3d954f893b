// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderFigure() *Figure {
	fig := &Figure{
		Title:  "Line",
		XLabel: "x [m]",
		YLabel: "y",
		Curves: []Curve{
			{ID: "curve-0", Label: "slope 2", X: []float64{0, 0.5, 1}, Y: []float64{0, 1, 2}},
			{ID: "curve-1", Label: "slope 3", X: []float64{0, 0.5, 1}, Y: []float64{0, 1.5, 3}},
		},
	}
	fig.SetMarker(Marker{
		ID:       MarkerMaxID,
		Points:   []MarkerPoint{{X: 1, Y: 3, Label: "(1, 3)"}},
		Annotate: true,
	})
	return fig
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(renderFigure(), &buf, 640, 400))
	// PNG signature
	require.GreaterOrEqual(t, buf.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}

func TestRenderPNGEmptyFigure(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPNG(&Figure{}, &buf, 640, 400)
	assert.Error(t, err)
}

func TestRenderGrid(t *testing.T) {
	out := RenderGrid(renderFigure(), 80, 20)

	assert.Contains(t, out, "x [m]")
	assert.Contains(t, out, "slope 2")
	assert.Contains(t, out, "slope 3")
	// Annotated maximum coordinates appear in the legend block.
	assert.Contains(t, out, "(1, 3)")
	// Marker glyph drawn on top of the curves.
	assert.Contains(t, out, "^")
}

func TestRenderGridTooSmall(t *testing.T) {
	out := RenderGrid(renderFigure(), 10, 3)
	assert.True(t, strings.Contains(out, "too small"))
}
