// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plot

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/s-quirin/easyguing/internal/quantity"
)

func twoCurveFigure() *Figure {
	return &Figure{
		Curves: []Curve{
			{ID: "curve-0", Label: "a", X: []float64{0, 1, 2}, Y: []float64{1, 5, 3}},
			{ID: "curve-1", Label: "b", X: []float64{0, 1, 2}, Y: []float64{4, 0, 2}},
		},
	}
}

func TestMarkStateCycle(t *testing.T) {
	s := MarkOff
	for i, want := range []MarkState{MarkOn, MarkLabel, MarkOff} {
		s = s.Cycle()
		if s != want {
			t.Fatalf("cycle step %d = %v, want %v", i, s, want)
		}
	}
}

func TestMinimumMarkersPerCurve(t *testing.T) {
	fig := twoCurveFigure()
	markExtremum(fig, MarkerMinID, MarkOn, 4, language.English, firstMinIndex)

	m := fig.Marker(MarkerMinID)
	if m == nil {
		t.Fatal("minimum marker missing")
	}
	want := []MarkerPoint{{X: 0, Y: 1}, {X: 1, Y: 0}}
	if len(m.Points) != len(want) {
		t.Fatalf("marker points = %v, want %v", m.Points, want)
	}
	for i, p := range m.Points {
		if p.X != want[i].X || p.Y != want[i].Y {
			t.Errorf("marker point %d = (%g, %g), want (%g, %g)", i, p.X, p.Y, want[i].X, want[i].Y)
		}
		if p.Label != "" {
			t.Errorf("marker point %d has label %q without annotation", i, p.Label)
		}
	}
}

func TestMaximumMarkerTieBreaksOnFirst(t *testing.T) {
	fig := &Figure{Curves: []Curve{
		{X: []float64{0, 1, 2, 3}, Y: []float64{2, 7, 7, 1}},
	}}
	markExtremum(fig, MarkerMaxID, MarkLabel, 4, language.English, firstMaxIndex)

	m := fig.Marker(MarkerMaxID)
	if len(m.Points) != 1 {
		t.Fatalf("marker points = %v, want 1", m.Points)
	}
	if m.Points[0].X != 1 || m.Points[0].Y != 7 {
		t.Errorf("tie resolved to (%g, %g), want first occurrence (1, 7)", m.Points[0].X, m.Points[0].Y)
	}
	if m.Points[0].Label == "" {
		t.Error("annotated marker point has no label")
	}
}

func TestMarkerOffRemovesSeriesAndAnnotations(t *testing.T) {
	fig := twoCurveFigure()
	markExtremum(fig, MarkerMinID, MarkLabel, 4, language.English, firstMinIndex)
	markExtremum(fig, MarkerMinID, MarkOff, 4, language.English, firstMinIndex)
	if fig.Marker(MarkerMinID) != nil {
		t.Error("marker survives MarkOff")
	}
	if len(fig.Curves) != 2 {
		t.Error("curves changed by marker removal")
	}
}

func TestSetMarkerReplacesInOneStep(t *testing.T) {
	fig := twoCurveFigure()
	fig.SetMarker(Marker{ID: MarkerCalcID, Points: []MarkerPoint{{X: 1, Y: 1}}})
	fig.SetMarker(Marker{ID: MarkerMinID, Points: []MarkerPoint{{X: 0, Y: 0}}})
	fig.SetMarker(Marker{ID: MarkerCalcID, Points: []MarkerPoint{{X: 2, Y: 2}}})

	if n := len(fig.Markers()); n != 2 {
		t.Fatalf("marker count = %d, want 2 (replacement, not accumulation)", n)
	}
	if got := fig.Marker(MarkerCalcID).Points[0].X; got != 2 {
		t.Errorf("replaced marker X = %g, want 2", got)
	}
}

func TestMarkCalculation(t *testing.T) {
	fig := twoCurveFigure()
	x := quantity.MustParse("500 mm")
	y := quantity.MustParse("1 m")

	MarkCalculation(fig, MarkLabel, x, y, "calc")
	m := fig.Marker(MarkerCalcID)
	if m == nil {
		t.Fatal("calculation marker missing")
	}
	// Marker coordinates are base-unit values matching the curve data.
	if m.Points[0].X != 0.5 || m.Points[0].Y != 1 {
		t.Errorf("marker at (%g, %g), want base-unit (0.5, 1)", m.Points[0].X, m.Points[0].Y)
	}

	MarkCalculation(fig, MarkOff, x, y, "calc")
	if fig.Marker(MarkerCalcID) != nil {
		t.Error("calculation marker survives MarkOff")
	}
}

func TestBuildFigureLegendsAndMarkers(t *testing.T) {
	d := linearModel(nil)
	d.Inputs[1].Values = []float64{2, 3}
	snap := buildSnap(t, d, map[string]string{"x": "0 m; 1 m", "slope": "2; 3"}, 3)
	c := NewCache()
	c.Sync(snap)
	computeAll(t, d, c)

	fig, err := BuildFigure(d, snap, c, MarkOn, MarkOff, 4, language.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(fig.Curves) != 2 {
		t.Fatalf("curves = %d, want 2", len(fig.Curves))
	}
	if fig.Curves[0].Label == "" || fig.Curves[1].Label == "" {
		t.Error("family curves carry no legend labels")
	}
	if fig.Marker(MarkerMinID) == nil {
		t.Error("requested minimum marker missing")
	}
	if fig.Marker(MarkerMaxID) != nil {
		t.Error("unrequested maximum marker present")
	}
	if fig.XLabel != "x [m]" {
		t.Errorf("x label = %q, want %q", fig.XLabel, "x [m]")
	}
}

func TestBuildFigureSingleCurveDropsLegend(t *testing.T) {
	d := linearModel(nil)
	snap := buildSnap(t, d, map[string]string{"x": "0 m; 1 m", "slope": "2"}, 3)
	c := NewCache()
	c.Sync(snap)
	computeAll(t, d, c)

	fig, err := BuildFigure(d, snap, c, MarkOff, MarkOff, 4, language.English)
	if err != nil {
		t.Fatal(err)
	}
	if fig.Curves[0].Label != "" {
		t.Errorf("single curve carries legend %q", fig.Curves[0].Label)
	}
}

func TestBuildFigureAbortsOnUnreadySlot(t *testing.T) {
	d := linearModel(nil)
	d.Inputs[1].Values = []float64{2, 3}
	snap := buildSnap(t, d, map[string]string{"x": "0 m; 1 m", "slope": "2; 3"}, 3)
	c := NewCache()
	c.Sync(snap)
	Evaluator(d, 0)(c.Slots()[0]) // second slot stays stale

	if _, err := BuildFigure(d, snap, c, MarkOff, MarkOff, 4, language.English); err == nil {
		t.Error("partially resolved cache rendered a figure")
	}
}

func TestLegendLocalizedDecimal(t *testing.T) {
	d := linearModel(nil)
	d.Inputs[1].Values = []float64{2.5, 3.5}
	snap := buildSnap(t, d, map[string]string{"x": "0 m; 1 m", "slope": "2.5; 3.5"}, 3)

	got := Legend(d, snap, snap.ParamsFor(0), 4, language.German)
	if got != "2,5" {
		t.Errorf("German legend = %q, want %q", got, "2,5")
	}
}
