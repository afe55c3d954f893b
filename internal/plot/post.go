// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plot

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/quantity"
)

// =============================================================================
// MARK STATE
// =============================================================================

// MarkState is the three-value extremum/calc checkbox state. A plain bool
// would lose the "mark, but don't label" middle state.
type MarkState int

const (
	// MarkOff draws nothing.
	MarkOff MarkState = iota
	// MarkOn draws the marker without a coordinate label.
	MarkOn
	// MarkLabel draws the marker and annotates its coordinates.
	MarkLabel
)

// Cycle returns the next state, the order a repeated keypress walks.
func (m MarkState) Cycle() MarkState { return (m + 1) % 3 }

// Stable series identifiers distinguishing marker series from the primary
// curve lines. Markers are located, removed and replaced by ID.
const (
	MarkerMinID  = "min"
	MarkerMaxID  = "max"
	MarkerCalcID = "calc"
)

// =============================================================================
// FIGURE
// =============================================================================

// Curve is one rendered line: base-unit sample values and result values.
type Curve struct {
	ID    string
	Label string
	X, Y  []float64
}

// MarkerPoint is one marked location, optionally annotated.
type MarkerPoint struct {
	X, Y  float64
	Label string
}

// Marker is an unconnected point series tagged with a stable ID.
type Marker struct {
	ID       string
	Label    string // legend entry, "" for none
	Points   []MarkerPoint
	Annotate bool
}

// Figure is the post-processed render state handed to the renderers.
type Figure struct {
	Title   string
	XLabel  string
	YLabel  string
	Curves  []Curve
	markers []Marker
}

// Markers returns the marker series in insertion order.
func (f *Figure) Markers() []Marker { return f.markers }

// Marker returns the marker with the given ID, or nil.
func (f *Figure) Marker(id string) *Marker {
	for i := range f.markers {
		if f.markers[i].ID == id {
			return &f.markers[i]
		}
	}
	return nil
}

// SetMarker replaces the marker with m's ID, stripping the old marker and
// its annotation overlay as one step before re-adding. The curve and
// other marker series are untouched.
func (f *Figure) SetMarker(m Marker) {
	f.RemoveMarker(m.ID)
	f.markers = append(f.markers, m)
}

// RemoveMarker deletes the marker and its annotations atomically.
func (f *Figure) RemoveMarker(id string) {
	for i := range f.markers {
		if f.markers[i].ID == id {
			f.markers = append(f.markers[:i], f.markers[i+1:]...)
			return
		}
	}
}

// =============================================================================
// POST-PROCESSING
// =============================================================================

// BuildFigure post-processes a fully resolved cache into render state:
// legend labels, the requested extremum markers, and axis labels. It must
// only run after a successful batch; a slot without a result or with a
// result of mismatched dimension aborts the whole step so a partial
// figure is never rendered.
func BuildFigure(d *model.Descriptor, snap *Snapshot, cache *Cache, markMin, markMax MarkState, prec int, tag language.Tag) (*Figure, error) {
	slots := cache.Slots()
	fig := &Figure{
		Title:  d.Title,
		XLabel: axisLabel(d, snap.PlotX, snap.Samples()),
		YLabel: snap.Choices[d.Output.Name],
	}

	family := snap.Family()
	var ydim quantity.Dimension
	for n, s := range slots {
		if s.State() != SlotReady {
			return nil, &EvaluationError{Model: d.Key, Slot: n, Err: fmt.Errorf("curve has no result")}
		}
		result := s.Result()
		if result.Len() != s.Samples.Len() {
			return nil, &EvaluationError{Model: d.Key, Slot: n,
				Err: fmt.Errorf("result length %d does not match %d samples", result.Len(), s.Samples.Len())}
		}
		if n == 0 {
			ydim = result.Dim()
		} else if result.Dim() != ydim {
			return nil, &EvaluationError{Model: d.Key, Slot: n, Err: &quantity.DimensionalityError{
				Want: ydim, Got: result.Dim(), Context: "curve result"}}
		}
		fig.Curves = append(fig.Curves, Curve{
			ID:    fmt.Sprintf("curve-%d", n),
			Label: Legend(d, snap, s.Params, prec, tag),
			X:     s.Samples.ToBase().Values(),
			Y:     result.ToBase().Values(),
		})
	}
	if len(family) == 0 {
		// A single curve carries no legend, as a single-member family
		// would only repeat the input fields.
		for i := range fig.Curves {
			fig.Curves[i].Label = ""
		}
	}

	markExtremum(fig, MarkerMinID, markMin, prec, tag, firstMinIndex)
	markExtremum(fig, MarkerMaxID, markMax, prec, tag, firstMaxIndex)
	return fig, nil
}

// Legend joins the string forms of the family-member inputs only, in
// declared order, localized to the active decimal convention.
func Legend(d *model.Descriptor, snap *Snapshot, params map[string]quantity.Quantity, prec int, tag language.Tag) string {
	out := ""
	for _, k := range snap.Family() {
		q, ok := params[k]
		if !ok {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += q.Format(prec, tag)
	}
	return out
}

// markExtremum collects one first-extremum point per curve into a marker
// series. Ties break on first occurrence in sample order.
func markExtremum(fig *Figure, id string, state MarkState, prec int, tag language.Tag, pick func([]float64) int) {
	fig.RemoveMarker(id)
	if state == MarkOff {
		return
	}
	m := Marker{ID: id, Annotate: state == MarkLabel}
	for _, c := range fig.Curves {
		if len(c.Y) == 0 {
			continue
		}
		i := pick(c.Y)
		p := MarkerPoint{X: c.X[i], Y: c.Y[i]}
		if m.Annotate {
			p.Label = pointLabel(p.X, p.Y)
		}
		m.Points = append(m.Points, p)
	}
	fig.SetMarker(m)
}

// MarkCalculation places (or clears) the single calculated-point marker.
// Replacement strips the previous marker and annotation in one step.
func MarkCalculation(fig *Figure, state MarkState, x, y quantity.Quantity, legend string) {
	fig.RemoveMarker(MarkerCalcID)
	if state == MarkOff {
		return
	}
	p := MarkerPoint{X: x.ToBase().Value(), Y: y.ToBase().Value()}
	if state == MarkLabel {
		p.Label = pointLabel(p.X, p.Y)
	}
	fig.SetMarker(Marker{
		ID:       MarkerCalcID,
		Label:    legend,
		Points:   []MarkerPoint{p},
		Annotate: state == MarkLabel,
	})
}

func pointLabel(x, y float64) string {
	return fmt.Sprintf("(%g, %g)", x, y)
}

// firstMinIndex returns the index of the first occurrence of the minimum.
func firstMinIndex(ys []float64) int {
	best := 0
	for i, v := range ys {
		if v < ys[best] {
			best = i
		}
	}
	return best
}

// firstMaxIndex returns the index of the first occurrence of the maximum.
func firstMaxIndex(ys []float64) int {
	best := 0
	for i, v := range ys {
		if v > ys[best] {
			best = i
		}
	}
	return best
}

func axisLabel(d *model.Descriptor, key string, samples quantity.Quantity) string {
	label := key
	if in := d.Input(key); in != nil {
		label = in.Name
	}
	if u := samples.ToBase().Unit(); u != "" {
		label += " [" + u + "]"
	}
	return label
}
