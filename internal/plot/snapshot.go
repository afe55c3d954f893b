// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plot

import (
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/quantity"
)

// =============================================================================
// PARAMETER SNAPSHOT
// =============================================================================

// Snapshot freezes the page state relevant to plotting: every active
// input's parsed value list, the option choices, the independent axis and
// the point count. It is recreated wholesale on every edit; the cache
// never sees a partially mutated snapshot.
type Snapshot struct {
	PlotX   string
	Points  int
	Keys    []string // active input keys in declared order
	Values  map[string][]quantity.Quantity
	Choices model.Choices
}

// BuildSnapshot parses the raw plotted-range texts (semicolon-separated
// quantities) against the descriptor. Text whose dimension differs from
// the declared input dimension yields a *quantity.DimensionalityError; the
// caller keeps the previous snapshot and result on any error.
func BuildSnapshot(d *model.Descriptor, texts map[string]string, choices model.Choices, plotX string, points int) (*Snapshot, error) {
	s := &Snapshot{
		PlotX:   plotX,
		Points:  points,
		Values:  make(map[string][]quantity.Quantity),
		Choices: choices.Clone(),
	}
	for _, in := range d.ActiveInputs(choices) {
		qs, err := quantity.ParseList(texts[in.Key])
		if err != nil {
			return nil, err
		}
		declared, err := quantity.New(0, in.Unit)
		if err != nil {
			return nil, err
		}
		for _, q := range qs {
			if q.Dim() != declared.Dim() {
				return nil, &quantity.DimensionalityError{
					Want: declared.Dim(), Got: q.Dim(), Context: "input " + in.Key,
				}
			}
		}
		s.Keys = append(s.Keys, in.Key)
		s.Values[in.Key] = qs
	}
	if _, ok := s.Values[plotX]; !ok {
		return nil, &model.ConfigurationError{Model: d.Key, Reason: "plot axis " + plotX + " is not an active input"}
	}
	return s, nil
}

// Family returns the keys of the curve family: inputs other than the plot
// axis whose list holds more than one distinct value, in declared order.
func (s *Snapshot) Family() []string {
	var fam []string
	for _, k := range s.Keys {
		if k == s.PlotX {
			continue
		}
		if distinct(s.Values[k]) > 1 {
			fam = append(fam, k)
		}
	}
	return fam
}

// CurveCount returns the number of plotted curves: the length of the
// shortest varying family, or 1 when nothing varies.
func (s *Snapshot) CurveCount() int {
	n := 0
	for _, k := range s.Family() {
		if l := len(s.Values[k]); n == 0 || l < n {
			n = l
		}
	}
	if n == 0 {
		return 1
	}
	return n
}

// Samples builds the independent-variable sample array: Points values
// evenly spaced from the first to the last entry of the plot-axis list.
func (s *Snapshot) Samples() quantity.Quantity {
	xs := s.Values[s.PlotX]
	return quantity.Linspace(xs[0], xs[len(xs)-1], s.Points)
}

// ParamsFor resolves the parameter combination of curve n: the n-th value
// of every family member, the first value of everything else. The plot
// axis is excluded; it is represented by Samples.
func (s *Snapshot) ParamsFor(n int) map[string]quantity.Quantity {
	fam := make(map[string]bool)
	for _, k := range s.Family() {
		fam[k] = true
	}
	params := make(map[string]quantity.Quantity, len(s.Keys))
	for _, k := range s.Keys {
		if k == s.PlotX {
			continue
		}
		if fam[k] {
			params[k] = s.Values[k][n]
		} else {
			params[k] = s.Values[k][0]
		}
	}
	return params
}

// distinct counts value-wise distinct quantities.
func distinct(qs []quantity.Quantity) int {
	n := 0
	for i, q := range qs {
		dup := false
		for _, prev := range qs[:i] {
			if q.Equal(prev) {
				dup = true
				break
			}
		}
		if !dup {
			n++
		}
	}
	return n
}
