// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import (
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/quantity"
)

// Elastic deflection of a beam under uniform load per Bernoulli beam
// theory; position x runs 0..1 along the span.
var beam = &model.Descriptor{
	Key:   "biegebalken",
	Title: "Biegebalken",
	Description: "Berechnung der elastischen Durchbiegung eines Balkens nach der Balkentheorie  \n" +
		"Voraussetzungen (Bernoullische Annahmen):\n" +
		"* schubstarrer, schlanker Balken (Die Länge ist wesentlich größer als die Querschnittsabmessungen)\n",
	Author:  "Universität des Saarlandes",
	Version: "0.1",
	Inputs: []model.Input{
		{Key: "l", Name: "Länge", Values: []float64{1, 2, 3}, Unit: "m"},
		{Key: "x", Name: "Position", Values: []float64{0, 0.5, 1}, Unit: ""},
		{Key: "q", Name: "Gleichlast", Values: []float64{2000, 1500, 1000}, Unit: "N/m"},
		{Key: "E", Name: "Elastizitätsmodul", Values: []float64{70, 140, 210}, Unit: "GPa"},
		{Key: "I", Name: "Flächenträgheitsmoment", Values: []float64{108}, Unit: "cm^4"},
		{Key: "z", Name: "Halbe Balkendicke", Values: []float64{3}, Unit: "cm"},
	},
	Output: model.Option{Name: "output", Choices: []string{"Durchbiegung", "Max. Biegespannung"}},
	PlotX:  "x",
	Eval:   evalBeam,
}

func evalBeam(env model.Env, v map[string]quantity.Quantity, opts model.Choices) (quantity.Quantity, error) {
	if opts["output"] == "Durchbiegung" {
		ei := v["E"].Mul(v["I"]) // Biegesteifigkeit
		k := v["q"].Mul(v["l"].Pow(4)).Div(ei).ScaleBy(1.0 / 24)
		shape := v["x"].Sub(v["x"].Pow(3).ScaleBy(2)).Add(v["x"].Pow(4))
		return k.Mul(shape).Neg(), nil
	}
	// Maximale Biegespannung in der Randfaser
	my := v["q"].ScaleBy(0.5).Mul(v["l"].Pow(2)).Mul(v["x"].Sub(v["x"].Pow(2)))
	return my.Div(v["I"]).Mul(v["z"]), nil
}

func init() { builtins = append(builtins, beam) }
