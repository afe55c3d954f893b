// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import (
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/model/helper"
	"github.com/s-quirin/easyguing/internal/quantity"
)

// Free oscillation of a mass-spring-damper system. The governing equation
// splits on the ratio of decay constant to undamped frequency, so the
// evaluation iterates piecewise over (D, w0).
var springDamper = &model.Descriptor{
	Key:   "feder-daempfer",
	Title: "Feder-Dämpfersystem",
	Description: "Berechnung der freien Schwingung eines Masse-Feder-Dämpfersystem  \n" +
		"Mögliche Fälle:\n" +
		"* Schwingfall (Abklingkonstante < ungedämpfte Kreisfrequenz)\n" +
		"* Aperiodischer Grenzfall (Abklingkonstante = ungedämpfte Kreisfrequenz)\n" +
		"* Kriechfall (Abklingkonstante > ungedämpfte Kreisfrequenz)\n",
	Author:  "Universität des Saarlandes",
	Version: "0.1",
	Inputs: []model.Input{
		{Key: "t", Name: "Zeit", Values: []float64{0, 10}, Unit: "s"},
		{Key: "w0", Name: "Ungedämpfte Kreisfrequenz", Values: []float64{0.6, 0.9, 1.1, 0.9}, Unit: "1/s", AppliesTo: []string{"Relative Größen"}},
		{Key: "D", Name: "Abklingkonstante", Values: []float64{0, 0.4, 1.1, 1.5}, Unit: "1/s", AppliesTo: []string{"Relative Größen"}},
		{Key: "k", Name: "Federkonstante", Values: []float64{0, 1.0, 10, 100}, Unit: "N/m", AppliesTo: []string{"Absolute Größen"}},
		{Key: "d", Name: "Dämpfungskonstante", Values: []float64{0.9, 0.4, 1.0, 1.5}, Unit: "kg/s", AppliesTo: []string{"Absolute Größen"}},
		{Key: "m", Name: "Masse", Values: []float64{0.4, 0.7, 1.0, 1.3}, Unit: "kg", AppliesTo: []string{"Absolute Größen"}},
		{Key: "x0", Name: "Initiale Auslenkung", Values: []float64{0.5, 1, 1, 0}, Unit: "cm"},
		{Key: "v0", Name: "Initiale Geschwindigkeit", Values: []float64{0, 1, 1, 2}, Unit: "cm/s"},
	},
	Options: []model.Option{
		{Name: "Feder-Dämpfer", Choices: []string{"Relative Größen", "Absolute Größen"}},
	},
	Output: model.Option{Name: "output", Choices: []string{"Auslenkung"}},
	PlotX:  "t",
	Eval:   evalSpringDamper,
}

func evalSpringDamper(env model.Env, v map[string]quantity.Quantity, opts model.Choices) (quantity.Quantity, error) {
	if opts["Feder-Dämpfer"] == "Absolute Größen" {
		vars := make(map[string]quantity.Quantity, len(v)+2)
		for k, val := range v {
			vars[k] = val
		}
		vars["w0"] = quantity.Sqrt(v["k"].Div(v["m"]))
		vars["D"] = v["d"].Div(v["m"]).ScaleBy(0.5)
		v = vars
	}
	// Abschnittsweise definierte Variablen werden einzeln iteriert.
	return helper.Piecewise(oscillationPieces, v, "D", "w0")
}

func oscillationPieces(v map[string]quantity.Quantity, segs ...quantity.Quantity) quantity.Quantity {
	d, w0 := segs[0], segs[1]
	t, x0, v0 := v["t"], v["x0"], v["v0"]

	var tmp quantity.Quantity
	switch {
	case d.Less(w0):
		// Schwingfall
		wd := quantity.Sqrt(w0.Pow(2).Sub(d.Pow(2)))
		tmp = v0.Add(d.Mul(x0)).Div(wd).Mul(quantity.Sin(wd.Mul(t)))
		tmp = tmp.Add(x0.Mul(quantity.Cos(wd.Mul(t))))
	case d.Equal(w0):
		// Aperiodischer Grenzfall
		tmp = x0.Add(v0.Add(d.Mul(x0)).Mul(t))
	default:
		// Kriechfall
		alpha := quantity.Sqrt(d.Pow(2).Sub(w0.Pow(2)))
		c1 := v0.Add(x0.Mul(alpha)).Add(x0.Mul(d)).Div(alpha.ScaleBy(2))
		c2 := x0.Sub(c1)
		tmp = c1.Mul(quantity.Exp(alpha.Mul(t)))
		tmp = tmp.Add(c2.Mul(quantity.Exp(alpha.Mul(t).Neg())))
	}
	return quantity.Exp(d.Mul(t).Neg()).Mul(tmp)
}

func init() { builtins = append(builtins, springDamper) }
