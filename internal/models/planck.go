// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import (
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/model/helper"
	"github.com/s-quirin/easyguing/internal/quantity"
)

// Planck's law: spectral radiance of a black body.
var planck = &model.Descriptor{
	Key:         "strahlungsgesetz",
	Title:       "Plancksches Strahlungsgesetz",
	Description: "Berechnung der spektralen Strahldichte",
	Author:      "Universität des Saarlandes",
	Version:     "0.1",
	Inputs: []model.Input{
		{Key: "lambda", Name: "Wellenlänge", Values: []float64{1, 7.5, 14}, Unit: "µm"},
		{Key: "T", Name: "Temperatur", Values: []float64{250, 325, 400}, Unit: "K"},
	},
	Output: model.Option{Name: "output", Choices: []string{"Spektrale Strahldichte"}},
	PlotX:  "lambda",
	Eval:   evalPlanck,
}

// Radiance of a black body integrated over a wavelength band; the band
// bounds are inputs and temperature is the plotted axis.
var planckBand = &model.Descriptor{
	Key:         "bandstrahlung",
	Title:       "Bandstrahlung",
	Description: "Strahldichte eines schwarzen Körpers, integriert über ein Wellenlängenband",
	Author:      "Universität des Saarlandes",
	Version:     "0.1",
	Inputs: []model.Input{
		{Key: "von", Name: "Wellenlänge von", Values: []float64{1}, Unit: "µm"},
		{Key: "bis", Name: "Wellenlänge bis", Values: []float64{14}, Unit: "µm"},
		{Key: "T", Name: "Temperatur", Values: []float64{250, 325, 400}, Unit: "K"},
	},
	Output: model.Option{Name: "output", Choices: []string{"Strahldichte im Band"}},
	PlotX:  "T",
	Eval:   evalPlanckBand,
}

func spectralRadiance(q quantity.Factory, v map[string]quantity.Quantity) quantity.Quantity {
	c1L := q(1.191e-16, "W*m^2/sr")
	c2 := q(0.014388, "m*K")
	return c1L.Div(v["lambda"].Pow(5)).Div(quantity.Expm1(c2.Div(v["lambda"]).Div(v["T"])))
}

func evalPlanck(env model.Env, v map[string]quantity.Quantity, opts model.Choices) (quantity.Quantity, error) {
	return spectralRadiance(env.Q, v), nil
}

func evalPlanckBand(env model.Env, v map[string]quantity.Quantity, opts model.Choices) (quantity.Quantity, error) {
	fn := func(vars map[string]quantity.Quantity) quantity.Quantity {
		return spectralRadiance(env.Q, vars)
	}
	return helper.Integrate(fn, v, map[string]string{"lambda": "µm", "T": "K"},
		v["von"], v["bis"], env.Steps)
}

func init() { builtins = append(builtins, planck, planckBand) }
