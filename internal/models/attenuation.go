// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import (
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/quantity"
)

// Lambert-Beer attenuation of radiation passing through an absorbing
// medium. The medium option selects the governing equation and which
// coefficient inputs are active.
var attenuation = &model.Descriptor{
	Key:   "strahlungsabschwaechung",
	Title: "Lambert-beersches Gesetz",
	Description: "Abschätzung der Intensität transmittierter Strahlung bzw. Abschwächung der\n" +
		"Intensität (Extinktion) einer Strahlung in Bezug zu deren Anfangsintensität\n" +
		"bei Durchgang durch\n" +
		"* ein absorbierendes Medium (bouguer-lambertsches Gesetz)\n" +
		"* eine absorbierende Substanz in Abhängigkeit von der Konzentration\n" +
		"(lambert-beersches Gesetz)\n",
	Author:  "Universität des Saarlandes",
	Version: "0.1",
	Inputs: []model.Input{
		{Key: "I_0", Name: "Eingestrahlte Intensität", Values: []float64{500, 1000, 2000}, Unit: "W/m^2"},
		{Key: "d", Name: "Durchstrahlte Schichtdicke", Values: []float64{1, 0.01, 0.001}, Unit: "m"},
		{Key: "µ", Name: "Schwächungskoeffizient", Values: []float64{0.02, 0.1, 20}, Unit: "1/cm", AppliesTo: []string{"Allgemein"}},
		// NIST-Daten (physics.nist.gov), Photonenenergie 0,1 MeV: Knochen, Acrylglas, Blei
		{Key: "µ_ρ", Name: "Massenschwächungskoeffizient", Values: []float64{0.19, 0.16, 5.5}, Unit: "cm^2/g", AppliesTo: []string{"Feststoff"}},
		{Key: "ρ", Name: "Dichte", Values: []float64{1.16, 1.18, 11.34}, Unit: "g/cm^3", AppliesTo: []string{"Feststoff"}},
		{Key: "ε_λ", Name: "Dekadischer Extinktionskoeffizient", Values: []float64{2e-3, 0.02, 100}, Unit: "l/mol/m", AppliesTo: []string{"Flüssigkeit/Gas"}},
		{Key: "c", Name: "Stoffmengenkonzentration", Values: []float64{55.42, 55.42, 0.02}, Unit: "mol/l", AppliesTo: []string{"Flüssigkeit/Gas"}},
	},
	Options: []model.Option{
		{Name: "Medium", Choices: []string{"Allgemein", "Feststoff", "Flüssigkeit/Gas"}},
	},
	Output: model.Option{Name: "output", Choices: []string{"Intensität", "Abschwächung"}},
	PlotX:  "d",
	Eval:   evalAttenuation,
}

func evalAttenuation(env model.Env, v map[string]quantity.Quantity, opts model.Choices) (quantity.Quantity, error) {
	var a quantity.Quantity // I_1/I_0
	switch opts["Medium"] {
	case "Allgemein":
		a = quantity.Exp(v["µ"].Mul(v["d"]).Neg())
	case "Feststoff":
		a = quantity.Exp(v["µ_ρ"].Mul(v["ρ"]).Mul(v["d"]).Neg())
	default:
		// Flüssigkeit/Gas
		e := v["ε_λ"].Mul(v["c"]).Mul(v["d"]) // Extinktion
		a = quantity.Pow10(e.Neg())
	}

	if opts["output"] == "Intensität" {
		i0, err := v["I_0"].ConvertTo("W/m^2")
		if err != nil {
			return quantity.Quantity{}, err
		}
		return i0.Mul(a), nil
	}
	return a, nil
}

func init() { builtins = append(builtins, attenuation) }
