// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quantity

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/text/language"
)

func TestParseDimensions(t *testing.T) {
	cases := []struct {
		text string
		dim  Dimension
		base float64
	}{
		{"1", Dimensionless, 1},
		{"0.5", Dimensionless, 0.5},
		{"0,5", Dimensionless, 0.5},
		{"2e-3", Dimensionless, 2e-3},
		{"3 m", dim(1), 3},
		{"100 cm", dim(1), 1},
		{"2000 N/m", dim(0, 1, -2), 2000},
		{"70 GPa", dim(-1, 1, -2), 70e9},
		{"108 cm^4", dim(4), 108e-8},
		{"1 g/cm^3", dim(-3, 1), 1000},
		{"7.5 µm", dim(1), 7.5e-6},
		{"7.5 um", dim(1), 7.5e-6},
		{"0.02 1/cm", dim(-1), 2},
		{"1.191e-16 W*m^2/sr", dim(4, 1, -3), 1.191e-16},
		{"2 min", dim(0, 0, 1), 120},
	}
	for _, tc := range cases {
		q, err := Parse(tc.text)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tc.text, err)
			continue
		}
		if q.Dim() != tc.dim {
			t.Errorf("Parse(%q) dimension = %v, want %v", tc.text, q.Dim(), tc.dim)
		}
		if got := q.ToBase().Value(); math.Abs(got-tc.base) > 1e-12*math.Abs(tc.base) {
			t.Errorf("Parse(%q) base value = %g, want %g", tc.text, got, tc.base)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{"", "   ", "abc", "3 furlong", "3 m^x", "1 m/"} {
		_, err := Parse(text)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q) = %v, want *ParseError", text, err)
		}
	}
}

func TestToBaseIdempotent(t *testing.T) {
	q := MustParse("108 cm^4")
	once := q.ToBase()
	twice := once.ToBase()
	if !once.Equal(twice) {
		t.Errorf("ToBase not idempotent: %v vs %v", once, twice)
	}
	if once.Unit() != "m^4" {
		t.Errorf("base unit = %q, want m^4", once.Unit())
	}
}

func TestConvertTo(t *testing.T) {
	q := MustParse("1 m")
	cm, err := q.ConvertTo("cm")
	if err != nil {
		t.Fatalf("ConvertTo(cm) failed: %v", err)
	}
	if cm.Value() != 100 {
		t.Errorf("1 m = %g cm, want 100", cm.Value())
	}

	_, err = q.ConvertTo("s")
	var derr *DimensionalityError
	if !errors.As(err, &derr) {
		t.Errorf("ConvertTo(s) = %v, want *DimensionalityError", err)
	}
}

func TestArithmetic(t *testing.T) {
	a := MustParse("1 m")
	b := MustParse("50 cm")

	sum := a.Add(b)
	if got := sum.ToBase().Value(); got != 1.5 {
		t.Errorf("1m + 50cm = %g m, want 1.5", got)
	}

	area := a.Mul(b)
	if area.Dim() != dim(2) {
		t.Errorf("m*cm dimension = %v, want m^2", area.Dim())
	}

	ratio := a.Div(b)
	if !ratio.Dim().IsZero() || ratio.Value() != 2 {
		t.Errorf("1m / 50cm = %v, want dimensionless 2", ratio)
	}

	freq := Sqrt(MustParse("4 N/m").Div(MustParse("1 kg")))
	if freq.Dim() != dim(0, 0, -1) || freq.Value() != 2 {
		t.Errorf("sqrt(k/m) = %v, want 2 1/s", freq)
	}
}

func TestAddDimensionMismatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		if _, ok := r.(*DimensionalityError); !ok {
			t.Errorf("recovered %v, want *DimensionalityError", r)
		}
	}()
	MustParse("1 m").Add(MustParse("1 s"))
}

func TestLinspace(t *testing.T) {
	x := Linspace(MustParse("0 m"), MustParse("1 m"), 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	vs := x.Values()
	if len(vs) != len(want) {
		t.Fatalf("Linspace length = %d, want %d", len(vs), len(want))
	}
	for i := range want {
		if vs[i] != want[i] {
			t.Errorf("Linspace[%d] = %g, want %g", i, vs[i], want[i])
		}
	}
}

func TestBroadcastArithmetic(t *testing.T) {
	xs, err := FromValues([]float64{1, 2, 3}, "m")
	if err != nil {
		t.Fatal(err)
	}
	doubled := xs.ScaleBy(2)
	if got := doubled.Values(); got[2] != 6 {
		t.Errorf("scale by 2 = %v", got)
	}
	shifted := xs.Add(MustParse("1 m"))
	if got := shifted.ToBase().Values(); got[0] != 2 || got[2] != 4 {
		t.Errorf("series + scalar = %v", got)
	}
}

func TestFormatLocale(t *testing.T) {
	q := MustParse("0.5 m")
	if got := q.Format(6, language.English); got != "0.5 m" {
		t.Errorf("English format = %q, want %q", got, "0.5 m")
	}
	if got := q.Format(6, language.German); got != "0,5 m" {
		t.Errorf("German format = %q, want %q", got, "0,5 m")
	}
}

func TestParseList(t *testing.T) {
	qs, err := ParseList("1 m; 2 m ;3 m")
	if err != nil {
		t.Fatalf("ParseList failed: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("ParseList length = %d, want 3", len(qs))
	}
	if qs[1].ToBase().Value() != 2 {
		t.Errorf("second entry = %v, want 2 m", qs[1])
	}
}
