// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/s-quirin/easyguing/internal/plot"
	"github.com/s-quirin/easyguing/internal/quantity"
	"github.com/s-quirin/easyguing/internal/ui/styles"
)

func TestQuantityFieldValidation(t *testing.T) {
	f := NewQuantityField("x", "Length", "m", "0; 500 mm; 1 m")
	if f.Err() != nil {
		t.Fatalf("valid list rejected: %v", f.Err())
	}
	qs, err := f.Quantities()
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 3 {
		t.Errorf("parsed %d quantities, want 3", len(qs))
	}

	f.SetValue("1 m; 2 s")
	var dimErr *quantity.DimensionalityError
	if !errors.As(f.Err(), &dimErr) {
		t.Errorf("mismatched dimension err = %v, want DimensionalityError", f.Err())
	}

	f.SetValue("not a number")
	if f.Err() == nil {
		t.Error("garbage text accepted")
	}

	f.SetValue("2 m")
	if f.Err() != nil {
		t.Errorf("recovered field still invalid: %v", f.Err())
	}
}

func TestQuantityFieldViewShowsError(t *testing.T) {
	theme := styles.NewTheme()
	f := NewQuantityField("x", "Length", "m", "1 s")
	if !strings.Contains(f.View(theme), "dimension") {
		t.Error("view does not surface the validation error")
	}
}

func TestTriCheckboxCycle(t *testing.T) {
	c := NewTriCheckbox("Minimum")
	want := []plot.MarkState{plot.MarkOn, plot.MarkLabel, plot.MarkOff}
	for _, state := range want {
		c.Toggle()
		if c.State != state {
			t.Fatalf("state = %v, want %v", c.State, state)
		}
	}
}

func TestOptionSelectorWraps(t *testing.T) {
	s := NewOptionSelector("output", []string{"y", "dy", "area"})
	if s.Value() != "y" {
		t.Fatalf("initial value = %q, want %q", s.Value(), "y")
	}
	s.Prev()
	if s.Value() != "area" {
		t.Errorf("prev wrapped to %q, want %q", s.Value(), "area")
	}
	s.Next()
	s.Next()
	if s.Value() != "dy" {
		t.Errorf("value = %q, want %q", s.Value(), "dy")
	}
	s.Select("area")
	if s.Value() != "area" {
		t.Errorf("select gave %q, want %q", s.Value(), "area")
	}
}

func TestToastSequenceIgnoresStaleExpiry(t *testing.T) {
	toast := NewToast()
	toast.Show(ToastInfo, "first", "message")
	firstSeq := toast.seq
	toast.Show(ToastError, "second", "message")

	toast = toast.Update(ToastExpiredMsg{Seq: firstSeq})
	if !toast.Visible() {
		t.Error("stale expiry dismissed the current toast")
	}
	toast = toast.Update(ToastExpiredMsg{Seq: toast.seq})
	if toast.Visible() {
		t.Error("matching expiry did not dismiss the toast")
	}
}

func TestStatusBarStates(t *testing.T) {
	theme := styles.NewTheme()
	b := NewStatusBar()
	b.SetModel("Beam deflection")
	b.SetPoints(101)

	for _, state := range []plot.State{plot.Idle, plot.Busy, plot.PendingChanges} {
		b.SetState(state)
		if !strings.Contains(b.View(theme), state.String()) {
			t.Errorf("status bar missing state %q", state)
		}
	}
}
