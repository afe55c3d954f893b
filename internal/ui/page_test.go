// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/s-quirin/easyguing/internal/config"
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/plot"
	"github.com/s-quirin/easyguing/internal/quantity"
	"github.com/s-quirin/easyguing/internal/ui/styles"
)

func lineModel() *model.Descriptor {
	return &model.Descriptor{
		Key:   "line",
		Title: "Line",
		Inputs: []model.Input{
			{Key: "x", Name: "x", Values: []float64{0, 1}, Unit: "m"},
			{Key: "slope", Name: "Slope", Values: []float64{2}, Unit: ""},
		},
		Output: model.Option{Name: "output", Choices: []string{"y"}},
		PlotX:  "x",
		Eval: func(env model.Env, vars map[string]quantity.Quantity, opts model.Choices) (quantity.Quantity, error) {
			return vars["slope"].Mul(vars["x"]), nil
		},
	}
}

func newTestPage(t *testing.T) *Page {
	t.Helper()
	cfg := config.Default()
	cfg.Plot.Points = 11
	p := NewPage(styles.NewTheme(), cfg, lineModel(), nil)
	p.SetSize(120, 40)
	return p
}

// runCmd executes a command tree and collects the produced messages.
// Commands run synchronously; the batch await blocks until completion.
func runCmd(cmd tea.Cmd, out *[]tea.Msg) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(c, out)
		}
		return
	}
	if msg != nil {
		*out = append(*out, msg)
	}
}

func completeBatch(t *testing.T, p *Page, cmd tea.Cmd) {
	t.Helper()
	var msgs []tea.Msg
	done := make(chan struct{})
	go func() {
		runCmd(cmd, &msgs)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("batch did not complete")
	}
	for _, msg := range msgs {
		if res, ok := msg.(BatchDoneMsg); ok {
			p.Update(res)
		}
	}
}

func TestPageInitialBatchRendersPlot(t *testing.T) {
	p := newTestPage(t)
	completeBatch(t, p, p.Init())

	if p.State() != plot.Idle {
		t.Errorf("state = %v, want Idle", p.State())
	}
	if p.plotView == "" {
		t.Error("no plot rendered after initial batch")
	}
	if p.fig == nil || len(p.fig.Curves) != 1 {
		t.Fatalf("figure not built")
	}
	ys := p.fig.Curves[0].Y
	if ys[len(ys)-1] != 2 {
		t.Errorf("f(1 m) = %g, want 2", ys[len(ys)-1])
	}
}

func TestPageCalculate(t *testing.T) {
	p := newTestPage(t)
	completeBatch(t, p, p.Init())

	// Focus starts on the first field; enter runs the point calculation
	// with the first value of every list.
	cmd, handled := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !handled {
		t.Fatal("enter not handled")
	}
	if cmd != nil {
		var msgs []tea.Msg
		runCmd(cmd, &msgs)
	}
	if p.calcText == "" {
		t.Fatal("no calculation result")
	}
	// f(0 m) with slope 2 is 0.
	if p.calcY.ToBase().Value() != 0 {
		t.Errorf("calc result = %g, want 0", p.calcY.ToBase().Value())
	}
}

func TestPageMarkerToggle(t *testing.T) {
	p := newTestPage(t)
	completeBatch(t, p, p.Init())

	// Move focus past fields and the output selector onto the minimum
	// checkbox, then toggle it on.
	for i := 0; i < len(p.fields)+len(p.selectors); i++ {
		p.moveFocus(1)
	}
	if p.focusedCheckbox() == nil {
		t.Fatal("focus did not land on a checkbox")
	}
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if p.markMin.State != plot.MarkOn {
		t.Errorf("markMin = %v, want MarkOn", p.markMin.State)
	}
	if p.fig.Marker(plot.MarkerMinID) == nil {
		t.Error("minimum marker not applied to figure")
	}
}

func TestPageInvalidEditKeepsPlot(t *testing.T) {
	p := newTestPage(t)
	completeBatch(t, p, p.Init())
	before := p.plotView

	p.fields[0].SetValue("garbage")
	cmd := p.resync()
	if cmd != nil {
		var msgs []tea.Msg
		runCmd(cmd, &msgs)
	}

	if p.plotView != before {
		t.Error("invalid edit replaced the rendered plot")
	}
	if p.State() != plot.PendingChanges {
		t.Errorf("state = %v, want PendingChanges", p.State())
	}
}

func TestPageRevertedEditReturnsIdle(t *testing.T) {
	p := newTestPage(t)
	completeBatch(t, p, p.Init())
	valid := p.fields[0].Value()

	p.fields[0].SetValue("garbage")
	completeBatch(t, p, p.resync())
	if p.State() != plot.PendingChanges {
		t.Fatalf("state = %v, want PendingChanges", p.State())
	}

	// Reverting to the already-computed text finds zero stale slots and
	// clears the pending mark without a recompute.
	p.fields[0].SetValue(valid)
	completeBatch(t, p, p.resync())
	if p.State() != plot.Idle {
		t.Errorf("state after revert = %v, want Idle", p.State())
	}
}
