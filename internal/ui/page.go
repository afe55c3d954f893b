// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/s-quirin/easyguing/internal/config"
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/plot"
	"github.com/s-quirin/easyguing/internal/quantity"
	"github.com/s-quirin/easyguing/internal/storage"
	"github.com/s-quirin/easyguing/internal/ui/components"
	"github.com/s-quirin/easyguing/internal/ui/styles"
)

// =============================================================================
// MODEL PAGE
// =============================================================================

// Page is the interactive view of one model: its input fields, option
// selectors and marker checkboxes on the left, the live plot on the right.
// The page owns its curve cache and dispatcher; every edit resyncs the
// cache and submits the stale remainder as a background batch.
type Page struct {
	theme *styles.Theme
	cfg   *config.Config
	desc  *model.Descriptor

	fields    []components.QuantityField
	selectors []components.OptionSelector
	markMin   components.TriCheckbox
	markMax   components.TriCheckbox
	markCalc  components.TriCheckbox
	focus     int

	snap     *plot.Snapshot
	cache    *plot.Cache
	disp     *plot.Dispatcher
	fig      *plot.Figure
	plotView string

	calcX, calcY quantity.Quantity
	calcText     string

	spinner components.Spinner
	status  components.StatusBar
	toast   components.Toast

	history *storage.History

	width, height int
}

// NewPage creates the page of one descriptor with every field pre-filled
// from the model's representative values.
func NewPage(theme *styles.Theme, cfg *config.Config, desc *model.Descriptor, history *storage.History) *Page {
	p := &Page{
		theme:    theme,
		cfg:      cfg,
		desc:     desc,
		cache:    plot.NewCache(),
		disp:     plot.NewDispatcher(desc.Key, plot.Evaluator(desc, cfg.Plot.IntegrationSteps)),
		markMin:  components.NewTriCheckbox("Mark minimum"),
		markMax:  components.NewTriCheckbox("Mark maximum"),
		markCalc: components.NewTriCheckbox("Mark calculation"),
		spinner:  components.NewSpinner(),
		status:   components.NewStatusBar(),
		toast:    components.NewToast(),
		history:  history,
	}
	p.status.SetModel(desc.Title)
	p.status.SetPoints(cfg.Plot.Points)

	p.selectors = append(p.selectors,
		components.NewOptionSelector(desc.Output.Name, desc.Output.Choices))
	for _, opt := range desc.Options {
		p.selectors = append(p.selectors, components.NewOptionSelector(opt.Name, opt.Choices))
	}
	p.rebuildFields()
	return p
}

// Init starts the first computation batch.
func (p *Page) Init() tea.Cmd {
	p.applyFocus()
	return p.resync()
}

// SetSize propagates the terminal dimensions.
func (p *Page) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.status.SetWidth(width)
}

// State returns the dispatcher tri-state for status displays.
func (p *Page) State() plot.State {
	return p.disp.State()
}

// choices assembles the current option selections.
func (p *Page) choices() model.Choices {
	c := make(model.Choices, len(p.selectors))
	for _, s := range p.selectors {
		c[s.Name] = s.Value()
	}
	return c
}

// rebuildFields recreates the input fields for the active inputs,
// preserving the text of fields that survive the choice change.
func (p *Page) rebuildFields() {
	kept := make(map[string]string, len(p.fields))
	for _, f := range p.fields {
		kept[f.Key] = f.Value()
	}
	p.fields = p.fields[:0]
	for _, in := range p.desc.ActiveInputs(p.choices()) {
		text, ok := kept[in.Key]
		if !ok {
			text = defaultText(in)
		}
		p.fields = append(p.fields, components.NewQuantityField(in.Key, in.Name, in.Unit, text))
	}
	if p.focus >= p.focusCount() {
		p.focus = 0
	}
}

// defaultText renders an input's representative values as list text.
func defaultText(in model.Input) string {
	parts := make([]string, len(in.Values))
	for i, v := range in.Values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		if in.Unit != "" {
			parts[i] += " " + in.Unit
		}
	}
	return strings.Join(parts, "; ")
}

// fieldTexts maps input key to current field text.
func (p *Page) fieldTexts() map[string]string {
	texts := make(map[string]string, len(p.fields))
	for _, f := range p.fields {
		texts[f.Key] = f.Value()
	}
	return texts
}

// =============================================================================
// FOCUS HANDLING
// =============================================================================

// Focus order: input fields, option selectors, the three checkboxes.
func (p *Page) focusCount() int {
	return len(p.fields) + len(p.selectors) + 3
}

func (p *Page) applyFocus() {
	for i := range p.fields {
		if i == p.focus {
			p.fields[i].Focus()
		} else {
			p.fields[i].Blur()
		}
	}
	for i := range p.selectors {
		if len(p.fields)+i == p.focus {
			p.selectors[i].Focus()
		} else {
			p.selectors[i].Blur()
		}
	}
	base := len(p.fields) + len(p.selectors)
	boxes := []*components.TriCheckbox{&p.markMin, &p.markMax, &p.markCalc}
	for i, b := range boxes {
		if base+i == p.focus {
			b.Focus()
		} else {
			b.Blur()
		}
	}
}

func (p *Page) moveFocus(delta int) {
	n := p.focusCount()
	p.focus = (p.focus + delta + n) % n
	p.applyFocus()
}

func (p *Page) focusedField() *components.QuantityField {
	if p.focus < len(p.fields) {
		return &p.fields[p.focus]
	}
	return nil
}

func (p *Page) focusedSelector() *components.OptionSelector {
	i := p.focus - len(p.fields)
	if i >= 0 && i < len(p.selectors) {
		return &p.selectors[i]
	}
	return nil
}

func (p *Page) focusedCheckbox() *components.TriCheckbox {
	switch p.focus - len(p.fields) - len(p.selectors) {
	case 0:
		return &p.markMin
	case 1:
		return &p.markMax
	case 2:
		return &p.markCalc
	}
	return nil
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the page.
func (p *Page) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)

	case BatchDoneMsg:
		if msg.Model != p.desc.Key {
			return nil, false
		}
		return p.onBatchDone(msg.Result), true

	case components.ToastExpiredMsg:
		p.toast = p.toast.Update(msg)
		return nil, true

	case ExportDoneMsg:
		if msg.Err != nil {
			return p.toast.Show(components.ToastError, "Export failed", msg.Err.Error()), true
		}
		return p.toast.Show(components.ToastInfo, "Exported", msg.Path), true
	}

	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	return cmd, cmd != nil
}

// handleKey processes keyboard input while this page is active.
func (p *Page) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "up", "shift+tab":
		p.moveFocus(-1)
		return nil, true
	case "down":
		p.moveFocus(1)
		return nil, true

	case "left", "right":
		if s := p.focusedSelector(); s != nil {
			if msg.String() == "left" {
				s.Prev()
			} else {
				s.Next()
			}
			p.rebuildFields()
			p.applyFocus()
			return p.resync(), true
		}
		if c := p.focusedCheckbox(); c != nil {
			c.Toggle()
			p.refreshMarkers()
			return nil, true
		}

	case "enter":
		if s := p.focusedSelector(); s != nil {
			s.Next()
			p.rebuildFields()
			p.applyFocus()
			return p.resync(), true
		}
		if c := p.focusedCheckbox(); c != nil {
			c.Toggle()
			p.refreshMarkers()
			return nil, true
		}
		return p.calculate(), true

	case "ctrl+e":
		return p.export(), true
	}

	if f := p.focusedField(); f != nil {
		var cmd tea.Cmd
		*f, cmd = f.Update(msg)
		return tea.Batch(cmd, p.resync()), true
	}
	return nil, false
}

// =============================================================================
// RECOMPUTATION
// =============================================================================

// resync rebuilds the snapshot from the current fields, reconciles the
// cache against it and submits the stale remainder. Invalid field text
// keeps the previous snapshot and plot; the status switches to pending so
// the staleness stays visible.
func (p *Page) resync() tea.Cmd {
	for _, f := range p.fields {
		if f.Err() != nil {
			p.disp.MarkPending()
			p.refreshStatus()
			return nil
		}
	}

	snap, err := plot.BuildSnapshot(p.desc, p.fieldTexts(), p.choices(), p.desc.PlotX, p.cfg.Plot.Points)
	if err != nil {
		p.disp.MarkPending()
		p.refreshStatus()
		return p.toast.Show(components.ToastError, "Invalid input", err.Error())
	}
	p.snap = snap

	if stale := p.cache.Sync(snap); stale == 0 {
		// Everything is up to date; a pending mark from an earlier
		// invalid or reverted edit is cleared.
		p.disp.MarkSynced()
		p.rebuildFigure()
		p.refreshStatus()
		return nil
	}
	if !p.disp.Submit(p.cache.Slots()) {
		// A batch is running; its completion signal carries the coalesced
		// flag and triggers the follow-up resync.
		p.refreshStatus()
		return nil
	}
	p.refreshStatus()
	return tea.Batch(p.spinner.Start(), p.awaitBatch())
}

// awaitBatch blocks on the dispatcher's completion channel.
func (p *Page) awaitBatch() tea.Cmd {
	done := p.disp.Done()
	key := p.desc.Key
	return func() tea.Msg {
		return BatchDoneMsg{Model: key, Result: <-done}
	}
}

// onBatchDone handles one batch completion.
func (p *Page) onBatchDone(res plot.BatchResult) tea.Cmd {
	p.spinner.Stop()
	p.refreshStatus()

	var cmds []tea.Cmd
	if res.Err != nil {
		cmds = append(cmds, p.toast.Show(components.ToastError, "Computation failed", res.Err.Error()))
	}
	if res.Coalesced {
		cmds = append(cmds, p.resync())
	} else if res.Err == nil {
		p.rebuildFigure()
	}
	return tea.Batch(cmds...)
}

// rebuildFigure post-processes the resolved cache into the rendered plot.
func (p *Page) rebuildFigure() {
	if p.snap == nil || !p.cache.Ready() {
		return
	}
	fig, err := plot.BuildFigure(p.desc, p.snap, p.cache,
		p.markMin.State, p.markMax.State, p.cfg.Format.Precision, p.cfg.LanguageTag())
	if err != nil {
		p.plotView = ""
		p.fig = nil
		return
	}
	if !p.calcY.IsZero() {
		plot.MarkCalculation(fig, p.markCalc.State, p.calcX, p.calcY, p.calcText)
	}
	p.fig = fig

	w, h := p.plotSize()
	p.plotView = plot.RenderGrid(fig, w, h)
}

// refreshMarkers re-applies the checkbox states without recomputation.
func (p *Page) refreshMarkers() {
	p.rebuildFigure()
}

func (p *Page) refreshStatus() {
	p.status.SetState(p.disp.State())
	p.status.SetPoints(p.cfg.Plot.Points)
}

// plotSize derives the plot cell budget from the window size.
func (p *Page) plotSize() (int, int) {
	w := p.width - 46
	h := p.height - 6
	if w < 30 {
		w = 60
	}
	if h < 8 {
		h = 16
	}
	return w, h
}

// =============================================================================
// POINT CALCULATION
// =============================================================================

// calculate runs the scalar point calculation with the first value of
// every field list and records the result in the history.
func (p *Page) calculate() tea.Cmd {
	vars := make(map[string]quantity.Quantity, len(p.fields))
	inputs := make(map[string]string, len(p.fields))
	for _, f := range p.fields {
		qs, err := f.Quantities()
		if err != nil {
			return p.toast.Show(components.ToastError, "Invalid input", err.Error())
		}
		vars[f.Key] = qs[0]
		inputs[f.Key] = qs[0].String()
	}

	choices := p.choices()
	y, err := plot.CalcPoint(p.desc, vars, choices, p.cfg.Plot.IntegrationSteps)
	if err != nil {
		return p.toast.Show(components.ToastError, "Calculation failed", err.Error())
	}

	tag := p.cfg.LanguageTag()
	p.calcX = vars[p.desc.PlotX]
	p.calcY = y
	p.calcText = fmt.Sprintf("%s = %s",
		choices[p.desc.Output.Name], y.Format(p.cfg.Format.Precision, tag))
	p.rebuildFigure()

	if p.history != nil {
		_, err := p.history.Record(storage.Entry{
			Model:   p.desc.Key,
			Inputs:  inputs,
			Choices: choices,
			Result:  y.String(),
		})
		if err != nil {
			return p.toast.Show(components.ToastWarning, "History", err.Error())
		}
	}
	return nil
}

// =============================================================================
// PNG EXPORT
// =============================================================================

// export writes the current figure as PNG into the configured export
// directory.
func (p *Page) export() tea.Cmd {
	fig := p.fig
	if fig == nil {
		return p.toast.Show(components.ToastWarning, "Export", "nothing to export yet")
	}
	dir, err := p.cfg.ExportDir()
	if err != nil {
		return p.toast.Show(components.ToastError, "Export failed", err.Error())
	}
	width := p.cfg.Plot.Width
	height := p.cfg.Plot.Height
	name := fmt.Sprintf("%s-%s.png", p.desc.Key, time.Now().Format("20060102-150405"))

	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return ExportDoneMsg{Err: err}
		}
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return ExportDoneMsg{Err: err}
		}
		defer f.Close()
		if err := plot.RenderPNG(fig, f, width, height); err != nil {
			return ExportDoneMsg{Err: err}
		}
		return ExportDoneMsg{Path: path}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the page body (the app adds tabs and takes the full frame).
func (p *Page) View() string {
	var left strings.Builder
	for _, f := range p.fields {
		left.WriteString(f.View(p.theme))
		left.WriteString("\n")
	}
	left.WriteString("\n")
	for _, s := range p.selectors {
		left.WriteString(s.View(p.theme))
		left.WriteString("\n")
	}
	left.WriteString("\n")
	left.WriteString(p.markMin.View(p.theme) + "\n")
	left.WriteString(p.markMax.View(p.theme) + "\n")
	left.WriteString(p.markCalc.View(p.theme) + "\n")

	if p.calcText != "" {
		left.WriteString("\n" + p.theme.ResultValue.Render(p.calcText) + "\n")
	}
	if p.spinner.IsActive() {
		left.WriteString("\n" + p.spinner.View() + "\n")
	}
	if p.toast.Visible() {
		left.WriteString("\n" + p.toast.View(p.theme) + "\n")
	}

	body := left.String()
	if p.plotView != "" {
		title := p.theme.PlotTitle.Render(p.desc.Title)
		box := p.theme.PlotBox.Render(title + "\n" + p.plotView)
		if p.theme.CompactMode() {
			body += "\n" + box
		} else {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", box)
		}
	}
	return body + "\n" + p.status.View(p.theme)
}
