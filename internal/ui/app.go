// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/s-quirin/easyguing/internal/config"
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/plot"
	"github.com/s-quirin/easyguing/internal/storage"
	"github.com/s-quirin/easyguing/internal/ui/styles"
)

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// App is the top-level Bubble Tea model: one tab per registered model,
// with the active page owning the keyboard.
type App struct {
	theme *styles.Theme
	cfg   *config.Config

	pages  []*Page
	active int

	showDesc bool
	descView string

	width  int
	height int
}

// NewApp creates the application over the given descriptors.
func NewApp(theme *styles.Theme, cfg *config.Config, descs []*model.Descriptor, history *storage.History) *App {
	a := &App{theme: theme, cfg: cfg}
	for _, d := range descs {
		a.pages = append(a.pages, NewPage(theme, cfg, d, history))
	}
	return a
}

// Init starts the active page's first computation.
func (a *App) Init() tea.Cmd {
	if len(a.pages) == 0 {
		return tea.Quit
	}
	return a.pages[a.active].Init()
}

// Update handles messages and routes them to the active page.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		for _, p := range a.pages {
			p.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit

		case "tab":
			return a, a.switchPage(1)
		case "shift+tab":
			return a, a.switchPage(-1)

		case "ctrl+d":
			a.toggleDescription()
			return a, nil
		}
		if a.showDesc {
			// Any other key closes the description overlay.
			a.showDesc = false
			return a, nil
		}

	case ConfigReloadedMsg:
		a.cfg = msg.Cfg
		var cmds []tea.Cmd
		for _, p := range a.pages {
			p.cfg = msg.Cfg
			p.disp.SetEvaluator(plot.Evaluator(p.desc, msg.Cfg.Plot.IntegrationSteps))
			p.disp.MarkPending()
			p.refreshStatus()
		}
		cmds = append(cmds, a.pages[a.active].resync())
		return a, tea.Batch(cmds...)
	}

	// Batch completions address their page by model key, everything else
	// goes to the active page.
	if done, ok := msg.(BatchDoneMsg); ok {
		for _, p := range a.pages {
			if p.desc.Key == done.Model {
				cmd, _ := p.Update(msg)
				return a, cmd
			}
		}
		return a, nil
	}

	cmd, _ := a.pages[a.active].Update(msg)
	return a, cmd
}

// switchPage activates the neighboring tab and resyncs it, picking up
// edits that happened while another page owned the dispatcher display.
func (a *App) switchPage(delta int) tea.Cmd {
	n := len(a.pages)
	if n < 2 {
		return nil
	}
	a.showDesc = false
	a.active = (a.active + delta + n) % n
	page := a.pages[a.active]
	page.SetSize(a.width, a.height)
	return page.resync()
}

// toggleDescription renders the model description lazily via glamour.
func (a *App) toggleDescription() {
	a.showDesc = !a.showDesc
	if !a.showDesc {
		return
	}
	desc := a.pages[a.active].desc
	text := "# " + desc.Title + "\n\n" + desc.Description
	if desc.Author != "" || desc.Version != "" {
		text += "\n\n---\n" + desc.Author + " " + desc.Version
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		a.descView = text
		return
	}
	out, err := r.Render(text)
	if err != nil {
		a.descView = text
		return
	}
	a.descView = out
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the tab bar and the active page.
func (a *App) View() string {
	if len(a.pages) == 0 {
		return "no models registered"
	}

	var tabs []string
	for i, p := range a.pages {
		style := a.theme.Tab
		if i == a.active {
			style = a.theme.TabActive
		}
		tabs = append(tabs, style.Render(p.desc.Title))
	}
	header := a.theme.HeaderBrand.Render("easyguing") + "  " + strings.Join(tabs, " ")

	if a.showDesc {
		return header + "\n" + a.theme.Description.Render(a.descView)
	}
	return header + "\n\n" + a.pages[a.active].View()
}
