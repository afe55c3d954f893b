// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/s-quirin/easyguing/internal/ui/styles"
)

// =============================================================================
// TOAST
// =============================================================================

// ToastKind selects the toast's severity styling and display duration.
type ToastKind int

const (
	ToastError ToastKind = iota
	ToastWarning
	ToastInfo
)

// duration returns how long a toast of this kind stays visible.
func (k ToastKind) duration() time.Duration {
	switch k {
	case ToastError:
		return 6 * time.Second
	case ToastWarning:
		return 4 * time.Second
	default:
		return 2 * time.Second
	}
}

// ToastExpiredMsg dismisses the toast identified by sequence number. Stale
// expirations of earlier toasts are ignored.
type ToastExpiredMsg struct {
	Seq int
}

// Toast is a transient message overlay. Showing a new toast replaces the
// current one and restarts the dismissal timer.
type Toast struct {
	kind    ToastKind
	title   string
	message string
	visible bool
	seq     int
}

// NewToast creates a hidden toast.
func NewToast() Toast {
	return Toast{}
}

// Show displays a toast and returns the command scheduling its dismissal.
func (t *Toast) Show(kind ToastKind, title, message string) tea.Cmd {
	t.kind = kind
	t.title = title
	t.message = message
	t.visible = true
	t.seq++
	seq := t.seq
	return tea.Tick(kind.duration(), func(time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}

// Update hides the toast when its own expiration fires.
func (t Toast) Update(msg tea.Msg) Toast {
	if m, ok := msg.(ToastExpiredMsg); ok && m.Seq == t.seq {
		t.visible = false
	}
	return t
}

// Hide dismisses the toast immediately.
func (t *Toast) Hide() {
	t.visible = false
}

// Visible reports whether the toast is showing.
func (t Toast) Visible() bool {
	return t.visible
}

// View renders the toast box.
func (t Toast) View(theme *styles.Theme) string {
	if !t.visible {
		return ""
	}
	title := theme.ErrorTitle
	if t.kind != ToastError {
		title = theme.StatusPending
	}
	return theme.ErrorBox.Render(
		title.Render(t.title) + "\n" + theme.ErrorMessage.Render(t.message))
}
