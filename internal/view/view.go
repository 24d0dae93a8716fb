// Package view renders tracker snapshots as terminal text. Every function is
// a pure function of a snapshot and a Theme; nothing here holds state.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"timetracker/internal/duration"
	"timetracker/internal/usecase"
)

// Theme is the immutable palette threaded into every render call.
type Theme struct {
	text    lipgloss.Style
	dim     lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	danger  lipgloss.Style
}

// NewTheme returns the dark or light palette.
func NewTheme(dark bool) Theme {
	var t Theme
	if dark {
		t.text = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		t.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		t.running = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))
		t.paused = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("179"))
	} else {
		t.text = lipgloss.NewStyle().Foreground(lipgloss.Color("235"))
		t.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		t.running = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28"))
		t.paused = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130"))
	}
	t.danger = lipgloss.NewStyle().Foreground(lipgloss.Color("#c84000"))
	return t
}

// ThemeOf picks the palette stored in a snapshot.
func ThemeOf(s usecase.Snapshot) Theme { return NewTheme(s.DarkMode) }

// Clock renders the elapsed time as "H:MM" with dimmed seconds.
func Clock(s usecase.Snapshot, th Theme) string {
	style, state := th.paused, "paused"
	if s.Running {
		style, state = th.running, "running"
	}
	seconds := fmt.Sprintf(":%02d", int64(s.Elapsed.Seconds())%60)
	return style.Render(duration.FormatHM(s.Elapsed)) + th.dim.Render(seconds) + " " + th.dim.Render(state)
}

// Prompt is the shell prompt showing the clock. It stays unstyled so the
// line editor measures its width correctly.
func Prompt(s usecase.Snapshot) string {
	marker := "||"
	if s.Running {
		marker = ">"
	}
	return fmt.Sprintf("%s %s> ", marker, duration.FormatHMS(s.Elapsed))
}

// Ledger renders one line per entry: position, "H:MM" and description.
func Ledger(s usecase.Snapshot, th Theme) string {
	if len(s.Entries) == 0 {
		return th.dim.Render("no tracked times")
	}
	var b strings.Builder
	for i, e := range s.Entries {
		fmt.Fprintf(&b, "%s %s  %s\n",
			th.dim.Render(fmt.Sprintf("%3d", i+1)),
			th.text.Render(fmt.Sprintf("%6s", duration.FormatHM(e.Duration))),
			th.text.Render(e.Description),
		)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Inputs renders the pending apply buffers, using the placeholders the
// form shows when a field is empty.
func Inputs(s usecase.Snapshot, th Theme) string {
	field := func(v, placeholder string) string {
		if v == "" {
			return th.dim.Render(placeholder)
		}
		return th.text.Render(v)
	}
	return fmt.Sprintf("add %s to new entry %s or existing entry %s",
		field(s.Inputs.Time, "all"),
		field(s.Inputs.Description, "description"),
		field(s.Inputs.Index, "#"),
	)
}

// Rejection renders an outcome that changed nothing.
func Rejection(o usecase.Outcome, th Theme) string {
	return th.danger.Render(strings.ReplaceAll(o.String(), "_", " "))
}
