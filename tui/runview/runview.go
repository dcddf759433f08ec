// Package runview renders a live view of a hook dispatch. Hooks appear in
// declaration order with a spinner while running and a status glyph once
// finished; the program exits when the dispatch completes.
package runview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/hooks/config"
	"github.com/grovetools/hooks/run"
	"github.com/grovetools/hooks/tui/theme"
)

// HookStartedMsg marks a hook as running. Index is the hook's declaration
// position; ids may repeat across sources, so rows are addressed by
// position, never by id.
type HookStartedMsg struct {
	Index   int
	Matched int
}

// HookResultMsg carries a finished hook's result.
type HookResultMsg struct {
	Index  int
	Result run.InvocationResult
}

// DoneMsg ends the program once the dispatcher has returned.
type DoneMsg struct {
	Results run.Results
	Err     error
}

const timeResolution = time.Millisecond

type hookState int

const (
	statePending hookState = iota
	stateRunning
	stateDone
)

type row struct {
	hook    *config.Hook
	state   hookState
	matched int
	result  run.InvocationResult
}

// Model is the bubbletea model for a live dispatch.
type Model struct {
	rows    []row
	spinner spinner.Model
	theme   *theme.Theme

	done    bool
	aborted bool
	results run.Results
	runErr  error
}

// New builds a model for the given hooks, in the order they will run.
func New(hooks []*config.Hook) Model {
	t := theme.DefaultTheme

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = t.Accent

	rows := make([]row, len(hooks))
	for i, h := range hooks {
		rows[i] = row{hook: h}
	}

	return Model{
		rows:    rows,
		spinner: sp,
		theme:   t,
	}
}

// Results returns the dispatch results once the program has finished.
func (m Model) Results() (run.Results, error) {
	return m.results, m.runErr
}

// Aborted reports whether the user quit before the dispatch finished.
func (m Model) Aborted() bool {
	return m.aborted
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.done {
				m.aborted = true
			}
			return m, tea.Quit
		}

	case HookStartedMsg:
		if msg.Index >= 0 && msg.Index < len(m.rows) {
			m.rows[msg.Index].state = stateRunning
			m.rows[msg.Index].matched = msg.Matched
		}
		return m, nil

	case HookResultMsg:
		if msg.Index >= 0 && msg.Index < len(m.rows) {
			m.rows[msg.Index].state = stateDone
			m.rows[msg.Index].result = msg.Result
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.results = msg.Results
		m.runErr = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Running hooks"))
	b.WriteString("\n\n")

	for _, r := range m.rows {
		b.WriteString("  ")
		b.WriteString(m.renderRow(r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		passed, failed, skipped := m.results.Counts()
		b.WriteString(m.theme.Muted.Render(
			fmt.Sprintf("%d passed, %d failed, %d skipped", passed, failed, skipped)))
	} else {
		b.WriteString(m.theme.Muted.Render("press q to abort"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderRow(r row) string {
	name := r.hook.ID
	if r.hook.Name != "" {
		name = r.hook.Name
	}

	switch r.state {
	case stateRunning:
		return fmt.Sprintf("%s %s %s", m.spinner.View(), name,
			m.theme.Muted.Render(fmt.Sprintf("(%d files)", r.matched)))
	case stateDone:
		glyph, label := m.statusGlyph(r.result.Status)
		line := fmt.Sprintf("%s %s %s", glyph, name, label)
		if r.result.Status != run.StatusSkipped {
			line += " " + m.theme.Muted.Render(r.result.Duration.Round(timeResolution).String())
		}
		return line
	default:
		return fmt.Sprintf("%s %s", m.theme.Muted.Render("·"), m.theme.Muted.Render(name))
	}
}

func (m Model) statusGlyph(s run.Status) (string, string) {
	switch s {
	case run.StatusPassed:
		return m.theme.Success.Render("✓"), m.theme.Success.Render("passed")
	case run.StatusFailed:
		return m.theme.Error.Render("✗"), m.theme.Error.Render("failed")
	default:
		return m.theme.Muted.Render("↷"), m.theme.Muted.Render("skipped")
	}
}
