package run

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/hooks/tui/theme"
	"github.com/mattn/go-isatty"
)

const summaryWidth = 60

// WantColor reports whether summary output to f should be styled.
func WantColor(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderSummary writes the per-hook summary in declaration order: one line
// per hook with its pass/fail/skip status, followed by the captured output of
// every failed hook.
func RenderSummary(w io.Writer, results Results, colored bool) {
	// Ids may repeat across sources; ambiguous ones are shown as repo:id.
	idCount := make(map[string]int, len(results))
	for _, r := range results {
		idCount[r.HookID]++
	}

	for _, r := range results {
		label, style := statusLabel(r)

		name := r.HookID
		if r.Hook != nil && r.Hook.Name != "" {
			name = r.Hook.Name
		}
		if idCount[r.HookID] > 1 && r.Repo != "" {
			name = r.Repo + ":" + name
		}

		dots := summaryWidth - len(name) - len(label)
		if dots < 3 {
			dots = 3
		}

		if colored {
			label = style.Render(label)
		}
		fmt.Fprintf(w, "%s%s%s\n", name, strings.Repeat(".", dots), label)

		if r.Status == StatusFailed {
			fmt.Fprintf(w, "- hook id: %s\n", r.HookID)
			if r.ExitCode != 0 {
				fmt.Fprintf(w, "- exit code: %d\n", r.ExitCode)
			}
			if out := strings.TrimSpace(r.Output); out != "" {
				fmt.Fprintln(w)
				fmt.Fprintln(w, out)
			}
			fmt.Fprintln(w)
		}
	}

	passed, failed, skipped := results.Counts()
	line := fmt.Sprintf("%d passed, %d failed, %d skipped", passed, failed, skipped)
	if colored {
		line = theme.DefaultTheme.Muted.Render(line)
	}
	fmt.Fprintln(w, line)
}

func statusLabel(r InvocationResult) (string, lipgloss.Style) {
	t := theme.DefaultTheme
	switch r.Status {
	case StatusPassed:
		return "Passed", t.Success
	case StatusFailed:
		return "Failed", t.Error
	default:
		return "Skipped", t.Muted
	}
}
