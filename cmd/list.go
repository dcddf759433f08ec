package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/config"
	"github.com/grovetools/hooks/state"
	"github.com/grovetools/hooks/tui/theme"
)

type listedHook struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Filter    string   `json:"filter"`
	Args      []string `json:"args,omitempty"`
	AlwaysRun bool     `json:"always_run,omitempty"`
}

type listedSource struct {
	Repo  string       `json:"repo"`
	Rev   string       `json:"rev"`
	Hooks []listedHook `json:"hooks"`
}

type listOutput struct {
	Path               string         `json:"path"`
	AutoupdateSchedule string         `json:"autoupdate_schedule,omitempty"`
	Sources            []listedSource `json:"sources"`
}

// NewListCmd creates the `list` command.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured hooks in declaration order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			reg, err := cfg.Compile()
			if err != nil {
				return err
			}

			out := buildListOutput(cfg, reg)
			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			t := theme.DefaultTheme
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", t.Title.Render(out.Path))
			if lr, ok, _ := state.GetLastRun(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", t.Muted.Render(fmt.Sprintf(
					"last run: %s (%d passed, %d failed, %d skipped)",
					lr.At.Format("2006-01-02 15:04:05"), lr.Passed, lr.Failed, lr.Skipped)))
			}
			if out.AutoupdateSchedule != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n",
					t.Muted.Render("autoupdate: "+out.AutoupdateSchedule))
			}
			for _, src := range out.Sources {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s\n",
					t.Accent.Render(src.Repo), t.Muted.Render("@ "+src.Rev))
				for _, h := range src.Hooks {
					line := fmt.Sprintf("  %s", h.ID)
					if h.Name != h.ID {
						line += fmt.Sprintf(" (%s)", h.Name)
					}
					if h.AlwaysRun {
						line += " " + t.Warning.Render("[always]")
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
					fmt.Fprintf(cmd.OutOrStdout(), "    %s\n",
						t.Muted.Render("files: "+describeFilter(h.Filter)))
				}
			}
			return nil
		},
	}
}

func buildListOutput(cfg *config.Config, reg *config.Registry) listOutput {
	out := listOutput{
		Path:               cfg.Path(),
		AutoupdateSchedule: reg.CI.AutoupdateSchedule,
	}
	for _, src := range reg.Sources {
		listed := listedSource{Repo: src.URL, Rev: src.Rev}
		for _, h := range src.Hooks {
			listed.Hooks = append(listed.Hooks, listedHook{
				ID:        h.ID,
				Name:      h.Name,
				Filter:    h.FilterPattern(),
				Args:      h.Args,
				AlwaysRun: h.AlwaysRun,
			})
		}
		out.Sources = append(out.Sources, listed)
	}
	return out
}

func describeFilter(pattern string) string {
	if pattern == "" {
		return "(all files)"
	}
	return pattern
}
