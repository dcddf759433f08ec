package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	hookerrors "github.com/grovetools/hooks/errors"
	"github.com/grovetools/hooks/logging"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the grove-hooks log file",
		Long: `Prints today's log file for a component. Components write their logs
under .grove-hooks/logs/ in the repository root.

Examples:
  # Show today's CLI log
  grove-hooks logs

  # Follow the dispatcher log
  grove-hooks logs --component dispatch -f
`,
		RunE: runLogsE,
	}

	cmd.Flags().String("component", "cli", "Component whose log to show")
	cmd.Flags().BoolP("follow", "f", false, "Follow log output")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	component, _ := cmd.Flags().GetString("component")
	follow, _ := cmd.Flags().GetBool("follow")

	path := logging.DefaultLogFile(component)
	if _, err := os.Stat(path); err != nil {
		return hookerrors.New(hookerrors.ErrCodeInvalidInput,
			fmt.Sprintf("no log file at %s", path)).
			WithDetail("suggestion", "run a command first, or check GROVE_HOOKS_LOG_LEVEL")
	}

	if !follow {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			fmt.Fprintln(cmd.OutOrStdout(), scanner.Text())
		}
		return scanner.Err()
	}

	t, err := tail.TailFile(path, tail.Config{Follow: true, ReOpen: true, MustExist: true})
	if err != nil {
		return err
	}
	defer t.Cleanup()

	for {
		select {
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				return line.Err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line.Text)
		case <-cmd.Context().Done():
			_ = t.Stop()
			return nil
		}
	}
}
