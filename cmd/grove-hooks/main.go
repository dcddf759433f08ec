package main

import (
	"errors"
	"os"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/cmd"
	"github.com/grovetools/hooks/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"grove-hooks",
		"Configuration-driven git hook runner",
	)
	cli.SetVersionTemplate(rootCmd, version.GetInfo())

	rootCmd.AddCommand(cmd.NewRunCmd())
	rootCmd.AddCommand(cmd.NewValidateCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewInstallCmd())
	rootCmd.AddCommand(cmd.NewUninstallCmd())
	rootCmd.AddCommand(cmd.NewInitCmd())
	rootCmd.AddCommand(cmd.NewLogsCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("grove-hooks"))

	cli.ApplyStyledHelpRecursive(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrHookFailure) {
			verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
			_ = cli.NewErrorHandler(verbose).Handle(err)
		}
		os.Exit(1)
	}
}
