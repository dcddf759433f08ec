package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/config"
	hookerrors "github.com/grovetools/hooks/errors"
	"github.com/grovetools/hooks/schema"
	"github.com/grovetools/hooks/tui/theme"
)

// NewValidateCmd creates the `validate` command.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a hook configuration file",
		Long: `Checks a hook configuration against the schema, then verifies the
semantic rules the schema cannot express: required fields, unique hook
ids per source, and compilable file filters.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(cmd, args)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return hookerrors.ConfigNotFound(path)
			}

			validator, err := schema.NewValidator()
			if err != nil {
				return err
			}
			if err := validator.ValidateYAML(data); err != nil {
				return err
			}

			cfg, err := config.LoadFromBytes(data)
			if err != nil {
				return err
			}
			reg, err := cfg.Compile()
			if err != nil {
				return err
			}

			hooks := reg.Hooks()
			if cli.GetOptions(cmd).JSONOutput {
				out := map[string]interface{}{
					"valid":   true,
					"path":    path,
					"sources": len(reg.Sources),
					"hooks":   len(hooks),
				}
				data, _ := json.MarshalIndent(out, "", "  ")
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			t := theme.DefaultTheme
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is valid (%d sources, %d hooks)\n",
				t.Success.Render("✓"), path, len(reg.Sources), len(hooks))
			return nil
		},
	}
}

// resolveConfigPath picks the file to validate: positional argument, then
// --config, then walk-up discovery.
func resolveConfigPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if configFile := cli.GetOptions(cmd).ConfigFile; configFile != "" {
		return configFile, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return config.FindConfigFile(cwd)
}
