package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/meworkbook/internal/config"
)

// ConfigInitOptions holds flags for the config init command.
type ConfigInitOptions struct {
	*RootOptions
	Force bool
}

// ConfigInitResult is the JSON payload of config init.
type ConfigInitResult struct {
	Path     string `json:"path"`
	Database string `json:"database"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(NewConfigInitCommand(rootOpts))
	return cmd
}

// NewConfigInitCommand creates the config init command.
func NewConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigInitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write the default configuration as YAML. The file goes to --config when
given, otherwise to the user config path. --db sets storage.path in the
written file. An existing file is kept unless --force is set.

Examples:
  meworkbook config init
  meworkbook config init --config ./workbook.yaml --db ./workbook.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)

			path := rootOpts.Config
			if path == "" {
				path = config.UserConfigPath()
			}
			if path == "" {
				return f.Fail(usageError("no home directory; pass --config"))
			}

			if _, err := os.Stat(path); err == nil && !opts.Force {
				return f.Fail(usageError("%s already exists; pass --force to overwrite", path))
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return f.Fail(codedError(ExitFailure, ErrCodeWriteFailed, "failed to check config file", err))
			}

			cfg := config.DefaultConfig()
			if rootOpts.Database != "" {
				cfg.Storage.Path = rootOpts.Database
			}
			if err := cfg.SaveToFile(path); err != nil {
				return f.Fail(codedError(ExitFailure, ErrCodeWriteFailed, "failed to write config", err))
			}

			result := ConfigInitResult{Path: path, Database: cfg.Storage.Path}
			return f.Result(result, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Wrote %s\n", result.Path)
				fmt.Fprintf(w, "  storage.path: %s\n", result.Database)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing config file")
	return cmd
}
