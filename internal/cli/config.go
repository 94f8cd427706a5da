package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/config"
	"github.com/Makepad-fr/todolist/internal/ui"
)

func newConfigCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newConfigInitCommand(opts))
	cmd.AddCommand(newConfigPathCommand(opts))
	return cmd
}

func newConfigInitCommand(opts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults and the given storage flags",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(opts)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("config already exists at %s (use --force to overwrite)", path)}
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return wrap("stat config", err)
			}

			cfg := config.Default()
			applyFlags(cfg, opts)
			if err := cfg.Validate(); err != nil {
				return &ExitError{Code: ExitUsage, Message: "config", Err: err}
			}
			if err := cfg.Save(path); err != nil {
				return wrap("init config", err)
			}

			p := printer{json: opts.Format == "json", out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
			return p.result(map[string]string{"path": path}, func(w io.Writer) {
				ui.OK(w, "wrote "+path)
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}

func newConfigPathCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(opts)
			if err != nil {
				return err
			}
			p := printer{json: opts.Format == "json", out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
			return p.result(map[string]string{"path": path}, func(w io.Writer) {
				fmt.Fprintln(w, path)
			})
		},
	}
}

// configPath is --config when given, the XDG location otherwise.
func configPath(opts *RootOptions) (string, error) {
	if opts.ConfigPath != "" {
		return opts.ConfigPath, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", wrap("config path", err)
	}
	return path, nil
}
