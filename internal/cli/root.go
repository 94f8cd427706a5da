package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Key        string
	Backend    string
	DataDir    string
	DBPath     string
	Format     string // "text" | "json"
	Verbose    bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the todolist command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "todolist",
		Short: "todolist - a tiny todo list",
		Long: `todolist keeps an ordered todo list under a storage key.
Lists live in a key-value backend: one JSON file per key (file),
a SQLite table (sqlite), or process memory (memory).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range ValidFormats {
				if f == opts.Format {
					return nil
				}
			}
			return usageError("invalid format %q: must be one of %v", opts.Format, ValidFormats)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file path")
	cmd.PersistentFlags().StringVarP(&opts.Key, "key", "k", "", "storage key of the list")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend (file|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory of the file backend")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database path of the sqlite backend")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: "flags", Err: err}
	})

	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newToggleCommand(opts))
	cmd.AddCommand(newClearCommand(opts))
	cmd.AddCommand(newTableCommand(opts))
	cmd.AddCommand(newTUICommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	format, _ := root.PersistentFlags().GetString("format")
	printer{json: format == "json", out: stdout, err: stderr}.failure(err)
	return ExitCode(err)
}

// usageArgs turns a cobra argument validation error into a usage exit.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &ExitError{Code: ExitUsage, Message: "usage: " + cmd.UseLine(), Err: err}
		}
		return nil
	}
}
