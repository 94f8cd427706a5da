package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stored value for the key, as persisted",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts, false)
			if err != nil {
				return err
			}
			defer s.close()

			raw, ok, err := s.backend.Get(cmd.Context(), s.cfg.StorageKey)
			if err != nil {
				return wrap("read", err)
			}
			if !ok {
				raw = "[]"
			}
			fmt.Fprintln(cmd.OutOrStdout(), raw)
			return nil
		},
	}
}
