package cli

import (
	"github.com/spf13/cobra"
)

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry and reset the id counter",
		Long: `Remove every entry from the store and its mirror, and reset the id
counter to zero. Subsequent entries start at id 0 again.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, rootOpts)
		},
	}

	return cmd
}

func runClear(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	f := opts.formatter(cmd)

	m, _, err := opts.openStore(ctx)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Clear(ctx); err != nil {
		return reportStoreError(f, err)
	}
	return f.Success(message("cleared"))
}
