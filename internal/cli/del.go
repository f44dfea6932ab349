package cli

import (
	"github.com/spf13/cobra"
)

// DelOptions holds flags for the del command.
type DelOptions struct {
	*RootOptions
	ID     int64
	Start  int64
	Length int64
}

// NewDelCommand creates the del command.
func NewDelCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DelOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "del [name]",
		Short: "Delete entries by name, id, or id range",
		Long: `Delete a single entry by name or by id, or every entry whose id falls
in [start, start+length] with --start/--length. A range reaching the
current entry count clears the whole store and resets the id counter.

Example:
  enmap del --store inventory widget
  enmap del --store inventory --id 3
  enmap del --store inventory --start 0 --length 4`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDel(cmd, opts, args)
		},
	}

	cmd.Flags().Int64Var(&opts.ID, "id", 0, "delete by id instead of name")
	cmd.Flags().Int64Var(&opts.Start, "start", 0, "first id of the range to delete")
	cmd.Flags().Int64Var(&opts.Length, "length", 0, "length of the range to delete")

	return cmd
}

func runDel(cmd *cobra.Command, opts *DelOptions, args []string) error {
	byRange := cmd.Flags().Changed("start") || cmd.Flags().Changed("length")
	byID := cmd.Flags().Changed("id")
	if !byRange && !byID && len(args) == 0 {
		return &ExitError{Code: ExitCommandError, Message: "a name, --id, or --start/--length is required"}
	}

	ctx := cmd.Context()
	f := opts.formatter(cmd)

	m, _, err := opts.openStore(ctx)
	if err != nil {
		return err
	}
	defer m.Close()

	switch {
	case byRange:
		err = m.DeleteByRange(ctx, opts.Start, opts.Length)
	case byID:
		err = m.DeleteByID(ctx, opts.ID)
	default:
		err = m.Delete(ctx, args[0])
	}
	if err != nil {
		return reportStoreError(f, err)
	}
	return f.Success(message("deleted"))
}
