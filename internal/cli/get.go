package cli

import (
	"github.com/spf13/cobra"

	"github.com/MierenManz/D-Enmap/internal/enmap"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	ID int64
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get [name]",
		Short: "Fetch an entry by name or id",
		Long: `Fetch a single entry by name, or by id with --id.

Example:
  enmap get --store inventory widget
  enmap get --store inventory --id 3`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, opts, args)
		},
	}

	cmd.Flags().Int64Var(&opts.ID, "id", 0, "fetch by id instead of name")

	return cmd
}

func runGet(cmd *cobra.Command, opts *GetOptions, args []string) error {
	byID := cmd.Flags().Changed("id")
	if !byID && len(args) == 0 {
		return &ExitError{Code: ExitCommandError, Message: "a name or --id is required"}
	}

	ctx := cmd.Context()
	f := opts.formatter(cmd)

	m, _, err := opts.openStore(ctx)
	if err != nil {
		return err
	}
	defer m.Close()

	fetch := func() (enmap.Entry[any], error) {
		if byID {
			return m.FetchByID(opts.ID)
		}
		return m.Fetch(args[0])
	}

	entry, err := fetch()
	if err != nil {
		return reportStoreError(f, err)
	}
	return f.Success(viewOf(entry))
}
