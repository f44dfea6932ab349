package cli

import (
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MierenManz/D-Enmap/internal/enmap"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Sort   bool
	Start  int64
	Length int64
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Long: `List entries in insertion order, or alphabetically with --sort.
With --start/--length, only entries whose id falls in [start, start+length)
are listed.

Example:
  enmap list --store inventory
  enmap list --store inventory --sort
  enmap list --store inventory --start 0 --length 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Sort, "sort", false, "sort by name instead of insertion order")
	cmd.Flags().Int64Var(&opts.Start, "start", 0, "first id of the range to list")
	cmd.Flags().Int64Var(&opts.Length, "length", 0, "length of the range to list")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	ctx := cmd.Context()
	f := opts.formatter(cmd)

	m, _, err := opts.openStore(ctx)
	if err != nil {
		return err
	}
	defer m.Close()

	var entries []enmap.Entry[any]
	if cmd.Flags().Changed("start") || cmd.Flags().Changed("length") {
		entries = m.FetchByRange(opts.Start, opts.Length)
	} else {
		entries = m.Filter(func(enmap.Entry[any]) bool { return true })
	}

	views := make(entryList, len(entries))
	for i, e := range entries {
		views[i] = viewOf(e)
	}

	if opts.Sort {
		c := collate.New(language.Und)
		sort.SliceStable(views, func(i, j int) bool {
			return c.CompareString(views[i].Name, views[j].Name) < 0
		})
	}

	return f.Success(views)
}
