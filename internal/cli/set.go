package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// SetOptions holds flags for the set command.
type SetOptions struct {
	*RootOptions
	Key   string
	Force bool
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Insert an entry, or mutate an existing one",
		Long: `Insert a new entry under the given name.

The value is parsed as JSON; anything that does not parse is stored as a
plain string. Inserting an existing name fails unless --force replaces
its value in place (keeping the id). With --key, a single key of an
existing entry's structured value is replaced instead.

Example:
  enmap set --store inventory widget '{"stock": 4, "price": 9.5}'
  enmap set --store inventory widget 3 --key stock
  enmap set --store inventory widget '"discontinued"' --force`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.Key, "key", "", "replace a single key of a structured value")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "replace the value if the name already exists")

	return cmd
}

// parseValue decodes a CLI value argument: JSON if it parses, otherwise
// the raw string.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

func runSet(cmd *cobra.Command, opts *SetOptions, name, raw string) error {
	ctx := cmd.Context()
	f := opts.formatter(cmd)

	m, _, err := opts.openStore(ctx)
	if err != nil {
		return err
	}
	defer m.Close()

	value := parseValue(raw)

	switch {
	case opts.Key != "":
		if err := m.SetValue(ctx, name, opts.Key, value); err != nil {
			return reportStoreError(f, err)
		}
	case opts.Force && m.Has(name):
		if err := m.Override(ctx, name, value); err != nil {
			return reportStoreError(f, err)
		}
	default:
		if err := m.Add(ctx, name, value); err != nil {
			return reportStoreError(f, err)
		}
	}

	e, err := m.Fetch(name)
	if err != nil {
		return reportStoreError(f, err)
	}
	return f.Success(viewOf(e))
}
