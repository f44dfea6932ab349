package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// infoView summarizes a store's configuration and size.
type infoView struct {
	Store      string `json:"store"`
	Driver     string `json:"driver"`
	Dir        string `json:"dir"`
	Entries    int    `json:"entries"`
	MaxEntries int    `json:"max_entries,omitempty"`
}

func (v infoView) String() string {
	s := fmt.Sprintf("store=%s driver=%s dir=%s entries=%d", v.Store, v.Driver, v.Dir, v.Entries)
	if v.MaxEntries > 0 {
		s += fmt.Sprintf(" max_entries=%d", v.MaxEntries)
	}
	return s
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "info",
		Short:         "Show store configuration and entry count",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, rootOpts)
		},
	}

	return cmd
}

func runInfo(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	f := opts.formatter(cmd)

	m, storeOpts, err := opts.openStore(ctx)
	if err != nil {
		return err
	}
	defer m.Close()

	return f.Success(infoView{
		Store:      storeOpts.Name,
		Driver:     storeOpts.Driver,
		Dir:        storeOpts.Dir,
		Entries:    m.Len(),
		MaxEntries: storeOpts.MaxEntries,
	})
}
