package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MierenManz/D-Enmap/internal/enmap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Store selection, resolved against the optional config file.
	Config     string
	Store      string
	Dir        string
	MaxEntries int
	Driver     string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the enmap CLI.
// logLevel, when non-nil, is raised to debug by --verbose.
func NewRootCommand(logLevel *slog.LevelVar) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "enmap",
		Short: "enmap - keyed data store",
		Long:  "A keyed data store mapping names and sequential ids to values,\nbacked by an embedded database file.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Verbose && logLevel != nil {
				logLevel.Set(slog.LevelDebug)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "store config file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.Store, "store", "", "store name (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", "", "base directory for store files")
	cmd.PersistentFlags().IntVar(&opts.MaxEntries, "max-entries", 0, "entry cap with oldest-first eviction (0 = unlimited)")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "mirror driver (sqlite|bolt)")

	// Add subcommands
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewDelCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// storeOptions resolves flags and the optional config file into store
// options. Flags take precedence over config file values. CLI stores are
// always persistent; an in-memory store would not outlive the process.
func (o *RootOptions) storeOptions() (enmap.Options, error) {
	opts := enmap.Options{
		Name:       o.Store,
		Dir:        o.Dir,
		MaxEntries: o.MaxEntries,
		Driver:     o.Driver,
		Persistent: true,
	}

	if o.Config != "" {
		cfg, err := LoadStoreConfig(o.Config)
		if err != nil {
			return enmap.Options{}, WrapExitError(ExitCommandError, "load config", err)
		}
		if opts.Name == "" {
			opts.Name = cfg.Name
		}
		if opts.Dir == "" {
			opts.Dir = cfg.Dir
		}
		if opts.MaxEntries == 0 {
			opts.MaxEntries = cfg.MaxEntries
		}
		if opts.Driver == "" {
			opts.Driver = cfg.Driver
		}
	}

	if opts.Name == "" {
		return enmap.Options{}, &ExitError{Code: ExitCommandError, Message: "store name required (use --store or --config)"}
	}
	if opts.Dir == "" {
		opts.Dir = enmap.DefaultDir
	}
	if opts.Driver == "" {
		opts.Driver = enmap.DriverSQLite
	}
	return opts, nil
}

// openStore creates and initiates the configured store, returning the
// resolved options alongside it so callers do not resolve them twice.
func (o *RootOptions) openStore(ctx context.Context) (*enmap.Enmap[any], enmap.Options, error) {
	opts, err := o.storeOptions()
	if err != nil {
		return nil, enmap.Options{}, err
	}

	m, err := enmap.New[any](opts)
	if err != nil {
		return nil, enmap.Options{}, WrapExitError(ExitCommandError, "configure store", err)
	}
	if err := m.Init(ctx); err != nil {
		return nil, enmap.Options{}, WrapExitError(ExitCommandError, "open store", err)
	}
	return m, opts, nil
}

// formatter builds the output formatter writing to the command's stdout.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// reportStoreError renders a store error through the formatter and maps
// it to a failure exit code. The returned error carries no message so the
// caller does not print it a second time.
func reportStoreError(f *OutputFormatter, err error) error {
	code := "COMMAND_ERROR"
	var se *enmap.Error
	if errors.As(err, &se) {
		code = string(se.Code)
	}
	f.Failure(code, err.Error())
	return &ExitError{Code: ExitFailure}
}

// entryView is the JSON and text projection of a store entry.
type entryView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Data any    `json:"data"`
}

func viewOf(e enmap.Entry[any]) entryView {
	return entryView{ID: e.ID, Name: e.Name, Data: e.Data}
}

func (v entryView) String() string {
	data, err := json.Marshal(v.Data)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", v.Data))
	}
	return fmt.Sprintf("%d\t%s\t%s", v.ID, v.Name, data)
}

// entryList renders multiple entries one per line in text format.
type entryList []entryView

func (l entryList) String() string {
	if len(l) == 0 {
		return "no entries"
	}
	lines := make([]string, len(l))
	for i, v := range l {
		lines[i] = v.String()
	}
	return strings.Join(lines, "\n")
}

// message is a plain confirmation string for mutating commands.
type message string

func (m message) String() string { return string(m) }
