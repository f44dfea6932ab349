package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MierenManz/D-Enmap/internal/enmap"
)

// execute runs the CLI with the given arguments and returns its combined
// output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(nil)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, err := execute(t, "list", "--store", "x", "--format", "xml")
	assert.ErrorContains(t, err, `invalid format "xml"`)
}

func TestStoreOptions_FlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, "name: from-config\ndir: config-dir\nmax_entries: 5\ndriver: bolt\n")

	o := &RootOptions{Config: path, Store: "from-flag"}
	opts, err := o.storeOptions()
	require.NoError(t, err)

	assert.Equal(t, "from-flag", opts.Name)
	assert.Equal(t, "config-dir", opts.Dir)
	assert.Equal(t, 5, opts.MaxEntries)
	assert.Equal(t, enmap.DriverBolt, opts.Driver)
	assert.True(t, opts.Persistent)
}

func TestStoreOptions_AppliesDefaults(t *testing.T) {
	o := &RootOptions{Store: "things"}
	opts, err := o.storeOptions()
	require.NoError(t, err)

	assert.Equal(t, enmap.DefaultDir, opts.Dir)
	assert.Equal(t, enmap.DriverSQLite, opts.Driver)
}

func TestStoreOptions_NameRequired(t *testing.T) {
	o := &RootOptions{}
	_, err := o.storeOptions()

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestOpenStore_ReturnsResolvedOptions(t *testing.T) {
	dir := t.TempDir()
	o := &RootOptions{Store: "things", Dir: dir}

	m, opts, err := o.openStore(context.Background())
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, "things", opts.Name)
	assert.Equal(t, dir, opts.Dir)
	assert.Equal(t, enmap.DriverSQLite, opts.Driver)
	assert.True(t, opts.Persistent)
}

func TestStoreOptions_BadConfigFile(t *testing.T) {
	o := &RootOptions{Config: "/nonexistent/store.yaml"}
	_, err := o.storeOptions()

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
