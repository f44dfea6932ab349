package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEntries(t *testing.T, dir string, names ...string) {
	t.Helper()
	for i, name := range names {
		_, err := execute(t, storeArgs(dir, "set", name, string(rune('0'+i)))...)
		require.NoError(t, err)
	}
}

func TestDel_ByName(t *testing.T) {
	dir := t.TempDir()
	seedEntries(t, dir, "a", "b")

	out, err := execute(t, storeArgs(dir, "del", "a")...)
	require.NoError(t, err)
	assert.Equal(t, "deleted\n", out)

	out, err = execute(t, storeArgs(dir, "list")...)
	require.NoError(t, err)
	assert.NotContains(t, out, "\ta\t")
	assert.Contains(t, out, "\tb\t")
}

func TestDel_ByID(t *testing.T) {
	dir := t.TempDir()
	seedEntries(t, dir, "a", "b")

	_, err := execute(t, storeArgs(dir, "del", "--id", "0")...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "list")...)
	require.NoError(t, err)
	assert.NotContains(t, out, "\ta\t")
}

func TestDel_ByRange(t *testing.T) {
	dir := t.TempDir()
	seedEntries(t, dir, "a", "b", "c", "d")

	// ids 1..2 inclusive
	_, err := execute(t, storeArgs(dir, "del", "--start", "1", "--length", "1")...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "\ta\t")
	assert.NotContains(t, out, "\tb\t")
	assert.NotContains(t, out, "\tc\t")
	assert.Contains(t, out, "\td\t")
}

func TestDel_MissingName(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, storeArgs(dir, "del", "ghost")...)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "NAME_NOT_FOUND")
}

func TestDel_RequiresSelector(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "del")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestClear_ResetsIDs(t *testing.T) {
	dir := t.TempDir()
	seedEntries(t, dir, "a", "b")

	out, err := execute(t, storeArgs(dir, "clear")...)
	require.NoError(t, err)
	assert.Equal(t, "cleared\n", out)

	out, err = execute(t, storeArgs(dir, "set", "c", "7")...)
	require.NoError(t, err)
	assert.Equal(t, "0\tc\t7\n", out, "ids restart at zero after clear")
}
