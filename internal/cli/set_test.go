package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeArgs selects a throwaway store in dir for a test invocation.
func storeArgs(dir string, args ...string) []string {
	return append(args, "--store", "things", "--dir", dir)
}

func TestSet_InsertsEntry(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, storeArgs(dir, "set", "a", "1")...)
	require.NoError(t, err)
	assert.Equal(t, "0\ta\t1\n", out)
}

func TestSet_ParsesJSONValues(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, storeArgs(dir, "set", "widget", `{"stock": 4}`)...)
	require.NoError(t, err)
	assert.Equal(t, "0\twidget\t{\"stock\":4}\n", out)
}

func TestSet_NonJSONValueStoredAsString(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, storeArgs(dir, "set", "a", "not json")...)
	require.NoError(t, err)
	assert.Equal(t, "0\ta\t\"not json\"\n", out)
}

func TestSet_DuplicateNameFails(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "set", "a", "1")...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "set", "a", "2")...)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "NAME_DUPLICATION")
}

func TestSet_ForceOverridesKeepingID(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "set", "a", "1")...)
	require.NoError(t, err)
	_, err = execute(t, storeArgs(dir, "set", "b", "2")...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "set", "a", "9", "--force")...)
	require.NoError(t, err)
	assert.Equal(t, "0\ta\t9\n", out, "override must preserve the id")
}

func TestSet_KeyReplacesSingleMapKey(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "set", "widget", `{"stock": 4, "price": 9.5}`)...)
	require.NoError(t, err)

	_, err = execute(t, storeArgs(dir, "set", "widget", "3", "--key", "stock")...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "get", "widget")...)
	require.NoError(t, err)
	assert.Equal(t, "0\twidget\t{\"price\":9.5,\"stock\":3}\n", out)
}

func TestSet_KeyMissingFromValue(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "set", "widget", `{"stock": 4}`)...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "set", "widget", "3", "--key", "color")...)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "INVALID_KEY")
}
