package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ByName(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "set", "a", "1")...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "get", "a")...)
	require.NoError(t, err)
	assert.Equal(t, "0\ta\t1\n", out)
}

func TestGet_ByID(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "set", "a", "1")...)
	require.NoError(t, err)
	_, err = execute(t, storeArgs(dir, "set", "b", "2")...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "get", "--id", "1")...)
	require.NoError(t, err)
	assert.Equal(t, "1\tb\t2\n", out)
}

func TestGet_MissingName(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, storeArgs(dir, "get", "ghost")...)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "NAME_NOT_FOUND")
}

func TestGet_RequiresNameOrID(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "get")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGet_JSONOutput(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "set", "a", "1")...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "get", "a", "--format", "json")...)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "get_json", []byte(out))
}
