package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_Empty(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, storeArgs(dir, "list")...)
	require.NoError(t, err)
	assert.Equal(t, "no entries\n", out)
}

func TestList_InsertionOrder(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "set", "zebra", "1")...)
	require.NoError(t, err)
	_, err = execute(t, storeArgs(dir, "set", "ant", "2")...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "list")...)
	require.NoError(t, err)
	assert.Equal(t, "0\tzebra\t1\n1\tant\t2\n", out)
}

func TestList_Sorted(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "set", "zebra", "1")...)
	require.NoError(t, err)
	_, err = execute(t, storeArgs(dir, "set", "ant", "2")...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "list", "--sort")...)
	require.NoError(t, err)
	assert.Equal(t, "1\tant\t2\n0\tzebra\t1\n", out)
}

func TestList_Range(t *testing.T) {
	dir := t.TempDir()
	seedEntries(t, dir, "a", "b", "c", "d")

	// [1, 3) yields ids 1 and 2.
	out, err := execute(t, storeArgs(dir, "list", "--start", "1", "--length", "2")...)
	require.NoError(t, err)
	assert.Equal(t, "1\tb\t1\n2\tc\t2\n", out)
}

func TestList_Golden(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, storeArgs(dir, "set", "a", "1")...)
	require.NoError(t, err)
	_, err = execute(t, storeArgs(dir, "set", "b", `"two"`)...)
	require.NoError(t, err)
	_, err = execute(t, storeArgs(dir, "set", "widget", `{"stock": 4}`)...)
	require.NoError(t, err)

	out, err := execute(t, storeArgs(dir, "list")...)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "list_text", []byte(out))
}

func TestInfo_ShowsCountAndDriver(t *testing.T) {
	dir := t.TempDir()
	seedEntries(t, dir, "a", "b")

	out, err := execute(t, storeArgs(dir, "info")...)
	require.NoError(t, err)
	assert.Contains(t, out, "store=things")
	assert.Contains(t, out, "driver=sqlite")
	assert.Contains(t, out, "entries=2")
}
