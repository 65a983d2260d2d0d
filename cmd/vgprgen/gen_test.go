package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vugu/pagerouter/rgen"
)

func TestGenCmd(t *testing.T) {

	dir := filepath.Join(t.TempDir(), "pages")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.vugu"), []byte("<div></div>"), 0644))

	cmd := genCmd()
	cmd.SetArgs([]string{"-q", "-p", "example.com/pages", dir})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(dir, rgen.OutputFileName))

}

func TestGenCmdPackageWithManyDirs(t *testing.T) {

	cmd := genCmd()
	cmd.SetArgs([]string{"-q", "-p", "example.com/pages", "a", "b"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only valid with a single directory")

}
