package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCountFromStdin(t *testing.T) {
	code, out, errOut := runCLI(t, "4 1 8 5\n6,2,7,3\n", "count")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "15\n", out)
}

func TestCountFromFileWithFenwick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.txt")
	require.NoError(t, os.WriteFile(path, []byte("3, 2, 1"), 0o600))

	code, out, errOut := runCLI(t, "", "count", "--strategy", "fenwick", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "3\n", out)
}

func TestCountEmptyInput(t *testing.T) {
	code, out, _ := runCLI(t, "", "count")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "0\n", out)
}

func TestCountInvalidSequence(t *testing.T) {
	for _, in := range []string{"1 1", "0 1", "1 2 4", "1 x"} {
		code, out, errOut := runCLI(t, in, "count")
		assert.Equal(t, exitError, code, in)
		assert.Empty(t, out, in)
		assert.Contains(t, errOut, "the sequence has an item not in [1, len(seq)] or duplication", in)
	}
}

func TestCountUsageErrors(t *testing.T) {
	code, _, errOut := runCLI(t, "", "count", "--strategy", "merge")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "invalid strategy")

	code, _, _ = runCLI(t, "", "count", "a", "b")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI(t, "", "count", "--bogus")
	assert.Equal(t, exitUsage, code)
}

func TestCountMissingFile(t *testing.T) {
	code, _, errOut := runCLI(t, "", "count", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, exitError, code)
	assert.NotEmpty(t, errOut)
}

func TestRunCommands(t *testing.T) {
	code, _, errOut := runCLI(t, "")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "Usage:")

	code, _, errOut = runCLI(t, "", "frobnicate")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "unknown command")

	code, out, _ := runCLI(t, "", "version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, version+"\n", out)

	code, out, _ = runCLI(t, "", "help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "inversion count")
}

func TestServeMissingConfig(t *testing.T) {
	code, _, errOut := runCLI(t, "", "serve", "--config", filepath.Join(t.TempDir(), "nope.toml"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "read config error")
}
