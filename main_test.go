package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCapture(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func tempFile(t *testing.T, size int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x42}, size), 0o644))

	return path
}

func TestRunHelp(t *testing.T) {
	for _, args := range [][]string{
		{"--help"},
		{"-h"},
		{"-h", "frobnicate", "/does/not/exist"},
	} {
		stdout, _, err := runCapture(t, args...)
		require.NoError(t, err)
		require.Contains(t, stdout, "Usage: cachectl")
	}
}

func TestRunMissingArgs(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"check"},
		{"check", "a", "b"},
		{"-v"},
	} {
		stdout, _, err := runCapture(t, args...)
		require.Error(t, err)
		require.Contains(t, err.Error(), "missing operation or filename")
		require.Contains(t, err.Error(), "Usage: cachectl")
		require.Empty(t, stdout)
	}
}

func TestRunInvalidOperation(t *testing.T) {
	stdout, _, err := runCapture(t, "frobnicate", tempFile(t, 10))
	require.Error(t, err)
	require.Contains(t, err.Error(), `invalid operation "frobnicate"`)
	require.Contains(t, err.Error(), "Usage: cachectl")
	require.Empty(t, stdout)
}

func TestRunUnknownFlag(t *testing.T) {
	_, _, err := runCapture(t, "--bogus", "check", tempFile(t, 10))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Usage: cachectl")
}

func TestRunCheck(t *testing.T) {
	path := tempFile(t, 100)

	stdout, _, err := runCapture(t, "check", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "File:     "+path)
	require.Contains(t, stdout, "Size:     100 bytes (1 pages)")
	require.Contains(t, stdout, "Cached:")
	require.NotContains(t, stdout, "Status:")
}

func TestRunCheckVerboseDetails(t *testing.T) {
	path := tempFile(t, 100)

	// flags may come before or after the positionals, getopt style
	stdout, _, err := runCapture(t, "check", path, "-vd")
	require.NoError(t, err)
	require.Contains(t, stdout, "Page 0:")
	require.Contains(t, stdout, "Status:")
}

func TestRunCheckMissingFile(t *testing.T) {
	_, _, err := runCapture(t, "check", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "open")
}

func TestRunAddRemove(t *testing.T) {
	path := tempFile(t, 100)

	stdout, _, err := runCapture(t, "add", path)
	require.NoError(t, err)
	require.Equal(t, "Added to cache: "+path+"\n", stdout)

	// --details is a check-only flag and must be ignored here
	stdout, _, err = runCapture(t, "-d", "remove", path)
	require.NoError(t, err)
	require.Equal(t, "Removed from cache: "+path+"\n", stdout)
}

func TestRunEmptyFile(t *testing.T) {
	path := tempFile(t, 0)

	for _, op := range []string{"check", "add", "remove"} {
		stdout, _, err := runCapture(t, op, path)
		require.NoError(t, err)
		require.Empty(t, stdout)
	}
}
