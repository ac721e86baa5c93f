package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunClean(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(&stdout, &stderr, &Config{Count: 10})
	require.NoError(t, err)
	require.Equal(t, "9 8 7 6 5 4 3 2 1 0 \nNo memory leaks found\n", stdout.String())
	require.Empty(t, stderr.String())
}

func TestRunLeak(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(&stdout, &stderr, &Config{Count: 3, Leak: true})
	require.ErrorIs(t, err, errLeaks)

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.Equal(t, "3 memory leaks found.", lines[0])
	require.Len(t, lines, 4)
}

func TestRunVerbose(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(&stdout, &stderr, &Config{Count: 2, Verbose: true}))
	require.Equal(t, 2, strings.Count(stderr.String(), "node allocated"))
	require.Equal(t, 2, strings.Count(stderr.String(), "node freed"))
}

func TestCommandConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listleaks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 3\nleak: false\n"), 0o644))

	var stdout bytes.Buffer
	cmd := newCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "2 1 0 \nNo memory leaks found\n", stdout.String())

	stdout.Reset()
	cmd = newCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "-n", "1"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "0 \nNo memory leaks found\n", stdout.String())
}

func TestCommandRejectsNegativeCount(t *testing.T) {
	cmd := newCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--count=-1"})
	require.Error(t, cmd.Execute())
}
