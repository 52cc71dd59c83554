package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommandsCmd(t *testing.T, args ...string) []CommandEntry {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	rootCmd := newRootCmd()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(append([]string{"--output", "json", "commands"}, args...))

	require.NoError(t, rootCmd.Execute())

	var entries []CommandEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries), "output should be valid JSON")
	return entries
}

func TestCommands_ListAll(t *testing.T) {
	entries := runCommandsCmd(t)

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	for _, want := range []string{
		"list", "add", "update", "enable", "disable", "delete",
		"validate", "valemail", "valpass",
		"version", "config show", "config set-profile", "config use-profile",
	} {
		assert.Contains(t, paths, want)
	}
}

func TestCommands_EntryMetadata(t *testing.T) {
	entries := runCommandsCmd(t)

	var add *CommandEntry
	for i := range entries {
		if entries[i].Path == "add" {
			add = &entries[i]
			break
		}
	}
	require.NotNil(t, add, "add command should be listed")
	assert.Equal(t, "<email>", add.Args)
	assert.NotEmpty(t, add.Short)

	flagNames := make([]string, 0, len(add.Flags))
	for _, fl := range add.Flags {
		flagNames = append(flagNames, fl.Name)
	}
	assert.NotContains(t, flagNames, "help")
}

func TestCommands_Filter(t *testing.T) {
	entries := runCommandsCmd(t, "--filter", "password")

	require.NotEmpty(t, entries, "filter should match at least one command")
	for _, e := range entries {
		matched := strings.Contains(strings.ToLower(e.Path+" "+e.Short+" "+e.Long), "password")
		assert.True(t, matched, "filtered entry should match query: %s", e.Path)
	}
}

func TestCommands_TableOutput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	rootCmd := newRootCmd()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"commands"})

	require.NoError(t, rootCmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "PATH")
	assert.Contains(t, output, "DESCRIPTION")
	assert.Contains(t, output, "valpass")
}
