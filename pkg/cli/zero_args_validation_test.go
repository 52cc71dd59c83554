package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZeroArgCommandsRejectUnexpectedPositionalArgs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{name: "version", args: []string{"version", "extra"}},
		{name: "commands", args: []string{"commands", "extra"}},
		{name: "list", args: []string{"list", "extra"}},
		{name: "valpass", args: []string{"valpass", "extra"}},
		{name: "config show", args: []string{"config", "show", "extra"}},
		{name: "config set-profile", args: []string{"config", "set-profile", "--name", "p", "extra"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tc.args)
			cmd.SetIn(strings.NewReader(""))
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			err := cmd.Execute()
			require.Error(t, err)
			require.Contains(t, err.Error(), `unknown command "extra"`)
		})
	}
}
