package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"run", "match", "keys"} {
		assert.Contains(t, out, sub, "help missing %q command", sub)
	}
}

func TestMatchCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"combo", []string{"match", "--ctrl", "--code", "83", "ctrl+s"}, "true"},
		{"combo missing modifier", []string{"match", "--code", "83", "ctrl+s"}, "false"},
		{"lenient extra modifier", []string{"match", "--ctrl", "--shift", "--code", "83", "ctrl+s"}, "true"},
		{"strict extra modifier", []string{"match", "--strict", "--ctrl", "--shift", "--code", "83", "ctrl+s"}, "false"},
		{"any", []string{"match", "--code", "32", "esc|space"}, "true"},
		{"any with modifier", []string{"match", "--alt", "--code", "32", "esc|space"}, "false"},
		{"single", []string{"match", "--code", "13", "enter"}, "true"},
		{"gecko digit", []string{"match", "--gecko", "--code", "49", "1"}, "true"},
		{"digit without gecko", []string{"match", "--code", "49", "1"}, "false"},
		{"unknown token", []string{"match", "--code", "65", "nothing"}, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestMatchCommandVerbose(t *testing.T) {
	out, err := execute(t, "match", "-v", "--ctrl", "--code", "83", "ctrl + s")
	require.NoError(t, err)
	assert.Contains(t, out, "true\n")
	assert.Contains(t, out, `kind=combo modifiers="ctrl" keys=["s"] valid=true`)
}

func TestMatchCommandRequiresCode(t *testing.T) {
	_, err := execute(t, "match", "ctrl+s")
	assert.Error(t, err)

	_, err = execute(t, "match", "--code", "83")
	assert.Error(t, err)
}

func TestKeysCommand(t *testing.T) {
	out, err := execute(t, "keys")
	require.NoError(t, err)

	alpha := strings.Index(out, "alphabetical:")
	pad := strings.Index(out, "numeric-pad:")
	require.GreaterOrEqual(t, alpha, 0)
	assert.Greater(t, pad, alpha)
	assert.Contains(t, out, "  F12                123\n")
	assert.NotContains(t, out, "gecko-numeric-pad:")

	out, err = execute(t, "keys", "--gecko")
	require.NoError(t, err)
	assert.Contains(t, out, "gecko-numeric-pad:")
}

func TestRootCommand_VersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	cmd.Version = "test-version"
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "test-version")
}
