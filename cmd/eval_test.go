package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	RootCmd.SetOut(out)
	RootCmd.SetErr(out)
	RootCmd.SetArgs(args)
	defer RootCmd.SetArgs(nil)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestEvalCommand(t *testing.T) {
	out, err := runCommand(t, "eval", "2s", "2h", "2c", "8d", "Ts")
	require.NoError(t, err)
	assert.Contains(t, out, "Three of a Kind")
	assert.Contains(t, out, "Score: 108")

	out, err = runCommand(t, "eval", "2s", "3s", "4s", "5s", "6s")
	require.NoError(t, err)
	assert.Contains(t, out, "Straight Flush")
	assert.Contains(t, out, "Score: 960")
}

func TestEvalCommandRejectsBadInput(t *testing.T) {
	_, err := runCommand(t, "eval", "2s", "1x")
	assert.Error(t, err)

	_, err = runCommand(t, "eval", "2s", "3s", "4s", "5s", "6s", "7s")
	assert.Error(t, err)
}
