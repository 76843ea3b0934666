package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execCompletion(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)
	cmd := newCompletionCmd()
	cmd.SetOut(stdout)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestCompletionShells(t *testing.T) {
	for _, shell := range validShells {
		t.Run(shell, func(t *testing.T) {
			out, err := execCompletion(t, shell)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}

func TestCompletionInvalidShell(t *testing.T) {
	_, err := execCompletion(t, "tcsh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell: tcsh")
}

func TestCompletionAutoDetect(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")
	out, err := execCompletion(t)
	require.NoError(t, err)
	assert.Contains(t, out, "zsh")
}

func TestCompletionAutoDetectUnknown(t *testing.T) {
	t.Setenv("SHELL", "/bin/csh")
	_, err := execCompletion(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not detect shell")
}
