package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("read folder index: missing")))
	assert.Equal(t, 2, exitCode(errNotesFailed))
	assert.Equal(t, 2, exitCode(fmt.Errorf("run: %w", errNotesFailed)))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "boostnote-to-obsidian dev\n", buf.String())
}

func TestRootFlagsRegistered(t *testing.T) {
	for _, name := range []string{"notes", "folders", "output", "frontmatter", "timestamps", "progress", "log-level", "fail-on-error"} {
		require.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}
