package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetListCmd verifies flags of the list command.
func TestGetListCmd(t *testing.T) {
	cmd := getListCmd()
	require.NotNil(t, cmd, "List command should exist")
	assert.Equal(t, "list", cmd.Use)
	assert.Contains(t, cmd.Aliases, "ls")

	all := cmd.Flags().Lookup("all")
	require.NotNil(t, all, "--all flag should exist")
	assert.Equal(t, "a", all.Shorthand)
	assert.Equal(t, "false", all.DefValue)

	format := cmd.Flags().Lookup("format")
	require.NotNil(t, format, "--format flag should exist")
	assert.Equal(t, "text", format.DefValue)
}
