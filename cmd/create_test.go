package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCreateCmd verifies command description and flags.
func TestGetCreateCmd(t *testing.T) {
	assert := assert.New(t)
	cmd := getCreateCmd()
	require.NotNil(t, cmd, "Create command should exist")
	assert.Equal("create", cmd.Use)
	assert.Contains(cmd.Short, "schema")
	assert.Contains(cmd.Long, "GORM AutoMigrate")
	assert.Contains(cmd.Long, "collation")
	assert.NotNil(cmd.RunE, "RunE should be set")

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag, "--force flag should exist")
	assert.Equal("f", forceFlag.Shorthand)
	assert.Equal("false", forceFlag.DefValue)
	assert.Contains(forceFlag.Usage, "drop")
}

// TestGetCreateCmd_HelpText verifies help text content.
func TestGetCreateCmd_HelpText(t *testing.T) {
	cmd := getCreateCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	helpText := buf.String()
	assert.Contains(t, helpText, "--force")
	assert.Contains(t, helpText, "ifcdb create -f",
		"Should show short form example")
}

// TestGetCreateCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetCreateCmd_IndependentInstances(t *testing.T) {
	cmd1 := getCreateCmd()
	cmd2 := getCreateCmd()
	assert.NotSame(t, cmd1, cmd2,
		"Each call should return new instance")
}
