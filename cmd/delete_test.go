package cmd

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetDeleteCmd verifies arguments and flags of the delete command.
func TestGetDeleteCmd(t *testing.T) {
	cmd := getDeleteCmd()
	require.NotNil(t, cmd, "Delete command should exist")
	assert.Error(t, cmd.Args(cmd, nil))
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))
	assert.NoError(t, cmd.Args(cmd, []string{"a"}))

	hard := cmd.Flags().Lookup("hard")
	require.NotNil(t, hard, "--hard flag should exist")
	assert.Equal(t, "false", hard.DefValue)
}

// TestParseProjectID verifies parsing of project IDs.
func TestParseProjectID(t *testing.T) {
	id, err := parseProjectID("0b6f3a8e-3c1f-4f57-9a55-4f7d1ad0e4a2")
	require.NoError(t, err)
	assert.Equal(t, "0b6f3a8e-3c1f-4f57-9a55-4f7d1ad0e4a2", id.String())

	_, err = parseProjectID("not-an-id")
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.InvalidProjectIDError, gnErr.Code)
}
