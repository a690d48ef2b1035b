package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "adegenet", cmd.Use,
		"Command name should be adegenet")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()

	// Set a test version
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should contain version")
	assert.Contains(t, output, "abc123",
		"Version output should contain build")
}

// TestGetRootCmd_ShortVersionFlag verifies
// -V flag works.
func TestGetRootCmd_ShortVersionFlag(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "v1.2.3",
		"Version output should work with -V flag")
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "inbreeding coefficient")
	assert.Contains(t, helpText, "ADEGENET_")
	assert.Contains(t, helpText, "inbreeding",
		"Help should list the inbreeding command")
}

// TestGetRootCmd_Subcommands verifies registered subcommands.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()
	sub, _, err := cmd.Find([]string{"inbreeding"})
	require.NoError(t, err)
	assert.Equal(t, "inbreeding", sub.Name())
}
