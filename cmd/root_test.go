package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd_Exists verifies the root command is set up.
func TestRootCmd_Exists(t *testing.T) {
	require.NotNil(t, rootCmd, "Root command should exist")
	assert.Equal(t, "psdb", rootCmd.Use,
		"Command name should be psdb")
}

// TestRootCmd_ShortDescription verifies short description.
func TestRootCmd_ShortDescription(t *testing.T) {
	assert.NotEmpty(t, rootCmd.Short,
		"Short description should not be empty")
	assert.Contains(t, rootCmd.Short, "expedition",
		"Short description should mention expeditions")
}

// TestRootCmd_LongDescription verifies long description.
func TestRootCmd_LongDescription(t *testing.T) {
	assert.NotEmpty(t, rootCmd.Long,
		"Long description should not be empty")
	assert.Contains(t, rootCmd.Long, "PostgreSQL",
		"Long description should mention PostgreSQL")
	assert.Contains(t, rootCmd.Long, "normalize",
		"Long description should mention the workflow")
	assert.Contains(t, rootCmd.Long, "upload",
		"Long description should mention the workflow")
}

// TestRootCmd_HasPreRun verifies bootstrap function is set.
func TestRootCmd_HasPreRun(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
}

// TestRootCmd_VersionSet verifies version string format.
func TestRootCmd_VersionSet(t *testing.T) {
	assert.Contains(t, rootCmd.Version, "version:",
		"Version should contain version label")
	assert.Contains(t, rootCmd.Version, "build:",
		"Version should contain build label")
}

// TestRootCmd_Subcommands verifies all subcommands are
// registered.
func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{"create", "migrate", "normalize", "taxa", "upload"}

	var got []string
	for _, sub := range rootCmd.Commands() {
		got = append(got, sub.Name())
	}

	for _, name := range want {
		assert.Contains(t, got, name,
			"Subcommand %s should be registered", name)
	}
}
