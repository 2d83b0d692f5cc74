package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResurrect_RequiresZone(t *testing.T) {
	_, _, err := executeCommand(t, "resurrect", "--project", "my-project", "worker-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zone")
}

func TestResurrect_RequiresNames(t *testing.T) {
	_, _, err := executeCommand(t, "resurrect", "--project", "my-project", "--zone", "us-east1-b")
	assert.Error(t, err)
}

func TestStatus_RejectsUnknownOutput(t *testing.T) {
	_, _, err := executeCommand(t, "status", "--project", "my-project", "--zone", "us-east1-b", "-o", "xml", "worker-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestStatus_MissingProjectIsConfigError(t *testing.T) {
	_, _, err := executeCommand(t, "status", "--zone", "us-east1-b", "worker-1")
	require.Error(t, err)
	assert.Equal(t, ExitCodeConfig, getExitCode(err))
}
