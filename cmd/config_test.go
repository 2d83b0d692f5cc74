package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigCommand_Defaults(t *testing.T) {
	stdout, _, err := executeCommand(t, "config")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "night-king-preempt", got["subscription"])
	assert.Equal(t, "30s", got["pollInterval"])
	assert.Equal(t, "", got["project"])
}

func TestConfigCommand_Layering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nightking.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project: from-file\npollInterval: 1m\nmaxWait: 10m\n"), 0o600))
	t.Setenv("NIGHTKING_MAXWAIT", "5m")

	stdout, _, err := executeCommand(t, "config", "--config", path, "--poll-interval", "10s", "--subscription-name", "preempted")
	require.NoError(t, err)

	assert.Contains(t, stdout, "project: from-file")
	assert.Contains(t, stdout, "subscription: preempted")
	assert.Contains(t, stdout, "pollInterval: 10s")
	assert.Contains(t, stdout, "maxWait: 5m0s")
	assert.Contains(t, stdout, "shutdownGrace: 1m0s")
}

func TestConfigCommand_Check(t *testing.T) {
	_, stderr, err := executeCommand(t, "config", "--check", "--poll-interval", "0s")
	require.Error(t, err)
	assert.Equal(t, ExitCodeConfig, getExitCode(err))
	assert.Contains(t, stderr, "project")
	assert.Contains(t, stderr, "pollInterval")

	_, _, err = executeCommand(t, "config", "--check", "--project", "my-project")
	assert.NoError(t, err)
}

func TestConfigCommand_MissingFile(t *testing.T) {
	_, _, err := executeCommand(t, "config", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
