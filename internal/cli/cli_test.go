package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositionalDeployfile(t *testing.T) {
	var out bytes.Buffer
	cfg, envFile, exit, err := Parse([]string{"deploy.hcl"}, &out)

	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "deploy.hcl", cfg.DeployfilePath)
	assert.Empty(t, envFile)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseFlagsOverridePositional(t *testing.T) {
	var out bytes.Buffer
	cfg, envFile, exit, err := Parse(
		[]string{"-f", "other.hcl", "-env-file", ".env", "-log-format", "text", "-log-level", "debug"},
		&out)

	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "other.hcl", cfg.DeployfilePath)
	assert.Equal(t, ".env", envFile)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseNoArgumentsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, _, exit, err := Parse(nil, &out)

	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseRejectsInvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, _, err := Parse([]string{"-log-format", "xml", "deploy.hcl"}, &out)

	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "log-format")
}

func TestParseRejectsInvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, _, err := Parse([]string{"-log-level", "loud", "deploy.hcl"}, &out)

	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}
