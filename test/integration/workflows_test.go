//go:build integration

package integration

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_LoginGetLogout(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)
	runner.Login()

	assert.Contains(t, runner.ConfigContents(), "token: ")

	stdout, stderr, err := runner.Run("resource", "get", config.ResourceIRI, "-o", "json")
	require.NoError(t, err, stderr)

	var resource map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resource))
	assert.Equal(t, config.ResourceIRI, resource["id"])
	assert.NotEmpty(t, resource["resourceClassLabel"])

	_, stderr, err = runner.Run("logout")
	require.NoError(t, err, stderr)
	assert.NotContains(t, runner.ConfigContents(), "token: ")
}

func TestWorkflow_OutputFormats(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	for _, format := range []string{"table", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			stdout, stderr, err := runner.Run("--api", config.APIEndpoint, "resource", "get", config.ResourceIRI, "-o", format)
			require.NoError(t, err, stderr)
			assert.NotEmpty(t, strings.TrimSpace(stdout))
		})
	}
}

func TestWorkflow_ErrorScenarios(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	_, stderr, err := runner.Run("--api", config.APIEndpoint, "resource", "get", "http://rdfh.ch/0001/does-not-exist")
	require.Error(t, err)
	assert.Contains(t, stderr, "404")

	_, stderr, err = runner.Run("--api", config.APIEndpoint, "login", "-u", config.Username, "--email", "-p", "wrong-password")
	require.Error(t, err)
	assert.Contains(t, stderr, "failed to login")
}
