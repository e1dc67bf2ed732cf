//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIEndpoint string
	Username    string
	Password    string
	ResourceIRI string
	DSPPath     string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("DSP_TEST_API"),
		Username:    envOr("DSP_TEST_USER", "root@example.com"),
		Password:    envOr("DSP_TEST_PASSWORD", "test"),
		ResourceIRI: envOr("DSP_TEST_RESOURCE", "http://rdfh.ch/0001/H6gBWUuJSuuO-CilHV8kQw"),
		DSPPath:     getDSPPath(),
		Verbose:     os.Getenv("DSP_VERBOSE") == "true",
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

// getDSPPath determines the path to the dsp binary
func getDSPPath() string {
	if path := os.Getenv("DSP_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../dsp",
		"./dsp",
		"../dsp",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "dsp"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIEndpoint == "" {
		t.Skip("DSP_TEST_API not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.DSPPath); err != nil {
		t.Skipf("dsp binary not found at %s, skipping integration test", config.DSPPath)
	}
}

// CommandRunner runs dsp commands against a private config file
type CommandRunner struct {
	config     *TestConfig
	t          *testing.T
	configFile string
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		t:          t,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
	}
}

// Run executes a dsp command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	cmd := exec.Command(runner.config.DSPPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.DSPPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// Login authenticates the configured user by email
func (runner *CommandRunner) Login() {
	runner.t.Helper()

	_, stderr, err := runner.Run("login", "--api", runner.config.APIEndpoint,
		"--email", "-u", runner.config.Username, "-p", runner.config.Password)
	if err != nil {
		runner.t.Fatalf("login failed: %v: %s", err, stderr)
	}
}

// ConfigContents returns the config file written by the commands
func (runner *CommandRunner) ConfigContents() string {
	runner.t.Helper()

	data, err := os.ReadFile(runner.configFile)
	if err != nil {
		runner.t.Fatalf("reading config: %v", err)
	}

	return string(data)
}
