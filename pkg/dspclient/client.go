package dspclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/dsp-client/internal/client"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// ErrInvalidEndpoint is returned for endpoints that are not http(s) URLs.
var ErrInvalidEndpoint = errors.New("endpoint must be an http or https URL")

// New creates a new DSP API client.
func New(ctx context.Context, config *dsp.Config) (dsp.Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// ConfigFromEndpoint splits an endpoint URL such as
// "https://api.dasch.swiss:443/prefix" into the endpoint fields of a Config.
// A bare host name is taken as https.
func ConfigFromEndpoint(endpoint string) (*dsp.Config, error) {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, dsp.ErrHostRequired
	}

	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEndpoint, endpoint)
	}

	config := &dsp.Config{
		Scheme:     u.Scheme,
		Host:       u.Hostname(),
		PathPrefix: u.Path,
	}

	if portStr := u.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("%w: port %q", ErrInvalidEndpoint, portStr)
		}

		config.Port = port
	}

	return config, config.Validate()
}

// NewWithEndpoint creates a new client with just an API endpoint (no auth).
func NewWithEndpoint(ctx context.Context, endpoint string) (dsp.Client, error) {
	config, err := ConfigFromEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	return New(ctx, config)
}

// NewWithToken creates a new client with an API endpoint and bearer token.
func NewWithToken(ctx context.Context, endpoint, token string) (dsp.Client, error) {
	config, err := ConfigFromEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	config.Token = token

	return New(ctx, config)
}

// NewWithPassword creates a new client and logs in with username and password.
func NewWithPassword(ctx context.Context, endpoint, username, password string) (dsp.Client, error) {
	c, err := NewWithEndpoint(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	if _, err := c.Auth().Login(ctx, username, password); err != nil {
		_ = c.Close()

		return nil, fmt.Errorf("logging in as %s: %w", username, err)
	}

	return c, nil
}
