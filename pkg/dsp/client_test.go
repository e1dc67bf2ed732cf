package dsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

func TestConfig_BaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   dsp.Config
		expected string
	}{
		{"host and port", dsp.Config{Scheme: "http", Host: "0.0.0.0", Port: 3333}, "http://0.0.0.0:3333"},
		{"default scheme", dsp.Config{Host: "localhost", Port: 3333}, "http://localhost:3333"},
		{"no port", dsp.Config{Scheme: "https", Host: "api.dasch.swiss"}, "https://api.dasch.swiss"},
		{"path prefix", dsp.Config{Scheme: "https", Host: "example.org", PathPrefix: "/api/"}, "https://example.org/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.config.BaseURL())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	var nilConfig *dsp.Config
	require.ErrorIs(t, nilConfig.Validate(), dsp.ErrConfigRequired)
	require.ErrorIs(t, (&dsp.Config{}).Validate(), dsp.ErrHostRequired)
	require.ErrorIs(t, (&dsp.Config{Host: "h", Scheme: "ftp"}).Validate(), dsp.ErrInvalidScheme)
	require.NoError(t, (&dsp.Config{Host: "h", Scheme: "https"}).Validate())
}
