package dspclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
	"github.com/fivetwenty-io/dsp-client/pkg/dspclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := dspclient.New(context.Background(), &dsp.Config{Host: "0.0.0.0", Port: 3333})
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.NoError(t, client.Close())
	})

	t.Run("rejects nil config", func(t *testing.T) {
		t.Parallel()

		_, err := dspclient.New(context.Background(), nil)
		require.ErrorIs(t, err, dsp.ErrConfigRequired)
	})
}

func TestConfigFromEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		endpoint string
		want     *dsp.Config
		baseURL  string
		wantErr  error
	}{
		{
			endpoint: "http://0.0.0.0:3333",
			want:     &dsp.Config{Scheme: "http", Host: "0.0.0.0", Port: 3333},
			baseURL:  "http://0.0.0.0:3333",
		},
		{
			endpoint: "api.dasch.swiss",
			want:     &dsp.Config{Scheme: "https", Host: "api.dasch.swiss"},
			baseURL:  "https://api.dasch.swiss",
		},
		{
			endpoint: "https://example.org/dsp/",
			want:     &dsp.Config{Scheme: "https", Host: "example.org", PathPrefix: "/dsp"},
			baseURL:  "https://example.org/dsp",
		},
		{endpoint: "", wantErr: dsp.ErrHostRequired},
		{endpoint: "ftp://example.org", wantErr: dspclient.ErrInvalidEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			t.Parallel()

			config, err := dspclient.ConfigFromEndpoint(tt.endpoint)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, config)
			assert.Equal(t, tt.baseURL, config.BaseURL())
		})
	}
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := dspclient.NewWithToken(context.Background(), "http://0.0.0.0:3333", "test-token")
	require.NoError(t, err)
	assert.Equal(t, "test-token", client.Token())
}

func TestNewWithPassword(t *testing.T) {
	t.Parallel()

	gotAuth := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/authentication":
			_, _ = w.Write([]byte(`{"token": "session-token"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v2/authentication":
			gotAuth <- r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"message": "credentials are OK"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := dspclient.NewWithPassword(context.Background(), server.URL, "root", "test")
	require.NoError(t, err)
	assert.Equal(t, "session-token", client.Token())

	result, err := client.Auth().CheckCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "credentials are OK", result.Body.Message)
	assert.Equal(t, "Bearer session-token", <-gotAuth)
}

func TestNewWithPassword_LoginFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := dspclient.NewWithPassword(context.Background(), server.URL, "root", "wrong")
	require.Error(t, err)
	assert.True(t, dsp.IsUnauthorized(err))
}
