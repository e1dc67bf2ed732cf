package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dsphttp "github.com/fivetwenty-io/dsp-client/internal/http"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// MockTokenManager for testing.
type MockTokenManager struct {
	token string
	err   error
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg, fields) }

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("authenticated GET", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2/resources/http%3A%2F%2Frdfh.ch%2F0001%2FH6gBWUuJSuuO-CilHV8kQw", request.URL.EscapedPath())
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "Bearer testtoken", request.Header.Get("Authorization"))
			assert.Empty(t, request.Header.Get("Content-Type"))

			_ = json.NewEncoder(writer).Encode(map[string]string{"@id": "http://rdfh.ch/0001/H6gBWUuJSuuO-CilHV8kQw"})
		}))
		defer server.Close()

		client := dsphttp.NewClient(server.URL, &MockTokenManager{token: "testtoken"})

		resp, err := client.Get(context.Background(), "/v2/resources/http%3A%2F%2Frdfh.ch%2F0001%2FH6gBWUuJSuuO-CilHV8kQw", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, http.MethodGet, resp.Method)

		var result map[string]string

		require.NoError(t, json.Unmarshal(resp.Body, &result))
		assert.Equal(t, "http://rdfh.ch/0001/H6gBWUuJSuuO-CilHV8kQw", result["@id"])
	})

	t.Run("no credential means no authorization header", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, present := request.Header["Authorization"]
			assert.False(t, present)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		for _, tokenManager := range []*MockTokenManager{nil, {token: ""}} {
			var client *dsphttp.Client
			if tokenManager == nil {
				client = dsphttp.NewClient(server.URL, nil)
			} else {
				client = dsphttp.NewClient(server.URL, tokenManager)
			}

			_, err := client.Get(context.Background(), "/v2/authentication", nil)
			require.NoError(t, err)
		}
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "version=20190212T090510Z", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := dsphttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/v2/resources/x", url.Values{"version": []string{"20190212T090510Z"}})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "root", body["username"])

			_ = json.NewEncoder(writer).Encode(map[string]string{"token": "testtoken"})
		}))
		defer server.Close()

		client := dsphttp.NewClient(server.URL, nil)

		resp, err := client.Post(context.Background(), "/v2/authentication", map[string]string{"username": "root", "password": "test"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"token":"testtoken"}`, string(resp.Body))
	})

	t.Run("raw body is sent verbatim", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			var body map[string]interface{}

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "v", body["k"])
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := dsphttp.NewClient(server.URL, nil)

		_, err := client.Put(context.Background(), "/v2/resources", json.RawMessage(`{"k":"v"}`))
		require.NoError(t, err)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"knora-api:error":"dsp.errors.NotFoundException: resource not found"}`))
		}))
		defer server.Close()

		client := dsphttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/v2/resources/invalid", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		respErr := &dsp.ResponseError{}
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, http.StatusNotFound, respErr.Status)
		assert.Equal(t, http.MethodGet, respErr.Method)
		assert.Equal(t, server.URL+"/v2/resources/invalid", respErr.URL)
		assert.Equal(t, "dsp.errors.NotFoundException: resource not found", respErr.Message())
		require.ErrorIs(t, err, dsp.ErrHTTPStatus)
	})

	t.Run("network failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
		target := server.URL
		server.Close()

		client := dsphttp.NewClient(target, nil)

		resp, err := client.Get(context.Background(), "/v2/authentication", nil)
		require.Error(t, err)
		assert.Nil(t, resp)

		respErr := &dsp.ResponseError{}
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, dsp.StatusNetworkFailure, respErr.Status)
		require.Error(t, respErr.Err)
	})

	t.Run("token manager failure", func(t *testing.T) {
		t.Parallel()

		client := dsphttp.NewClient("http://localhost", &MockTokenManager{err: errors.New("locked")})

		_, err := client.Get(context.Background(), "/v2/authentication", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := dsphttp.NewClient(server.URL, nil, dsphttp.WithLogger(logger), dsphttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/v2/resources/x", nil)
		require.NoError(t, err)

		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		method  string
		hasBody bool
		fn      func(*dsphttp.Client, context.Context) (*dsphttp.Response, error)
	}{
		{
			name:   "GET",
			method: http.MethodGet,
			fn: func(c *dsphttp.Client, ctx context.Context) (*dsphttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:    "POST",
			method:  http.MethodPost,
			hasBody: true,
			fn: func(c *dsphttp.Client, ctx context.Context) (*dsphttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:    "PUT",
			method:  http.MethodPut,
			hasBody: true,
			fn: func(c *dsphttp.Client, ctx context.Context) (*dsphttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: http.MethodDelete,
			fn: func(c *dsphttp.Client, ctx context.Context) (*dsphttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)

				if testCase.hasBody {
					assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
				} else {
					assert.Empty(t, request.Header.Get("Content-Type"))
				}

				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := dsphttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestClient_EachCallIsANewRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := dsphttp.NewClient(server.URL, nil)

	for range 3 {
		_, err := client.Get(context.Background(), "/v2/node/x", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_ResolveURL(t *testing.T) {
	t.Parallel()

	plain := dsphttp.NewClient("http://0.0.0.0:3333/", nil)
	assert.Equal(t, "http://0.0.0.0:3333/v2/node/x", plain.ResolveURL("/v2/node/x", nil))

	asIs := dsphttp.NewClient("http://0.0.0.0:3333", nil, dsphttp.WithIncomingIRIAsIs(true))
	assert.Equal(t, "http://rdfh.ch/x", asIs.ResolveURL("http://rdfh.ch/x", nil))
	assert.Equal(t, "https://rdfh.ch/x?a=1", asIs.ResolveURL("https://rdfh.ch/x", url.Values{"a": {"1"}}))
	assert.Equal(t, "http://0.0.0.0:3333/v2/node/x", asIs.ResolveURL("/v2/node/x", nil))
}

func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("no retries by default", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := dsphttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("retries on 5xx errors when enabled", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusInternalServerError)

				return
			}

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := dsphttp.NewClient(server.URL, nil, dsphttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := dsphttp.NewClient(server.URL, nil, dsphttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})
}
