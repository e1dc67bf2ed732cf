package dsp_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

func decodeLogin(body []byte) (dsp.LoginResponse, error) {
	var resp dsp.LoginResponse
	err := json.Unmarshal(body, &resp)

	return resp, err
}

func TestDecodeResponseData(t *testing.T) {
	t.Parallel()

	data, err := dsp.DecodeResponseData(http.StatusOK, http.MethodPost, "http://localhost/v2/authentication",
		[]byte(`{"token":"testtoken"}`), decodeLogin)
	require.NoError(t, err)

	assert.Equal(t, "testtoken", data.Body.Token)
	assert.Equal(t, http.StatusOK, data.Status)
	assert.Equal(t, http.MethodPost, data.Method)
	assert.Equal(t, "http://localhost/v2/authentication", data.URL)
}

func TestDecodeResponseData_Malformed(t *testing.T) {
	t.Parallel()

	data, err := dsp.DecodeResponseData(http.StatusOK, http.MethodPost, "http://localhost/v2/authentication",
		[]byte(`{"token":`), decodeLogin)
	require.Error(t, err)
	assert.Nil(t, data)

	respErr := &dsp.ResponseError{}
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, dsp.StatusDecodeFailure, respErr.Status)
	require.ErrorIs(t, err, dsp.ErrDecode)
	assert.True(t, dsp.IsDecodeError(err))
}
