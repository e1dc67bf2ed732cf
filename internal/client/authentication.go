package client

import (
	"context"
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fivetwenty-io/dsp-client/internal/auth"
	"github.com/fivetwenty-io/dsp-client/internal/constants"
	"github.com/fivetwenty-io/dsp-client/internal/http"
	"github.com/fivetwenty-io/dsp-client/internal/tracing"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

var errUnknownIdentifier = validation.NewError("validation_unknown_identifier",
	"unknown login identifier {{.kind}}")

// AuthenticationClient implements dsp.AuthenticationClient. It is the only
// component besides SetToken that writes the credential slot.
type AuthenticationClient struct {
	httpClient *http.Client
	slot       auth.Slot
}

// NewAuthenticationClient creates a new authentication client.
func NewAuthenticationClient(httpClient *http.Client, slot auth.Slot) *AuthenticationClient {
	return &AuthenticationClient{
		httpClient: httpClient,
		slot:       slot,
	}
}

// Login implements dsp.AuthenticationClient.Login.
func (c *AuthenticationClient) Login(ctx context.Context, username, password string) (*dsp.ResponseData[dsp.LoginResponse], error) {
	return c.LoginWith(ctx, dsp.LoginIdentifier{Kind: dsp.LoginByUsername}, username, password)
}

// LoginWith implements dsp.AuthenticationClient.LoginWith. The slot is only
// written once the response has been decoded.
func (c *AuthenticationClient) LoginWith(ctx context.Context, identifier dsp.LoginIdentifier, id, password string) (result *dsp.ResponseData[dsp.LoginResponse], err error) {
	ctx, span := tracer.Start(ctx, "authentication.login")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	kind := identifier.Kind
	if kind == "" {
		kind = dsp.LoginByUsername
	}

	err = validation.Validate(kind, validation.In(dsp.LoginByUsername, dsp.LoginByEmail, dsp.LoginByIRI).
		ErrorObject(errUnknownIdentifier.SetParams(map[string]interface{}{"kind": kind})))
	if err != nil {
		return nil, dsp.ValidationErrorOf(err)
	}

	body := map[string]string{
		string(kind): id,
		"password":   password,
	}

	resp, err := c.httpClient.Post(ctx, constants.AuthenticationPath, body)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	result, err = dsp.DecodeResponseData(resp.StatusCode, resp.Method, resp.URL, resp.Body, decodeLogin)
	if err != nil {
		return nil, err
	}

	c.slot.SetToken(result.Body.Token)

	return result, nil
}

func decodeLogin(body []byte) (dsp.LoginResponse, error) {
	var login dsp.LoginResponse

	if err := json.Unmarshal(body, &login); err != nil {
		return login, err
	}

	if login.Token == "" {
		return login, fmt.Errorf("%w: token", dsp.ErrMissingField)
	}

	return login, nil
}

// Logout implements dsp.AuthenticationClient.Logout.
func (c *AuthenticationClient) Logout(ctx context.Context) (result *dsp.ResponseData[dsp.LogoutResponse], err error) {
	ctx, span := tracer.Start(ctx, "authentication.logout")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	resp, err := c.httpClient.Delete(ctx, constants.AuthenticationPath)
	if err != nil {
		return nil, fmt.Errorf("logging out: %w", err)
	}

	result, err = dsp.DecodeResponseData(resp.StatusCode, resp.Method, resp.URL, resp.Body, decodeJSON[dsp.LogoutResponse])
	if err != nil {
		return nil, err
	}

	c.slot.Clear()

	return result, nil
}

// CheckCredentials implements dsp.AuthenticationClient.CheckCredentials.
func (c *AuthenticationClient) CheckCredentials(ctx context.Context) (result *dsp.ResponseData[dsp.CredentialsResponse], err error) {
	ctx, span := tracer.Start(ctx, "authentication.check")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	resp, err := c.httpClient.Get(ctx, constants.AuthenticationPath, nil)
	if err != nil {
		return nil, fmt.Errorf("checking credentials: %w", err)
	}

	return dsp.DecodeResponseData(resp.StatusCode, resp.Method, resp.URL, resp.Body, decodeJSON[dsp.CredentialsResponse])
}

func decodeJSON[T any](body []byte) (T, error) {
	var value T

	err := json.Unmarshal(body, &value)

	return value, err
}
