package dsp

// LoginIdentifierKind selects which user identifier a login sends.
type LoginIdentifierKind string

// Login identifier kinds accepted by the authentication endpoint.
const (
	LoginByUsername LoginIdentifierKind = "username"
	LoginByEmail    LoginIdentifierKind = "email"
	LoginByIRI      LoginIdentifierKind = "iri"
)

// LoginIdentifier names the identifier used for a login request.
type LoginIdentifier struct {
	Kind LoginIdentifierKind
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token string `json:"token" yaml:"token"`
}

// LogoutResponse is the body of a successful logout.
type LogoutResponse struct {
	Status  int    `json:"status"  yaml:"status"`
	Message string `json:"message" yaml:"message"`
}

// CredentialsResponse is the body of a successful credentials check.
type CredentialsResponse struct {
	Message string `json:"message" yaml:"message"`
}
