package dsp

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/dsp-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired = errors.New("config is required")
	ErrHostRequired   = errors.New("API host is required")
	ErrInvalidScheme  = errors.New("API scheme must be http or https")
)

// AuthenticationClient manages the session credential.
type AuthenticationClient interface {
	Login(ctx context.Context, username, password string) (*ResponseData[LoginResponse], error)
	LoginWith(ctx context.Context, identifier LoginIdentifier, id, password string) (*ResponseData[LoginResponse], error)
	Logout(ctx context.Context) (*ResponseData[LogoutResponse], error)
	CheckCredentials(ctx context.Context) (*ResponseData[CredentialsResponse], error)
}

// ResourcesClient reads and writes resources.
type ResourcesClient interface {
	GetResource(ctx context.Context, iri string) (*ReadResource, error)
	GetResourceVersion(ctx context.Context, iri, versionDate string) (*ReadResource, error)
	GetResources(ctx context.Context, iris []string) (*ReadResourceSequence, error)
	CreateResource(ctx context.Context, resource *CreateResource) (*ReadResource, error)
	UpdateResourceMetadata(ctx context.Context, update *UpdateResourceMetadata) (*UpdateResourceMetadataResponse, error)
	DeleteResource(ctx context.Context, resource *DeleteResource) (*DeleteResourceResponse, error)
	EraseResource(ctx context.Context, resource *DeleteResource) (*DeleteResourceResponse, error)
}

// OntologiesClient fetches class definitions from the server, bypassing the cache.
type OntologiesClient interface {
	GetResourceClass(ctx context.Context, classIRI string) (*ResourceClassDefinition, error)
}

// ListsClient fetches list nodes from the server, bypassing the cache.
type ListsClient interface {
	GetNode(ctx context.Context, nodeIRI string) (*ListNode, error)
}

// DefinitionCache resolves a key through a read-through cache.
type DefinitionCache[T any] interface {
	Get(ctx context.Context, key string) (T, error)
}

// Client is a connection to one API server.
type Client interface {
	Auth() AuthenticationClient
	Resources() ResourcesClient
	Ontologies() OntologiesClient
	Lists() ListsClient

	OntologyCache() DefinitionCache[*ResourceClassDefinition]
	ListNodeCache() DefinitionCache[*ListNode]

	// SetToken assigns the bearer credential manually; an empty token clears it.
	SetToken(token string)
	Token() string

	// Close releases the connection to the second-level definition store.
	Close() error
}

// TokenPersister saves the bearer credential outside the process.
type TokenPersister interface {
	PersistToken(token string, expiresAt time.Time) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config describes the API endpoint and client behaviour. It is read once when
// the client is built; later changes have no effect.
type Config struct {
	// Scheme is "http" or "https". Defaults to "http".
	Scheme string
	// Host is the API host name, e.g. "0.0.0.0" or "api.dasch.swiss".
	Host string
	// Port is appended to the host when non-zero.
	Port int
	// PathPrefix is inserted between host and endpoint paths, e.g. "/api".
	PathPrefix string
	// UseIncomingIRIAsIs makes the request layer send absolute http(s) paths
	// unchanged instead of prefixing them with the base URL. Resource, ontology
	// and list lookups build relative paths with the IRI escaped into a single
	// segment, so they are not affected by it.
	UseIncomingIRIAsIs bool

	// Token is an initial bearer credential, usually restored from a previous login.
	Token string
	// TokenPersister, when set, is told about every change of the credential
	// made by login, logout or SetToken.
	TokenPersister TokenPersister

	// HTTPTimeout is the per-request timeout of the underlying HTTP client.
	HTTPTimeout time.Duration
	// RetryMax enables transport retries for 5xx, 429 and connection errors.
	// Zero, the default, disables retries.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger

	// DefinitionCache selects the second-level store behind the ontology and
	// list node caches. Nil keeps definitions in process memory only.
	DefinitionCache *CacheConfig
}

// Validate checks the endpoint fields.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	if c.Host == "" {
		return ErrHostRequired
	}

	if c.Scheme != "" && c.Scheme != "http" && c.Scheme != "https" {
		return ErrInvalidScheme
	}

	return nil
}

// BaseURL returns scheme://host[:port][/prefix] without a trailing slash.
func (c *Config) BaseURL() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = constants.DefaultScheme
	}

	var b strings.Builder

	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(c.Host)

	if c.Port != 0 {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(c.Port))
	}

	prefix := strings.Trim(c.PathPrefix, "/")
	if prefix != "" {
		b.WriteString("/")
		b.WriteString(prefix)
	}

	return b.String()
}
