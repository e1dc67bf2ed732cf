package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/fivetwenty-io/dsp-client/internal/auth"
	"github.com/fivetwenty-io/dsp-client/internal/constants"
	"github.com/fivetwenty-io/dsp-client/internal/defcache"
	"github.com/fivetwenty-io/dsp-client/internal/http"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// Cache names, used as key prefixes in the second-level store.
const (
	ontologyCacheName = "class"
	listNodeCacheName = "listnode"
)

var tracer = otel.Tracer("github.com/fivetwenty-io/dsp-client/internal/client")

// Client implements the dsp.Client interface. It owns the credential slot and
// both definition caches; every endpoint client shares them.
type Client struct {
	httpClient *http.Client
	slot       auth.Slot
	logger     dsp.Logger
	store      dsp.Cache

	auth       *AuthenticationClient
	resources  *ResourcesClient
	ontologies *OntologiesClient
	lists      *ListsClient

	ontologyCache *defcache.Cache[*dsp.ResourceClassDefinition]
	listNodeCache *defcache.Cache[*dsp.ListNode]
}

// createTokenSlot creates the credential slot, persisting changes when the
// config asks for it.
func createTokenSlot(config *dsp.Config) auth.Slot {
	if config.Token != "" && config.Logger != nil && !auth.NewToken(config.Token).Valid() {
		config.Logger.Warn("stored token has expired, log in again", nil)
	}

	if config.TokenPersister == nil {
		return auth.NewSessionTokenManager(config.Token)
	}

	onError := func(err error) {
		if config.Logger != nil {
			config.Logger.Warn("persisting token", map[string]interface{}{"error": err.Error()})
		}
	}

	return auth.NewConfigTokenManager(config.Token, config.TokenPersister, onError)
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *dsp.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.UseIncomingIRIAsIs {
		httpOpts = append(httpOpts, http.WithIncomingIRIAsIs(true))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// createDefinitionStore builds the second-level store, or nil when the
// config keeps definitions in process memory only.
func createDefinitionStore(ctx context.Context, config *dsp.Config) (dsp.Cache, error) {
	if config.DefinitionCache == nil || config.DefinitionCache.Type == dsp.CacheTypeNone {
		return nil, nil
	}

	store, err := dsp.NewCacheFromConfig(ctx, config.DefinitionCache)
	if err != nil {
		return nil, fmt.Errorf("creating definition store: %w", err)
	}

	return store, nil
}

// New creates a connection from config.
func New(ctx context.Context, config *dsp.Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	slot := createTokenSlot(config)
	httpClient := http.NewClient(config.BaseURL(), slot, createHTTPClientOptions(config)...)

	store, err := createDefinitionStore(ctx, config)
	if err != nil {
		return nil, err
	}

	return newClient(httpClient, slot, store, config.Logger), nil
}

func newClient(httpClient *http.Client, slot auth.Slot, store dsp.Cache, logger dsp.Logger) *Client {
	client := &Client{
		httpClient: httpClient,
		slot:       slot,
		logger:     logger,
		store:      store,
	}

	client.initializeClients()

	return client
}

// initializeClients wires the endpoint clients and the caches in front of
// the ontology and list endpoints.
func (c *Client) initializeClients() {
	c.ontologies = NewOntologiesClient(c.httpClient)
	c.lists = NewListsClient(c.httpClient)

	c.ontologyCache = defcache.New(ontologyCacheName, c.ontologies.GetResourceClass,
		defcache.WithStore[*dsp.ResourceClassDefinition](c.store),
		defcache.WithLogger[*dsp.ResourceClassDefinition](c.logger))
	c.listNodeCache = defcache.New(listNodeCacheName, c.lists.GetNode,
		defcache.WithStore[*dsp.ListNode](c.store),
		defcache.WithLogger[*dsp.ListNode](c.logger))

	c.auth = NewAuthenticationClient(c.httpClient, c.slot)
	c.resources = NewResourcesClient(c.httpClient, newResolver(c.ontologyCache, c.listNodeCache))
}

// Auth implements dsp.Client.Auth.
func (c *Client) Auth() dsp.AuthenticationClient {
	return c.auth
}

// Resources implements dsp.Client.Resources.
func (c *Client) Resources() dsp.ResourcesClient {
	return c.resources
}

// Ontologies implements dsp.Client.Ontologies.
func (c *Client) Ontologies() dsp.OntologiesClient {
	return c.ontologies
}

// Lists implements dsp.Client.Lists.
func (c *Client) Lists() dsp.ListsClient {
	return c.lists
}

// OntologyCache implements dsp.Client.OntologyCache.
func (c *Client) OntologyCache() dsp.DefinitionCache[*dsp.ResourceClassDefinition] {
	return c.ontologyCache
}

// ListNodeCache implements dsp.Client.ListNodeCache.
func (c *Client) ListNodeCache() dsp.DefinitionCache[*dsp.ListNode] {
	return c.listNodeCache
}

// CacheStats returns the counters of the ontology and list node caches.
func (c *Client) CacheStats() (classes, listNodes defcache.Stats) {
	return c.ontologyCache.Stats(), c.listNodeCache.Stats()
}

// SetToken implements dsp.Client.SetToken.
func (c *Client) SetToken(token string) {
	c.slot.SetToken(token)
}

// Token implements dsp.Client.Token.
func (c *Client) Token() string {
	return c.slot.Token()
}

// Close releases the second-level store connection, if any.
func (c *Client) Close() error {
	if closer, ok := c.store.(interface{ Close() }); ok {
		closer.Close()
	}

	return nil
}

// loggerAdapter adapts dsp.Logger to http.Logger.
type loggerAdapter struct {
	logger dsp.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

// componentUnescaper restores the characters url.QueryEscape escapes but a
// URI component keeps.
var componentUnescaper = strings.NewReplacer("%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// escapeIRI encodes an IRI as a single path segment, escaping ':', '/' and
// '#' the way the API expects.
func escapeIRI(iri string) string {
	return componentUnescaper.Replace(strings.ReplaceAll(url.QueryEscape(iri), "+", "%20"))
}

// iriPath joins a base path and escaped IRIs.
func iriPath(base string, iris ...string) (string, error) {
	path := base

	for _, iri := range iris {
		if iri == "" {
			return "", dsp.ValidationErrorOf(dsp.ErrIRIRequired)
		}

		path += "/" + escapeIRI(iri)
	}

	return path, nil
}
