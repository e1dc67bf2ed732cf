package client

import (
	"context"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/dsp-client/internal/constants"
	"github.com/fivetwenty-io/dsp-client/internal/http"
	"github.com/fivetwenty-io/dsp-client/internal/jsonld"
	"github.com/fivetwenty-io/dsp-client/internal/tracing"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// ResourcesClient implements dsp.ResourcesClient.
type ResourcesClient struct {
	httpClient *http.Client
	resolver   *resolver
}

// NewResourcesClient creates a new resources client.
func NewResourcesClient(httpClient *http.Client, resolver *resolver) *ResourcesClient {
	return &ResourcesClient{
		httpClient: httpClient,
		resolver:   resolver,
	}
}

// GetResource implements dsp.ResourcesClient.GetResource.
func (c *ResourcesClient) GetResource(ctx context.Context, iri string) (res *dsp.ReadResource, err error) {
	ctx, span := tracer.Start(ctx, "resources.get", trace.WithAttributes(attribute.String("resource", iri)))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	return c.getResource(ctx, iri, nil)
}

// GetResourceVersion implements dsp.ResourcesClient.GetResourceVersion.
func (c *ResourcesClient) GetResourceVersion(ctx context.Context, iri, versionDate string) (res *dsp.ReadResource, err error) {
	ctx, span := tracer.Start(ctx, "resources.get-version", trace.WithAttributes(
		attribute.String("resource", iri),
		attribute.String("version", versionDate),
	))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	query := url.Values{}
	if versionDate != "" {
		query.Set("version", versionDate)
	}

	return c.getResource(ctx, iri, query)
}

func (c *ResourcesClient) getResource(ctx context.Context, iri string, query url.Values) (*dsp.ReadResource, error) {
	path, err := iriPath(constants.ResourcesPath, iri)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting resource %s: %w", iri, err)
	}

	return c.decodeResource(ctx, resp)
}

// GetResources implements dsp.ResourcesClient.GetResources.
func (c *ResourcesClient) GetResources(ctx context.Context, iris []string) (seq *dsp.ReadResourceSequence, err error) {
	ctx, span := tracer.Start(ctx, "resources.get-many", trace.WithAttributes(attribute.Int("count", len(iris))))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if len(iris) == 0 {
		return nil, dsp.ValidationErrorOf(dsp.ErrIRIRequired)
	}

	path, err := iriPath(constants.ResourcesPath, iris...)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting resources: %w", err)
	}

	result, err := dsp.DecodeResponseData(resp.StatusCode, resp.Method, resp.URL, resp.Body,
		func(body []byte) (*dsp.ReadResourceSequence, error) {
			doc, err := jsonld.Parse(body)
			if err != nil {
				return nil, err
			}

			return jsonld.ParseResourceSequence(doc)
		})
	if err != nil {
		return nil, err
	}

	if err := c.resolver.resolve(ctx, result.Body.Resources); err != nil {
		return nil, fmt.Errorf("resolving definitions: %w", err)
	}

	return result.Body, nil
}

// CreateResource implements dsp.ResourcesClient.CreateResource. Validation
// failures are returned before any request is made.
func (c *ResourcesClient) CreateResource(ctx context.Context, resource *dsp.CreateResource) (res *dsp.ReadResource, err error) {
	ctx, span := tracer.Start(ctx, "resources.create")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if resource == nil {
		return nil, dsp.NewValidationError("no resource given")
	}

	payload, err := jsonld.EncodeCreateResource(resource)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, constants.ResourcesPath, payload)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	return c.decodeResource(ctx, resp)
}

// UpdateResourceMetadata implements dsp.ResourcesClient.UpdateResourceMetadata.
func (c *ResourcesClient) UpdateResourceMetadata(ctx context.Context, update *dsp.UpdateResourceMetadata) (out *dsp.UpdateResourceMetadataResponse, err error) {
	ctx, span := tracer.Start(ctx, "resources.update-metadata")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if update == nil {
		return nil, dsp.NewValidationError("no update given")
	}

	payload, err := jsonld.EncodeUpdateResourceMetadata(update)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, constants.ResourcesPath, payload)
	if err != nil {
		return nil, fmt.Errorf("updating resource metadata: %w", err)
	}

	result, err := dsp.DecodeResponseData(resp.StatusCode, resp.Method, resp.URL, resp.Body,
		func(body []byte) (*dsp.UpdateResourceMetadataResponse, error) {
			doc, err := jsonld.Parse(body)
			if err != nil {
				return nil, err
			}

			return jsonld.DecodeUpdateResourceMetadataResponse(doc)
		})
	if err != nil {
		return nil, err
	}

	return result.Body, nil
}

// DeleteResource implements dsp.ResourcesClient.DeleteResource.
func (c *ResourcesClient) DeleteResource(ctx context.Context, resource *dsp.DeleteResource) (out *dsp.DeleteResourceResponse, err error) {
	ctx, span := tracer.Start(ctx, "resources.delete")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	return c.deleteOrErase(ctx, constants.ResourcesDelete, resource)
}

// EraseResource implements dsp.ResourcesClient.EraseResource.
func (c *ResourcesClient) EraseResource(ctx context.Context, resource *dsp.DeleteResource) (out *dsp.DeleteResourceResponse, err error) {
	ctx, span := tracer.Start(ctx, "resources.erase")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	return c.deleteOrErase(ctx, constants.ResourcesErase, resource)
}

func (c *ResourcesClient) deleteOrErase(ctx context.Context, path string, resource *dsp.DeleteResource) (*dsp.DeleteResourceResponse, error) {
	if resource == nil {
		return nil, dsp.ValidationErrorOf(dsp.ErrIRIRequired)
	}

	if err := jsonld.ValidateDeleteResource(resource); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, jsonld.EncodeDeleteResource(resource))
	if err != nil {
		return nil, fmt.Errorf("removing resource %s: %w", resource.ID, err)
	}

	result, err := dsp.DecodeResponseData(resp.StatusCode, resp.Method, resp.URL, resp.Body,
		func(body []byte) (*dsp.DeleteResourceResponse, error) {
			doc, err := jsonld.Parse(body)
			if err != nil {
				return nil, err
			}

			return jsonld.DecodeDeleteResourceResponse(doc)
		})
	if err != nil {
		return nil, err
	}

	return result.Body, nil
}

// decodeResource runs a single-resource body through the pipeline. Lookup
// failures are returned as they are; only malformed bodies become decode errors.
func (c *ResourcesClient) decodeResource(ctx context.Context, resp *http.Response) (*dsp.ReadResource, error) {
	doc, err := jsonld.Parse(resp.Body)
	if err != nil {
		return nil, decodeFailure(resp, err)
	}

	nodes := jsonld.GraphNodes(doc)
	if len(nodes) == 0 {
		return nil, decodeFailure(resp, dsp.ErrNoResourceReturned)
	}

	res, err := jsonld.ParseResource(nodes[0])
	if err != nil {
		return nil, decodeFailure(resp, err)
	}

	if err := c.resolver.resolve(ctx, []*dsp.ReadResource{res}); err != nil {
		return nil, fmt.Errorf("resolving definitions of %s: %w", res.ID, err)
	}

	return res, nil
}

func decodeFailure(resp *http.Response, err error) error {
	return &dsp.ResponseError{
		Status: dsp.StatusDecodeFailure,
		Method: resp.Method,
		URL:    resp.URL,
		Body:   resp.Body,
		Err:    fmt.Errorf("%w: %w", dsp.ErrDecode, err),
	}
}
