package client

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/dsp-client/internal/constants"
	"github.com/fivetwenty-io/dsp-client/internal/http"
	"github.com/fivetwenty-io/dsp-client/internal/jsonld"
	"github.com/fivetwenty-io/dsp-client/internal/tracing"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// OntologiesClient implements dsp.OntologiesClient.
type OntologiesClient struct {
	httpClient *http.Client
}

// NewOntologiesClient creates a new ontologies client.
func NewOntologiesClient(httpClient *http.Client) *OntologiesClient {
	return &OntologiesClient{
		httpClient: httpClient,
	}
}

// GetResourceClass implements dsp.OntologiesClient.GetResourceClass.
func (c *OntologiesClient) GetResourceClass(ctx context.Context, classIRI string) (def *dsp.ResourceClassDefinition, err error) {
	ctx, span := tracer.Start(ctx, "ontologies.get-class", trace.WithAttributes(attribute.String("class", classIRI)))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	path, err := iriPath(constants.OntologyClassPath, classIRI)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting resource class %s: %w", classIRI, err)
	}

	result, err := dsp.DecodeResponseData(resp.StatusCode, resp.Method, resp.URL, resp.Body,
		func(body []byte) (*dsp.ResourceClassDefinition, error) {
			doc, err := jsonld.Parse(body)
			if err != nil {
				return nil, err
			}

			return jsonld.DecodeResourceClass(doc, classIRI)
		})
	if err != nil {
		return nil, err
	}

	return result.Body, nil
}

// ListsClient implements dsp.ListsClient.
type ListsClient struct {
	httpClient *http.Client
}

// NewListsClient creates a new lists client.
func NewListsClient(httpClient *http.Client) *ListsClient {
	return &ListsClient{
		httpClient: httpClient,
	}
}

// GetNode implements dsp.ListsClient.GetNode.
func (c *ListsClient) GetNode(ctx context.Context, nodeIRI string) (node *dsp.ListNode, err error) {
	ctx, span := tracer.Start(ctx, "lists.get-node", trace.WithAttributes(attribute.String("node", nodeIRI)))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	path, err := iriPath(constants.ListNodePath, nodeIRI)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting list node %s: %w", nodeIRI, err)
	}

	result, err := dsp.DecodeResponseData(resp.StatusCode, resp.Method, resp.URL, resp.Body,
		func(body []byte) (*dsp.ListNode, error) {
			doc, err := jsonld.Parse(body)
			if err != nil {
				return nil, err
			}

			return jsonld.DecodeListNode(doc, nodeIRI)
		})
	if err != nil {
		return nil, err
	}

	return result.Body, nil
}
