package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/dsp-client/internal/auth"
	internalhttp "github.com/fivetwenty-io/dsp-client/internal/http"
)

const (
	testdingIRI  = "http://rdfh.ch/0001/H6gBWUuJSuuO-CilHV8kQw"
	sierraIRI    = "http://rdfh.ch/0001/0C-0L1kORryKzJAJxxRyRQ"
	thingClass   = "http://0.0.0.0:3333/ontology/0001/anything/v2#Thing"
	resourceRoot = "http://api.knora.org/ontology/knora-api/v2#Resource"
	treeList01   = "http://rdfh.ch/lists/0001/treeList01"
	anything     = "http://0.0.0.0:3333/ontology/0001/anything/v2#"
)

type stubResponse struct {
	status int
	body   string
}

type recordedRequest struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	ContentType   string
	Body          string
}

// fakeServer answers requests from a route table keyed by method and escaped
// path, and records every request it sees.
type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]stubResponse
	requests []recordedRequest
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	fs := &fakeServer{routes: make(map[string]stubResponse)}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.Close)

	return fs
}

func (fs *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	fs.mu.Lock()
	fs.requests = append(fs.requests, recordedRequest{
		Method:        r.Method,
		Path:          r.URL.EscapedPath(),
		Query:         r.URL.Query(),
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          string(body),
	})
	stub, ok := fs.routes[r.Method+" "+r.URL.EscapedPath()]
	fs.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"knora-api:error": "dsp.errors.NotFoundException: not found"}`))

		return
	}

	w.Header().Set("Content-Type", "application/ld+json")
	w.WriteHeader(stub.status)
	_, _ = w.Write([]byte(stub.body))
}

func (fs *fakeServer) handle(method, path string, status int, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.routes[method+" "+path] = stubResponse{status: status, body: body}
}

// wireIRI is the escaped form of an IRI segment as it appears on the wire.
func wireIRI(iri string) string {
	r := strings.NewReplacer(":", "%3A", "/", "%2F", "#", "%23")

	return r.Replace(iri)
}

// handleIRI registers a route under base followed by the escaped IRI.
func (fs *fakeServer) handleIRI(method, base, iri string, status int, body string) {
	fs.handle(method, base+"/"+wireIRI(iri), status, body)
}

func (fs *fakeServer) recorded() []recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return append([]recordedRequest(nil), fs.requests...)
}

// count returns how many requests hit the escaped path of iri under base.
func (fs *fakeServer) count(base, iri string) int {
	path := base + "/" + wireIRI(iri)
	n := 0

	for _, req := range fs.recorded() {
		if req.Path == path {
			n++
		}
	}

	return n
}

// withDefinitions registers the Thing class, the knora-api:Resource class and
// the tree list node.
func (fs *fakeServer) withDefinitions(t *testing.T) *fakeServer {
	t.Helper()

	fs.handleIRI(http.MethodGet, "/v2/ontologies/classes", thingClass, http.StatusOK, loadTestdata(t, "thing-class.json"))
	fs.handleIRI(http.MethodGet, "/v2/ontologies/classes", resourceRoot, http.StatusOK, loadTestdata(t, "resource-class.json"))
	fs.handleIRI(http.MethodGet, "/v2/node", treeList01, http.StatusOK, loadTestdata(t, "tree-list-node.json"))

	return fs
}

func loadTestdata(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return string(data)
}

// newTestClient creates a connection against fs with an in-process slot and
// no second-level store.
func newTestClient(fs *fakeServer) *Client {
	slot := auth.NewSessionTokenManager("")
	httpClient := internalhttp.NewClient(fs.URL, slot)

	return newClient(httpClient, slot, nil, nil)
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return ctx
}
