package commands_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const (
	thingIRI   = "http://rdfh.ch/0001/a-thing"
	thingClass = "http://0.0.0.0:3333/ontology/0001/anything/v2#Thing"
	hasInteger = "http://0.0.0.0:3333/ontology/0001/anything/v2#hasInteger"
)

const thingJSON = `{
  "@id": "http://rdfh.ch/0001/a-thing",
  "@type": "http://0.0.0.0:3333/ontology/0001/anything/v2#Thing",
  "http://www.w3.org/2000/01/rdf-schema#label": "a thing",
  "http://api.knora.org/ontology/knora-api/v2#attachedToProject": {"@id": "http://rdfh.ch/projects/0001"},
  "http://0.0.0.0:3333/ontology/0001/anything/v2#hasInteger": {
    "@id": "http://rdfh.ch/0001/a-thing/values/1",
    "@type": "http://api.knora.org/ontology/knora-api/v2#IntValue",
    "http://api.knora.org/ontology/knora-api/v2#intValueAsInt": 7
  }
}`

const thingClassJSON = `{
  "@graph": [
    {
      "@id": "http://0.0.0.0:3333/ontology/0001/anything/v2#Thing",
      "@type": "http://www.w3.org/2002/07/owl#Class",
      "http://www.w3.org/2000/01/rdf-schema#label": "Thing"
    },
    {
      "@id": "http://0.0.0.0:3333/ontology/0001/anything/v2#hasInteger",
      "@type": "http://www.w3.org/2002/07/owl#ObjectProperty",
      "http://www.w3.org/2000/01/rdf-schema#label": "Integer"
    }
  ]
}`

// apiServer answers fixed bodies keyed by method and escaped path.
type apiServer struct {
	*httptest.Server

	mutex    sync.Mutex
	routes   map[string]string
	requests []string
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()

	s := &apiServer{routes: make(map[string]string)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.EscapedPath()

		s.mutex.Lock()
		s.requests = append(s.requests, key)
		body, ok := s.routes[key]
		s.mutex.Unlock()

		w.Header().Set("Content-Type", "application/json")

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"knora-api:error": "not found"}`))

			return
		}

		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)

	return s
}

func (s *apiServer) handle(method, path, body string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.routes[method+" "+path] = body
}

func (s *apiServer) handleIRI(method, base, iri, body string) {
	s.handle(method, base+"/"+url.QueryEscape(iri), body)
}

func (s *apiServer) recorded() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append([]string(nil), s.requests...)
}

// setupConfig points viper at an empty config file in a temp directory.
func setupConfig(t *testing.T) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(path)
	viper.Set("output", "json")

	return path
}

func readConfigFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(append([]string{}, args...))

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}
