package jsonld_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/dsp-client/internal/jsonld"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

const anything = "http://0.0.0.0:3333/ontology/0001/anything/v2#"

func loadFixture(t *testing.T, name string) jsonld.Object {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	doc, err := jsonld.Parse(data)
	require.NoError(t, err)

	return doc
}

//nolint:funlen // checks every value kind of the fixture
func TestParseResource(t *testing.T) {
	t.Parallel()

	res, err := jsonld.ParseResource(loadFixture(t, "testding.json"))
	require.NoError(t, err)

	assert.Equal(t, "http://rdfh.ch/0001/H6gBWUuJSuuO-CilHV8kQw", res.ID)
	assert.Equal(t, anything+"Thing", res.Type)
	assert.Equal(t, "testding", res.Label)
	assert.Empty(t, res.ResourceClassLabel)
	assert.Equal(t, "http://rdfh.ch/projects/0001", res.AttachedToProject)
	assert.Equal(t, "http://rdfh.ch/users/9XBCrDV3SRa7kS1WwynB4Q", res.AttachedToUser)
	assert.Equal(t, "RV", res.UserHasPermission)
	assert.Equal(t, "http://0.0.0.0:3336/ark:/72163/1/0001/H6gBWUuJSuuO=CilHV8kQwk", res.ArkURL)
	require.NotNil(t, res.CreationDate)
	assert.True(t, time.Date(2016, 3, 2, 15, 5, 10, 0, time.UTC).Equal(*res.CreationDate))
	assert.False(t, res.IsDeleted)
	assert.Len(t, res.Properties, 7)

	booleans := dsp.ValuesOf[*dsp.ReadBooleanValue](res, anything+"hasBoolean")
	require.Len(t, booleans, 1)
	assert.True(t, booleans[0].Bool)
	assert.Equal(t, "IN4R19yYR0ygi3K2VEHpUQ", booleans[0].UUID)
	require.NotNil(t, booleans[0].ValueCreationDate)

	decimals := dsp.ValuesOf[*dsp.ReadDecimalValue](res, anything+"hasDecimal")
	require.Len(t, decimals, 2)
	assert.Equal(t, "1.5", decimals[0].Decimal.String())
	assert.Equal(t, "2.1", decimals[1].Decimal.String())

	dates := dsp.ValuesOf[*dsp.ReadDateValue](res, anything+"hasDate")
	require.Len(t, dates, 1)
	assert.Equal(t, "GREGORIAN", dates[0].Calendar)
	assert.Equal(t, 2018, dates[0].StartYear)
	require.NotNil(t, dates[0].EndDay)
	assert.Equal(t, 13, *dates[0].EndDay)
	assert.Equal(t, "GREGORIAN:2018-05-13 CE", dates[0].ValueAsString)

	lists := dsp.ValuesOf[*dsp.ReadListValue](res, anything+"hasListItem")
	require.Len(t, lists, 1)
	assert.Equal(t, "http://rdfh.ch/lists/0001/treeList01", lists[0].ListNode)
	assert.Empty(t, lists[0].ListNodeLabel)

	links := dsp.ValuesOf[*dsp.ReadLinkValue](res, anything+"hasOtherThingValue")
	require.Len(t, links, 1)
	assert.Equal(t, "http://rdfh.ch/0001/0C-0L1kORryKzJAJxxRyRQ", links[0].LinkedResourceIRI)
	require.NotNil(t, links[0].LinkedResource)
	assert.Equal(t, "Sierra", links[0].LinkedResource.Label)
	assert.Equal(t, anything+"Thing", links[0].LinkedResource.Type)

	texts := dsp.ValuesOf[*dsp.ReadTextValueAsString](res, anything+"hasText")
	require.Len(t, texts, 1)
	assert.Equal(t, "test", texts[0].Text)
	assert.Equal(t, "a comment", texts[0].ValueHasComment)

	times := dsp.ValuesOf[*dsp.ReadTimeValue](res, anything+"hasTimeStamp")
	require.Len(t, times, 1)
	assert.Equal(t, 2019, times[0].Time.Year())
}

func TestParseResource_Deleted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "flag",
			doc: `{"@id":"http://rdfh.ch/0001/deleted","@type":"http://0.0.0.0:3333/ontology/0001/anything/v2#Thing",
				"http://api.knora.org/ontology/knora-api/v2#isDeleted":true,
				"http://api.knora.org/ontology/knora-api/v2#deleteDate":{"@type":"http://www.w3.org/2001/XMLSchema#dateTimeStamp","@value":"2020-01-01T10:00:00Z"},
				"http://api.knora.org/ontology/knora-api/v2#deleteComment":"gone"}`,
		},
		{
			name: "typed literal flag",
			doc: `{"@id":"http://rdfh.ch/0001/deleted","@type":"http://0.0.0.0:3333/ontology/0001/anything/v2#Thing",
				"http://api.knora.org/ontology/knora-api/v2#isDeleted":{"@type":"http://www.w3.org/2001/XMLSchema#boolean","@value":"true"},
				"http://api.knora.org/ontology/knora-api/v2#deleteComment":"gone"}`,
		},
		{
			name: "deleted resource class",
			doc: `{"@id":"http://rdfh.ch/0001/deleted","@type":"http://api.knora.org/ontology/knora-api/v2#DeletedResource",
				"http://api.knora.org/ontology/knora-api/v2#deleteComment":"gone"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := jsonld.Parse([]byte(tt.doc))
			require.NoError(t, err)

			res, err := jsonld.ParseResource(doc)
			require.NoError(t, err)
			assert.True(t, res.IsDeleted)
			assert.Equal(t, "gone", res.DeleteComment)
		})
	}
}

func TestParseResourceSequence(t *testing.T) {
	t.Parallel()

	doc, err := jsonld.Parse([]byte(`{
		"@graph": [
			{"@id": "http://rdfh.ch/0001/b", "@type": "http://0.0.0.0:3333/ontology/0001/anything/v2#Thing", "http://www.w3.org/2000/01/rdf-schema#label": "B"},
			{"@id": "http://rdfh.ch/0001/a", "@type": "http://0.0.0.0:3333/ontology/0001/anything/v2#Thing", "http://www.w3.org/2000/01/rdf-schema#label": "A"}
		],
		"http://api.knora.org/ontology/knora-api/v2#mayHaveMoreResults": true
	}`))
	require.NoError(t, err)

	seq, err := jsonld.ParseResourceSequence(doc)
	require.NoError(t, err)
	require.Len(t, seq.Resources, 2)
	assert.Equal(t, "B", seq.Resources[0].Label)
	assert.Equal(t, "A", seq.Resources[1].Label)
	assert.Equal(t, 2, seq.TotalCount)
	assert.True(t, seq.MayHaveMoreResults)
}

func TestParseResourceSequence_SingleAndEmpty(t *testing.T) {
	t.Parallel()

	seq, err := jsonld.ParseResourceSequence(loadFixture(t, "testding.json"))
	require.NoError(t, err)
	assert.Equal(t, 1, seq.TotalCount)

	empty, err := jsonld.ParseResourceSequence(jsonld.Object{})
	require.NoError(t, err)
	assert.Empty(t, empty.Resources)
	assert.Equal(t, 0, empty.TotalCount)
}

func TestParseResource_UnknownValueType(t *testing.T) {
	t.Parallel()

	doc, err := jsonld.Parse([]byte(`{"@id":"x","@type":"y",
		"http://0.0.0.0:3333/ontology/0001/anything/v2#hasThing":{"@type":"http://example.org/Unknown"}}`))
	require.NoError(t, err)

	_, err = jsonld.ParseResource(doc)
	require.ErrorIs(t, err, dsp.ErrUnknownValueType)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := jsonld.Parse([]byte(`{"@id":`))
	require.Error(t, err)

	_, err = jsonld.Parse([]byte(`null`))
	require.ErrorIs(t, err, dsp.ErrDecode)
}
