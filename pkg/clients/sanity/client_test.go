package sanity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primalspirits/signup-page/pkg/models"
)

const pageResponse = `{
  "ms": 4,
  "query": "*[_type == \"emailSignupPage\"][0]",
  "result": {
    "heading": "Taste the wild",
    "subheading": "Small batch gin",
    "gallery": [
      {"_key": "a1", "asset": {"_id": "image-1", "url": "https://cdn.sanity.io/images/p/production/1.jpg",
        "metadata": {"dimensions": {"width": 1920, "height": 1080}, "lqip": "data:image/jpeg;base64,AAA"}}},
      {"_key": "a2", "asset": {"_id": "image-2", "url": "https://cdn.sanity.io/images/p/production/2.jpg"}},
      {"_key": "a3"}
    ]
  }
}`

func TestFetchSignupPage(t *testing.T) {
	var gotQuery, gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pageResponse))
	}))
	defer server.Close()

	client, err := NewClient(Config{Dataset: "production", APIVersion: "2024-01-01", BaseURL: server.URL, Token: "sk-read"}, server.Client())
	require.NoError(t, err)

	content, err := client.FetchSignupPage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/v2024-01-01/data/query/production", gotPath)
	assert.Equal(t, SignupPageQuery, gotQuery)
	assert.Equal(t, "Bearer sk-read", gotAuth)

	assert.Equal(t, "Taste the wild", content.Heading)
	assert.Equal(t, "Small batch gin", content.Subheading)
	assert.Empty(t, content.ButtonText)
	require.Len(t, content.Gallery, 2, "entries without an asset are skipped")
	assert.Equal(t, "a1", content.Gallery[0].Key)
	assert.Equal(t, "image-1", content.Gallery[0].AssetID)
	assert.Equal(t, &models.ImageDimensions{Width: 1920, Height: 1080}, content.Gallery[0].Dimensions)
	assert.Equal(t, "data:image/jpeg;base64,AAA", content.Gallery[0].LQIP)
	assert.Nil(t, content.Gallery[1].Dimensions)
}

func TestFetchSignupPage_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ms":1,"result":null}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{Dataset: "production", APIVersion: "2024-01-01", BaseURL: server.URL}, server.Client())
	require.NoError(t, err)

	_, err = client.FetchSignupPage(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchSignupPage_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(Config{Dataset: "production", APIVersion: "2024-01-01", BaseURL: server.URL}, server.Client())
	require.NoError(t, err)

	_, err = client.FetchSignupPage(context.Background())
	assert.Error(t, err)
}

func TestQueryURL(t *testing.T) {
	c := &clientImpl{config: Config{ProjectID: "p1", Dataset: "production", APIVersion: "v2024-01-01", UseCDN: true}}
	assert.Contains(t, c.queryURL("*"), "https://p1.apicdn.sanity.io/v2024-01-01/data/query/production?query=")

	c.config.UseCDN = false
	assert.Contains(t, c.queryURL("*"), "https://p1.api.sanity.io/")
}

func TestNewClient_RequiresIdentifiers(t *testing.T) {
	_, err := NewClient(Config{Dataset: "production", APIVersion: "2024-01-01"}, nil)
	assert.Error(t, err)

	_, err = NewClient(Config{ProjectID: "p", APIVersion: "2024-01-01"}, nil)
	assert.Error(t, err)

	_, err = NewClient(Config{ProjectID: "p", Dataset: "production"}, nil)
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)

	_, err = store.FetchSignupPage(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.PutSignupPage(&models.PageContent{
		Heading: "First",
		Gallery: []models.GalleryImage{{URL: "https://example.com/1.jpg"}},
	}))
	require.NoError(t, store.PutSignupPage(&models.PageContent{
		Heading: "Second",
		Gallery: []models.GalleryImage{{URL: "https://example.com/2.jpg"}},
	}))

	content, err := store.FetchSignupPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Second", content.Heading)

	content.Gallery[0].URL = "mutated"
	again, err := store.FetchSignupPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/2.jpg", again.Gallery[0].URL)
	assert.Equal(t, int64(3), store.Fetches())
}

func TestMemoryStore_LoadFixture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	fixture := `heading: Get Exclusive Primal Gin Offers
buttonText: Count me in
gallery:
  - key: bg1
    url: https://cdn.example.com/bg1.jpg
    dimensions:
      width: 1600
      height: 900
  - url: https://cdn.example.com/bg2.jpg
`
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	store, err := NewMemoryStore()
	require.NoError(t, err)
	require.NoError(t, store.LoadFixture(path))

	content, err := store.FetchSignupPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Count me in", content.ButtonText)
	require.Len(t, content.Gallery, 2)
	assert.Equal(t, 1600, content.Gallery[0].Dimensions.Width)
}

func TestMemoryStore_LoadFixtureRejectsInvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("subheading: no heading here\n"), 0o600))

	store, err := NewMemoryStore()
	require.NoError(t, err)

	err = store.LoadFixture(path)
	assert.ErrorIs(t, err, ErrHeadingRequired)
	assert.ErrorIs(t, err, ErrGalleryEmpty)
}

func TestSchema(t *testing.T) {
	schema := Schema()
	assert.Equal(t, DocumentType, schema.Name)

	fields := map[string]SchemaField{}
	for _, f := range schema.Fields {
		fields[f.Name] = f
	}
	assert.True(t, fields["heading"].Required)
	assert.False(t, fields["subheading"].Required)
	assert.False(t, fields["buttonText"].Required)
	assert.Equal(t, 1, fields["gallery"].Min)
	assert.Equal(t, true, fields["gallery"].Of[0].Options["hotspot"])
}
