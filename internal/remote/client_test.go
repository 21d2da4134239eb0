package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktabat-alamal/storefront/internal/models"
)

func TestFetchDecodesRecordEnvelope(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Master-Key")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"record": map[string]any{
				"products": []map[string]any{{"id": 7, "name": "مسطرة", "price": 5, "inStock": true}},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "bin123", "secret", time.Second)
	require.NoError(t, err)

	doc, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/b/bin123/latest", gotPath)
	assert.Equal(t, "secret", gotKey)
	require.Len(t, doc.Products, 1)
	assert.Equal(t, 7, doc.Products[0].ID)
}

func TestReplaceSendsWholeDocument(t *testing.T) {
	var method, path string
	var body models.Document
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "bin123", "secret", time.Second)
	require.NoError(t, err)

	doc := &models.Document{Products: []models.Product{{ID: 1, Name: "قلم"}}}
	require.NoError(t, c.Replace(context.Background(), doc))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/b/bin123", path)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "قلم", body.Products[0].Name)
}

func TestCreatePostsToBinRoot(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "", "secret", time.Second)
	require.NoError(t, err)
	require.NoError(t, c.Create(context.Background(), models.DefaultDocument()))
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/b", path)
}

func TestBaseURLPathPrefixIsPreserved(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"record": map[string]any{}})
	}))
	defer srv.Close()

	// the hosted API is versioned under /v3; requests must not strip it
	c, err := NewClient(srv.URL+"/v3", "bin123", "secret", time.Second)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Replace(context.Background(), &models.Document{}))
	require.NoError(t, c.Create(context.Background(), &models.Document{}))

	assert.Equal(t, []string{"/v3/b/bin123/latest", "/v3/b/bin123", "/v3/b"}, paths)
}

func TestServerErrorsWrapUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "bin123", "", time.Second)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestConnectionRefusedWrapsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	c, err := NewClient(srv.URL, "bin123", "", time.Second)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	_, err := NewClient("not a url", "bin", "", time.Second)
	assert.Error(t, err)
}
