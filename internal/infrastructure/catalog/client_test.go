package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProduct_Success(t *testing.T) {
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"product":{"id":"p1","title":"Handloom Saree","description":"Silk","price":319900,"stock":4,"thumbnail":"https://cdn.example.com/p1.webp","isActive":true,"category":{"name":"Sarees"}}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	product, err := client.GetProduct(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", product.ID)
	assert.Equal(t, "Handloom Saree", product.Title)
	assert.Equal(t, int64(319900), product.Price)
	assert.Equal(t, 4, product.Stock)
	assert.Equal(t, "Sarees", product.Category)
	assert.True(t, product.IsActive)

	variables := gotBody["variables"].(map[string]interface{})
	assert.Equal(t, "p1", variables["id"])
}

func TestGetProduct_NullCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"product":{"id":"p1","title":"Handloom Saree","price":319900,"stock":4,"isActive":true,"category":null}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	product, err := client.GetProduct(context.Background(), "p1")

	require.NoError(t, err)
	assert.Empty(t, product.Category)
}

func TestGetProduct_NotFoundIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"product":null}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	product, err := client.GetProduct(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestGetProduct_GraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"internal server error"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.GetProduct(context.Background(), "p1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal server error")
}

func TestGetProduct_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.GetProduct(context.Background(), "p1")

	assert.Error(t, err)
}
