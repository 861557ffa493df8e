package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fakestore/shop/internal/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsJSON = `[
  {"id":1,"title":"Backpack","price":109.95,"description":"Fits 15 inch laptops","category":"men's clothing","image":"https://img/1.jpg","rating":{"rate":3.9,"count":120}},
  {"id":5,"title":"Bracelet","price":695,"description":"Gold","category":"jewelery","image":"https://img/5.jpg","rating":{"rate":4.6,"count":400}}
]`

func newTestClient(url string) CatalogClient {
	return NewCatalogClient(config.CatalogConfig{
		BaseURL: url + "/",
		Timeout: 5 * time.Second,
	}, nil)
}

func TestGetProducts(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(productsJSON))
	}))
	defer srv.Close()

	products, err := newTestClient(srv.URL).GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int32(1), requests.Load())

	p := products[0]
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Backpack", p.Title)
	assert.True(t, decimal.RequireFromString("109.95").Equal(p.Price))
	assert.Equal(t, "men's clothing", p.Category)
	assert.Equal(t, "https://img/1.jpg", p.Image)
	assert.InDelta(t, 3.9, p.Rating.Rate, 1e-9)
	assert.Equal(t, 120, p.Rating.Count)
}

func TestGetProductsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetProducts(context.Background())
	assert.ErrorContains(t, err, "HTTP error: 500")
}

func TestGetProductsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetProducts(context.Background())
	assert.ErrorContains(t, err, "failed to decode products")
}

func TestGetProductsCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(productsJSON))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetProducts(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCloseReleasesClient(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")
	assert.NoError(t, c.Close())
}
