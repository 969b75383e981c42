package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/wishlist-api/internal/core/domain/product"
)

func TestClient_ListProducts(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"meta":{"page_number":2,"page_size":1},"products":[{"id":"p1","title":"Chair","brand":"acme","price":10.5,"image":"http://img/p1.jpg","reviewScore":4.5}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, nil, nil)
	page, err := c.ListProducts(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "/product/", gotPath)
	require.Equal(t, "page=2", gotQuery)
	require.Equal(t, 2, page.Meta.PageNumber)
	require.Len(t, page.Products, 1)
	require.Equal(t, "p1", page.Products[0].ID)
	require.NotNil(t, page.Products[0].ReviewScore)
	require.InDelta(t, 4.5, *page.Products[0].ReviewScore, 0.0001)
}

func TestClient_GetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/product/abc-1/", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"abc-1","title":"Lamp","brand":"b","price":3,"image":"i"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, nil)
	p, err := c.GetProduct(context.Background(), "abc-1")
	require.NoError(t, err)
	require.Equal(t, "Lamp", p.Title)
	require.Nil(t, p.ReviewScore)
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, nil)
	_, err := c.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, product.ErrNotFound)

	_, err = c.ListProducts(context.Background(), 99)
	require.ErrorIs(t, err, product.ErrNotFound)
}

func TestClient_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	c := NewClient(srv.URL, time.Second, m, nil)
	_, err = c.GetProduct(context.Background(), "x")
	require.Error(t, err)
	require.False(t, errors.Is(err, product.ErrNotFound))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusBadGateway, se.StatusCode)
	require.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("show", "502")))
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, nil)
	_, err := c.ListProducts(context.Background(), 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode response")
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	c := NewClient(url, time.Second, m, nil)
	_, err = c.ListProducts(context.Background(), 1)
	require.Error(t, err)
	require.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("list", "error")))
}
