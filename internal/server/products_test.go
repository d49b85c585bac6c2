package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetProductProjection(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/products/prod_wireless_headphones", "", "")
	require.Equal(t, http.StatusOK, resp.Code)

	product := decodeBody(t, resp)
	require.Equal(t, "prod_wireless_headphones", product["id"])
	require.Equal(t, "Wireless Headphones", product["name"])

	price := product["price"].(map[string]any)
	require.Equal(t, float64(7999), price["amount"])
	require.Equal(t, "usd", price["currency"])

	inventory := product["inventory"].(map[string]any)
	require.Greater(t, inventory["quantity"], float64(0))

	specs := product["specifications"].(map[string]any)
	require.Equal(t, "AudioTech", specs["brand"])
	features := specs["features"].([]any)
	require.GreaterOrEqual(t, len(features), 3)

	ratings := product["ratings"].(map[string]any)
	require.Equal(t, 4.6, ratings["average"])

	meta := product["metadata"].(map[string]any)
	require.Equal(t, true, meta["isFeatured"])
}

func TestGetProductUnknown(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/products/prod_nope", "", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "not_found", errorType(t, resp))
}
