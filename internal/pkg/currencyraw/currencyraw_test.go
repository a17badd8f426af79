// Copyright 2026 Peter Edge
//
// All rights reserved.

package currencyraw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finsightdev/finsight/internal/standard/xtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGetCurrency(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/2024-03-15/currencies/xau.json", r.URL.Path)
		_, err := w.Write([]byte(`{"date":"2024-03-15","xau":{"usd":2000.5,"eur":1847.3}}`))
		require.NoError(t, err)
	}))
	defer server.Close()
	client := NewClient(
		ClientWithHTTPClient(server.Client()),
		ClientWithBaseURL(server.URL),
	)
	table, err := client.GetCurrency(context.Background(), xtime.Date{Year: 2024, Month: 3, Day: 15}, "xau")
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("2000.5").Equal(table["USD"]))
	require.True(t, decimal.RequireFromString("1847.3").Equal(table["EUR"]))
}

func TestGetCurrencyNotFound(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "404: Not Found", http.StatusNotFound)
	}))
	defer server.Close()
	client := NewClient(
		ClientWithHTTPClient(server.Client()),
		ClientWithBaseURL(server.URL),
	)
	_, err := client.GetCurrency(context.Background(), xtime.Date{Year: 2024, Month: 3, Day: 15}, "usd")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status 404")
}
