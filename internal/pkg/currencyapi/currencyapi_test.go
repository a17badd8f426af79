// Copyright 2026 Peter Edge
//
// All rights reserved.

package currencyapi

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
		require.Equal(t, "/npm/@fawazahmed0/currency-api@2024-03-15/v1/currencies/usd.json", r.URL.Path)
		_, err := w.Write([]byte(`{"date":"2024-03-15","usd":{"eur":0.9234,"gbp":0.7912,"jpy":151.2,"cad":1.35}}`))
		require.NoError(t, err)
	}))
	defer server.Close()
	client := NewClient(
		ClientWithHTTPClient(server.Client()),
		ClientWithBaseURL(server.URL+"/npm/@fawazahmed0/currency-api"),
	)
	table, err := client.GetCurrency(context.Background(), xtime.Date{Year: 2024, Month: 3, Day: 15}, "USD")
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("0.9234").Equal(table["EUR"]))
	require.True(t, decimal.RequireFromString("0.7912").Equal(table["GBP"]))
	require.True(t, decimal.RequireFromString("151.2").Equal(table["JPY"]))
	// Quote codes are normalized to uppercase.
	_, ok := table["eur"]
	require.False(t, ok)
}

func TestGetCurrencyMissingRateTable(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, err := w.Write([]byte(`{"date":"2024-03-15"}`))
		require.NoError(t, err)
	}))
	defer server.Close()
	client := NewClient(
		ClientWithHTTPClient(server.Client()),
		ClientWithBaseURL(server.URL+"/npm/@fawazahmed0/currency-api"),
	)
	_, err := client.GetCurrency(context.Background(), xtime.Date{Year: 2024, Month: 3, Day: 15}, "xau")
	require.Error(t, err)
	require.Contains(t, err.Error(), `response has no "xau" rate table`)
}

func TestGetCurrencyNotFound(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Couldn't find the requested release version", http.StatusNotFound)
	}))
	defer server.Close()
	client := NewClient(
		ClientWithHTTPClient(server.Client()),
		ClientWithBaseURL(server.URL+"/npm/@fawazahmed0/currency-api"),
	)
	_, err := client.GetCurrency(context.Background(), xtime.Date{Year: 2024, Month: 3, Day: 15}, "usd")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status 404")
}
