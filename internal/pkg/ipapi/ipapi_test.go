// Copyright 2026 Peter Edge
//
// All rights reserved.

package ipapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeolocate(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, err := w.Write([]byte(`{"status":"success","country":"Germany","city":"Berlin","lat":52.52,"lon":13.405}`))
		require.NoError(t, err)
	}))
	defer server.Close()
	client := NewClient(
		ClientWithHTTPClient(server.Client()),
		ClientWithBaseURL(server.URL),
	)
	geolocation, err := client.Geolocate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Berlin", geolocation.City)
	require.Equal(t, "Germany", geolocation.Country)
	require.NotNil(t, geolocation.Lat)
	require.NotNil(t, geolocation.Lon)
	require.Equal(t, 52.52, *geolocation.Lat)
	require.Equal(t, 13.405, *geolocation.Lon)
}

func TestGeolocateFailStatus(t *testing.T) {
	t.Parallel()
	// A "fail" status response carries no location fields; the client
	// returns zero values rather than an error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, err := w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
		require.NoError(t, err)
	}))
	defer server.Close()
	client := NewClient(
		ClientWithHTTPClient(server.Client()),
		ClientWithBaseURL(server.URL),
	)
	geolocation, err := client.Geolocate(context.Background())
	require.NoError(t, err)
	require.Empty(t, geolocation.City)
	require.Empty(t, geolocation.Country)
	require.Nil(t, geolocation.Lat)
	require.Nil(t, geolocation.Lon)
}

func TestGeolocateServerError(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()
	client := NewClient(
		ClientWithHTTPClient(server.Client()),
		ClientWithBaseURL(server.URL),
	)
	_, err := client.Geolocate(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status 429")
}
