// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package ipapi provides a client for the ip-api.com IP geolocation API.
//
// A parameterless GET resolves the caller's own public IP. The free tier
// requires no authentication and is rate-limited, which is fine for a
// once-per-run CLI lookup. See https://ip-api.com/docs for details.
package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// baseURL is the ip-api.com JSON endpoint URL.
const baseURL = "http://ip-api.com/json/"

// Geolocation is the caller's approximate location as reported by ip-api.com.
// String fields are empty and coordinate pointers are nil when the response
// omits them (e.g., for reserved-range or unresolvable addresses).
type Geolocation struct {
	// City is the city name.
	City string
	// Country is the country name.
	Country string
	// Lat is the latitude in decimal degrees.
	Lat *float64
	// Lon is the longitude in decimal degrees.
	Lon *float64
}

// Client is the interface for resolving the caller's location from their public IP.
type Client interface {
	// Geolocate resolves the caller's approximate location.
	Geolocate(ctx context.Context) (Geolocation, error)
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*client)

// ClientWithHTTPClient sets the HTTP client to use for requests.
func ClientWithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// ClientWithBaseURL sets the base URL to use for requests.
func ClientWithBaseURL(url string) ClientOption {
	return func(c *client) {
		c.baseURL = url
	}
}

// NewClient creates a new ip-api.com client with the given options.
func NewClient(options ...ClientOption) Client {
	c := &client{
		httpClient: http.DefaultClient,
		baseURL:    baseURL,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

type client struct {
	httpClient *http.Client
	baseURL    string
}

func (c *client) Geolocate(ctx context.Context) (Geolocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return Geolocation{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Geolocation{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Geolocation{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Geolocation{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	var ipAPIResp ipAPIResponse
	if err := json.Unmarshal(body, &ipAPIResp); err != nil {
		return Geolocation{}, fmt.Errorf("parsing response: %w", err)
	}
	return Geolocation{
		City:    ipAPIResp.City,
		Country: ipAPIResp.Country,
		Lat:     ipAPIResp.Lat,
		Lon:     ipAPIResp.Lon,
	}, nil
}

// *** PRIVATE ***

// ipAPIResponse is the JSON response from the ip-api.com JSON endpoint.
// The response also carries a "status" field; as with missing fields, a
// "fail" status simply leaves the location fields at their zero values.
type ipAPIResponse struct {
	// City is the city name.
	City string `json:"city"`
	// Country is the country name.
	Country string `json:"country"`
	// Lat is the latitude in decimal degrees.
	Lat *float64 `json:"lat"`
	// Lon is the longitude in decimal degrees.
	Lon *float64 `json:"lon"`
}
