// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package openmeteo provides a client for the Open-Meteo forecast API.
//
// Open-Meteo is free for non-commercial use and does not require an API
// key. See https://open-meteo.com/en/docs for usage details.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// baseURL is the Open-Meteo forecast endpoint URL.
const baseURL = "https://api.open-meteo.com/v1/forecast"

// Client is the interface for fetching current weather conditions.
type Client interface {
	// GetCurrentTemperature fetches the current temperature in degrees
	// Celsius at the given coordinates, evaluated in the location's own
	// timezone.
	GetCurrentTemperature(ctx context.Context, latitude float64, longitude float64) (float64, error)
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

// NewClient creates a new Open-Meteo client with the given options.
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

func (c *client) GetCurrentTemperature(ctx context.Context, latitude float64, longitude float64) (float64, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", latitude))
	values.Set("longitude", fmt.Sprintf("%f", longitude))
	values.Set("current", "temperature_2m")
	values.Set("timezone", "auto")
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	var forecastResp forecastResponse
	if err := json.Unmarshal(body, &forecastResp); err != nil {
		return 0, fmt.Errorf("parsing response: %w", err)
	}
	if forecastResp.Current.Temperature2M == nil {
		return 0, fmt.Errorf("response has no current temperature")
	}
	return *forecastResp.Current.Temperature2M, nil
}

// *** PRIVATE ***

// forecastResponse is the JSON response from the Open-Meteo forecast endpoint.
type forecastResponse struct {
	// Current holds the requested current-weather variables.
	Current forecastCurrent `json:"current"`
}

// forecastCurrent is the current-weather block of a forecast response.
type forecastCurrent struct {
	// Temperature2M is the air temperature at 2 meters in degrees Celsius.
	Temperature2M *float64 `json:"temperature_2m"`
}
