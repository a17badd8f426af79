// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package currencyapi provides a client for the fawazahmed0 currency-api
// served from the jsDelivr CDN.
//
// The API publishes one JSON document per base currency per calendar date,
// versioned by date in the package path. It is free, open source, and does
// not require an API key or authentication.
// See https://github.com/fawazahmed0/exchange-api for details.
package currencyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/finsightdev/finsight/internal/standard/xtime"
	"github.com/shopspring/decimal"
)

// baseURL is the jsDelivr CDN base URL for the currency-api package.
const baseURL = "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api"

// Client is the interface for fetching per-date currency rate tables.
type Client interface {
	// GetCurrency fetches the rate table for a base currency on a date.
	// The base is a lowercase-insensitive currency or metal code (e.g., "usd", "xau").
	// Keys in the returned map are uppercase codes; each value is the amount
	// of that quote currency per one unit of the base.
	GetCurrency(ctx context.Context, date xtime.Date, base string) (map[string]decimal.Decimal, error)
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

// NewClient creates a new currency-api client with the given options.
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

func (c *client) GetCurrency(ctx context.Context, date xtime.Date, base string) (map[string]decimal.Decimal, error) {
	base = strings.ToLower(base)
	// The date selects the package version: .../currency-api@{date}/v1/currencies/{base}.json.
	reqURL := fmt.Sprintf("%s@%s/v1/currencies/%s.json", c.baseURL, date.String(), base)
	return getCurrencyDocument(ctx, c.httpClient, reqURL, base)
}

// *** PRIVATE ***

// getCurrencyDocument fetches and parses a currency-api JSON document.
// The document nests the rate table under a key named after the base currency.
func getCurrencyDocument(ctx context.Context, httpClient *http.Client, reqURL string, base string) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	// The top level is {"date": "...", "<base>": {"<code>": <number>, ...}}.
	var document map[string]json.RawMessage
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	tableRaw, ok := document[base]
	if !ok {
		return nil, fmt.Errorf("response has no %q rate table", base)
	}
	var table map[string]decimal.Decimal
	if err := json.Unmarshal(tableRaw, &table); err != nil {
		return nil, fmt.Errorf("parsing %q rate table: %w", base, err)
	}
	// Normalize quote codes to uppercase ISO form.
	result := make(map[string]decimal.Decimal, len(table))
	for code, rate := range table {
		result[strings.ToUpper(code)] = rate
	}
	return result, nil
}
