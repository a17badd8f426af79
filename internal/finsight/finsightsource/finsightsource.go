// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package finsightsource implements the data-fetch steps of the insight
// pipeline, each with its fallback chain.
//
// Every fetch resolves to a value: a source failure falls through to the
// next source in the chain and ultimately to a missing-value result, never
// to an error. Failures that trigger a fallback are reported as warnings
// through the injected logger.
package finsightsource

import (
	"context"
	"log/slog"

	"github.com/finsightdev/finsight/internal/pkg/ipapi"
	"github.com/finsightdev/finsight/internal/standard/xtime"
	"github.com/shopspring/decimal"
)

// Currency is a quote currency for USD-based exchange rates.
type Currency string

const (
	// CurrencyEUR is the euro.
	CurrencyEUR Currency = "EUR"
	// CurrencyGBP is the pound sterling.
	CurrencyGBP Currency = "GBP"
	// CurrencyJPY is the Japanese yen.
	CurrencyJPY Currency = "JPY"
)

// Currencies returns the tracked quote currencies in display order.
func Currencies() []Currency {
	return []Currency{CurrencyEUR, CurrencyGBP, CurrencyJPY}
}

// Unknown is the value of location fields that could not be detected.
const Unknown = "Unknown"

// NoteNearestAvailableDate is the GoldQuote note set when the price was
// resolved for a different date than requested.
const NoteNearestAvailableDate = "Nearest available date"

const (
	// baseUSD is the currency-api base code for USD exchange rates.
	baseUSD = "usd"
	// baseGold is the currency-api base code for gold (troy ounce).
	baseGold = "xau"
)

// RateSet holds the USD-based exchange rates for one calendar date.
// The map contains exactly the Currencies() keys; a rate that could not
// be obtained is an invalid NullDecimal.
type RateSet struct {
	// Date is the date the rates were requested for.
	Date xtime.Date `json:"date"`
	// Rates maps each tracked currency to its rate per 1 USD.
	Rates map[Currency]decimal.NullDecimal `json:"rates"`
}

// GoldQuote holds the USD gold price for one calendar date.
type GoldQuote struct {
	// Date is the date the price was requested for.
	Date xtime.Date `json:"date"`
	// PricePerOunce is the price of one troy ounce; invalid when unavailable.
	PricePerOunce decimal.NullDecimal `json:"price_per_ounce"`
	// Currency is the quote currency, always "USD".
	Currency string `json:"currency"`
	// Note is set when the price was resolved for a different date than
	// requested, signalling reduced precision.
	Note string `json:"note,omitempty"`
}

// Location is the caller's approximate location.
type Location struct {
	// City is the city name, or Unknown.
	City string `json:"city"`
	// Country is the country name, or Unknown.
	Country string `json:"country"`
	// Latitude is the latitude in decimal degrees, nil when undetected.
	Latitude *float64 `json:"latitude"`
	// Longitude is the longitude in decimal degrees, nil when undetected.
	Longitude *float64 `json:"longitude"`
}

// WeatherReading is the current temperature at a location.
type WeatherReading struct {
	// TemperatureCelsius is the current temperature, nil when unavailable.
	TemperatureCelsius *float64 `json:"temperature_celsius"`
}

// CurrencyClient fetches per-date currency rate tables keyed by uppercase
// quote code. Both the jsDelivr and raw.githubusercontent.com clients
// implement this.
type CurrencyClient interface {
	GetCurrency(ctx context.Context, date xtime.Date, base string) (map[string]decimal.Decimal, error)
}

// GeolocationClient resolves the caller's location from their public IP.
type GeolocationClient interface {
	Geolocate(ctx context.Context) (ipapi.Geolocation, error)
}

// WeatherClient fetches the current temperature at coordinates.
type WeatherClient interface {
	GetCurrentTemperature(ctx context.Context, latitude float64, longitude float64) (float64, error)
}

// Fetcher runs the individual fetch steps against injected source clients.
type Fetcher struct {
	logger  *slog.Logger
	primary CurrencyClient
	mirror  CurrencyClient
	geo     GeolocationClient
	weather WeatherClient
}

// NewFetcher creates a new Fetcher.
// The primary and mirror clients serve the same rate dataset from
// independent hosts; the mirror is consulted only when the primary fails.
func NewFetcher(
	logger *slog.Logger,
	primary CurrencyClient,
	mirror CurrencyClient,
	geo GeolocationClient,
	weather WeatherClient,
) *Fetcher {
	return &Fetcher{
		logger:  logger,
		primary: primary,
		mirror:  mirror,
		geo:     geo,
		weather: weather,
	}
}

// FetchRates fetches the USD-based exchange rates for a date.
//
// Chain: primary, then mirror, then all-unavailable. A source that
// responds but omits an individual currency yields an unavailable rate
// for that currency without consulting the next source.
func (f *Fetcher) FetchRates(ctx context.Context, date xtime.Date) RateSet {
	for _, source := range []struct {
		name   string
		client CurrencyClient
	}{
		{name: "primary", client: f.primary},
		{name: "mirror", client: f.mirror},
	} {
		table, err := source.client.GetCurrency(ctx, date, baseUSD)
		if err != nil {
			f.logger.Warn("could not fetch exchange rates",
				"source", source.name,
				"date", date.String(),
				"error", err,
			)
			continue
		}
		return rateSetFromTable(date, table)
	}
	return rateSetFromTable(date, nil)
}

// FetchGold fetches the USD gold price per troy ounce for a date.
//
// Chain: primary, then mirror, then the primary again for the previous
// calendar day (marking the quote with NoteNearestAvailableDate), then
// unavailable. The date-shift attempt fails silently; only the exact-date
// attempts warn.
func (f *Fetcher) FetchGold(ctx context.Context, date xtime.Date) GoldQuote {
	for _, source := range []struct {
		name   string
		client CurrencyClient
	}{
		{name: "primary", client: f.primary},
		{name: "mirror", client: f.mirror},
	} {
		table, err := source.client.GetCurrency(ctx, date, baseGold)
		if err != nil {
			f.logger.Warn("could not fetch gold price",
				"source", source.name,
				"date", date.String(),
				"error", err,
			)
			continue
		}
		if price, ok := table["USD"]; ok {
			return GoldQuote{
				Date:          date,
				PricePerOunce: decimal.NullDecimal{Decimal: price, Valid: true},
				Currency:      "USD",
			}
		}
	}
	// Date-shift fallback against the primary only.
	if table, err := f.primary.GetCurrency(ctx, previousDay(date), baseGold); err == nil {
		if price, ok := table["USD"]; ok {
			return GoldQuote{
				Date:          date,
				PricePerOunce: decimal.NullDecimal{Decimal: price, Valid: true},
				Currency:      "USD",
				Note:          NoteNearestAvailableDate,
			}
		}
	}
	return GoldQuote{Date: date, Currency: "USD"}
}

// Locate resolves the caller's approximate location from their public IP.
// Single attempt; on failure every field is Unknown/nil.
func (f *Fetcher) Locate(ctx context.Context) Location {
	geolocation, err := f.geo.Geolocate(ctx)
	if err != nil {
		f.logger.Warn("could not detect location", "error", err)
		return Location{City: Unknown, Country: Unknown}
	}
	location := Location{
		City:      geolocation.City,
		Country:   geolocation.Country,
		Latitude:  geolocation.Lat,
		Longitude: geolocation.Lon,
	}
	if location.City == "" {
		location.City = Unknown
	}
	if location.Country == "" {
		location.Country = Unknown
	}
	return location
}

// FetchWeather fetches the current temperature at the location.
// Without coordinates it returns an unavailable reading and performs no
// network call. Single attempt, no fallback source.
func (f *Fetcher) FetchWeather(ctx context.Context, location Location) WeatherReading {
	if location.Latitude == nil || location.Longitude == nil {
		return WeatherReading{}
	}
	temperature, err := f.weather.GetCurrentTemperature(ctx, *location.Latitude, *location.Longitude)
	if err != nil {
		f.logger.Warn("could not fetch weather", "error", err)
		return WeatherReading{}
	}
	return WeatherReading{TemperatureCelsius: &temperature}
}

// *** PRIVATE ***

// rateSetFromTable builds a RateSet from a fetched rate table, which may be
// nil. Every tracked currency gets an entry; currencies the table omits are
// unavailable.
func rateSetFromTable(date xtime.Date, table map[string]decimal.Decimal) RateSet {
	rates := make(map[Currency]decimal.NullDecimal, len(Currencies()))
	for _, currency := range Currencies() {
		if rate, ok := table[string(currency)]; ok {
			rates[currency] = decimal.NullDecimal{Decimal: rate, Valid: true}
		} else {
			rates[currency] = decimal.NullDecimal{}
		}
	}
	return RateSet{Date: date, Rates: rates}
}

// previousDay returns the date with the day-of-month decremented by one.
// When the day is already 1, the result is the same date again (the day
// field is never rolled back across a month boundary), so a month-start
// request probes the identical document a second time.
func previousDay(date xtime.Date) xtime.Date {
	if date.Day > 1 {
		date.Day--
	}
	return date
}
