// Copyright 2026 Peter Edge
//
// All rights reserved.

package finsightreport

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/finsightdev/finsight/internal/finsight/finsightsource"
	"github.com/finsightdev/finsight/internal/standard/xtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCompileComparisonChanges(t *testing.T) {
	t.Parallel()
	report := Compile(
		time.Date(2024, 4, 16, 10, 0, 0, 0, time.UTC),
		berlin(),
		weather(21.3),
		snapshot(xtime.Date{Year: 2024, Month: 3, Day: 15}, "0.90", "0.78", "150.0", "2000"),
		snapshot(xtime.Date{Year: 2024, Month: 4, Day: 15}, "0.95", "0.80", "151.5", "2100"),
	)
	require.NotNil(t, report.Changes)
	require.Equal(t, "5.56%", report.Changes.Rates[finsightsource.CurrencyEUR])
	require.Equal(t, "2.56%", report.Changes.Rates[finsightsource.CurrencyGBP])
	require.Equal(t, "1.00%", report.Changes.Rates[finsightsource.CurrencyJPY])
	require.Equal(t, "5.00%", report.Changes.Gold)
}

func TestCompileSingleSnapshotHasNoChanges(t *testing.T) {
	t.Parallel()
	report := Compile(
		time.Date(2024, 4, 16, 10, 0, 0, 0, time.UTC),
		berlin(),
		weather(21.3),
		snapshot(xtime.Date{Year: 2024, Month: 3, Day: 15}, "0.90", "0.78", "150.0", "2000"),
	)
	require.Nil(t, report.Changes)
	require.Len(t, report.Snapshots, 1)
}

func TestCompileUnavailableInputsDegrade(t *testing.T) {
	t.Parallel()
	empty := DateSnapshot{
		Date: xtime.Date{Year: 2024, Month: 3, Day: 15},
		Rates: finsightsource.RateSet{
			Date: xtime.Date{Year: 2024, Month: 3, Day: 15},
			Rates: map[finsightsource.Currency]decimal.NullDecimal{
				finsightsource.CurrencyEUR: {},
				finsightsource.CurrencyGBP: {},
				finsightsource.CurrencyJPY: {},
			},
		},
		Gold: finsightsource.GoldQuote{Date: xtime.Date{Year: 2024, Month: 3, Day: 15}, Currency: "USD"},
	}
	second := snapshot(xtime.Date{Year: 2024, Month: 4, Day: 15}, "0.95", "0.80", "151.5", "2100")
	report := Compile(
		time.Date(2024, 4, 16, 10, 0, 0, 0, time.UTC),
		finsightsource.Location{City: finsightsource.Unknown, Country: finsightsource.Unknown},
		finsightsource.WeatherReading{},
		empty,
		second,
	)
	require.Equal(t, "unavailable", report.Changes.Rates[finsightsource.CurrencyEUR])
	require.Equal(t, "unavailable", report.Changes.Gold)

	var buffer bytes.Buffer
	require.NoError(t, RenderText(&buffer, report))
	text := buffer.String()
	require.Contains(t, text, "City, Country: Unknown, Unknown")
	require.Contains(t, text, "Live Temperature: unavailable °C")
	require.Contains(t, text, "Change (%): unavailable")
}

func TestRenderTextComparison(t *testing.T) {
	t.Parallel()
	report := comparisonReport()
	var buffer bytes.Buffer
	require.NoError(t, RenderText(&buffer, report))
	text := buffer.String()
	require.Contains(t, text, "FINANCIAL INSIGHTS REPORT")
	require.Contains(t, text, "Dates: 2024-03-15 → 2024-04-15")
	require.Contains(t, text, "City, Country: Berlin, Germany")
	require.Contains(t, text, "Live Temperature: 21.3 °C")
	require.Contains(t, text, "EUR: 0.9 ")
	require.Contains(t, text, "Date 2024-03-15: $2000 USD")
	require.Contains(t, text, "Date 2024-04-15: $2100 USD (Nearest available date)")
	require.Contains(t, text, "Change (%): 5.00%")
}

func TestRenderTable(t *testing.T) {
	t.Parallel()
	report := comparisonReport()
	var buffer bytes.Buffer
	require.NoError(t, RenderTable(&buffer, report))
	text := buffer.String()
	require.Contains(t, text, "METRIC")
	require.Contains(t, text, "USD/EUR")
	require.Contains(t, text, "GOLD USD/oz")
	require.Contains(t, text, "5.56%")
	require.Contains(t, text, "2100 (Nearest available date)")
}

func TestRenderJSONRoundTrips(t *testing.T) {
	t.Parallel()
	report := comparisonReport()
	var buffer bytes.Buffer
	require.NoError(t, RenderJSON(&buffer, report))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	location, ok := decoded["location"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Berlin", location["city"])
	snapshots, ok := decoded["snapshots"].([]any)
	require.True(t, ok)
	require.Len(t, snapshots, 2)
}

func TestRenderingIsIdempotent(t *testing.T) {
	t.Parallel()
	first := comparisonReport()
	second := comparisonReport()
	require.Equal(t, first, second)
	var firstText, secondText bytes.Buffer
	require.NoError(t, RenderText(&firstText, first))
	require.NoError(t, RenderText(&secondText, second))
	require.Equal(t, firstText.Bytes(), secondText.Bytes())
}

// *** PRIVATE ***

func comparisonReport() Report {
	withNote := snapshot(xtime.Date{Year: 2024, Month: 4, Day: 15}, "0.95", "0.80", "151.5", "2100")
	withNote.Gold.Note = finsightsource.NoteNearestAvailableDate
	return Compile(
		time.Date(2024, 4, 16, 10, 0, 0, 0, time.UTC),
		berlin(),
		weather(21.3),
		snapshot(xtime.Date{Year: 2024, Month: 3, Day: 15}, "0.90", "0.78", "150.0", "2000"),
		withNote,
	)
}

func snapshot(date xtime.Date, eur string, gbp string, jpy string, gold string) DateSnapshot {
	return DateSnapshot{
		Date: date,
		Rates: finsightsource.RateSet{
			Date: date,
			Rates: map[finsightsource.Currency]decimal.NullDecimal{
				finsightsource.CurrencyEUR: value(eur),
				finsightsource.CurrencyGBP: value(gbp),
				finsightsource.CurrencyJPY: value(jpy),
			},
		},
		Gold: finsightsource.GoldQuote{
			Date:          date,
			PricePerOunce: value(gold),
			Currency:      "USD",
		},
	}
}

func value(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func berlin() finsightsource.Location {
	latitude, longitude := 52.52, 13.405
	return finsightsource.Location{
		City:      "Berlin",
		Country:   "Germany",
		Latitude:  &latitude,
		Longitude: &longitude,
	}
}

func weather(temperature float64) finsightsource.WeatherReading {
	return finsightsource.WeatherReading{TemperatureCelsius: &temperature}
}
