// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package finsightreport compiles fetched entities into the final insight
// report and renders it.
//
// Compilation is pure: it performs no I/O, never fails, and renders any
// missing input as its unavailable/Unknown form. Compiling or rendering
// the same inputs twice produces identical bytes.
package finsightreport

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/finsightdev/finsight/internal/finsight/finsightsource"
	"github.com/finsightdev/finsight/internal/pkg/cliio"
	"github.com/finsightdev/finsight/internal/pkg/percent"
	"github.com/finsightdev/finsight/internal/standard/xtime"
	"github.com/shopspring/decimal"
)

// banner is the horizontal rule used in the text rendering.
const banner = "============================================================"

// DateSnapshot bundles the finance data fetched for one calendar date.
type DateSnapshot struct {
	// Date is the calendar date the snapshot was fetched for.
	Date xtime.Date `json:"date"`
	// Rates is the USD-based exchange rate set for the date.
	Rates finsightsource.RateSet `json:"rates"`
	// Gold is the gold quote for the date.
	Gold finsightsource.GoldQuote `json:"gold"`
}

// Changes holds the percentage changes between the two snapshots of a
// comparison report. Each value is a formatted percentage or "unavailable".
type Changes struct {
	// Rates maps each tracked currency to its percentage change.
	Rates map[finsightsource.Currency]string `json:"rates"`
	// Gold is the percentage change of the gold price.
	Gold string `json:"gold"`
}

// Report is the terminal aggregate of one pipeline run.
type Report struct {
	// GeneratedAt is the wall-clock time the report was compiled for.
	GeneratedAt time.Time `json:"generated_at"`
	// Location is the caller's approximate location.
	Location finsightsource.Location `json:"location"`
	// Weather is the current temperature at the location.
	Weather finsightsource.WeatherReading `json:"weather"`
	// Snapshots holds one entry per requested date, in request order.
	Snapshots []DateSnapshot `json:"snapshots"`
	// Changes is set only for two-snapshot comparison reports.
	Changes *Changes `json:"changes,omitempty"`
}

// Compile assembles fetched entities into a Report.
// With exactly two snapshots it also computes the percentage changes per
// currency and for gold, from the first snapshot to the second.
func Compile(
	generatedAt time.Time,
	location finsightsource.Location,
	weather finsightsource.WeatherReading,
	snapshots ...DateSnapshot,
) Report {
	report := Report{
		GeneratedAt: generatedAt,
		Location:    location,
		Weather:     weather,
		Snapshots:   snapshots,
	}
	if len(snapshots) == 2 {
		rateChanges := make(map[finsightsource.Currency]string, len(finsightsource.Currencies()))
		for _, currency := range finsightsource.Currencies() {
			rateChanges[currency] = percent.Change(
				snapshots[0].Rates.Rates[currency],
				snapshots[1].Rates.Rates[currency],
			)
		}
		report.Changes = &Changes{
			Rates: rateChanges,
			Gold:  percent.Change(snapshots[0].Gold.PricePerOunce, snapshots[1].Gold.PricePerOunce),
		}
	}
	return report
}

// RenderText writes the human-readable banner report.
func RenderText(writer io.Writer, report Report) error {
	var builder strings.Builder
	builder.WriteString("\n" + banner + "\n")
	builder.WriteString("FINANCIAL INSIGHTS REPORT\n")
	builder.WriteString(banner + "\n")
	if len(report.Snapshots) == 2 {
		fmt.Fprintf(&builder, "Dates: %s → %s\n", report.Snapshots[0].Date, report.Snapshots[1].Date)
	} else if len(report.Snapshots) == 1 {
		fmt.Fprintf(&builder, "Date: %s\n", report.Snapshots[0].Date)
	}
	builder.WriteString("\nLOCATION & WEATHER:\n")
	fmt.Fprintf(&builder, "  City, Country: %s, %s\n", report.Location.City, report.Location.Country)
	fmt.Fprintf(&builder, "  Live Temperature: %s °C\n", FormatTemperature(report.Weather.TemperatureCelsius))
	fmt.Fprintf(&builder, "  Now: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	builder.WriteString("\nEXCHANGE RATES (USD Base):\n")
	for _, snapshot := range report.Snapshots {
		fmt.Fprintf(&builder, "  Date %s  |", snapshot.Date)
		for _, currency := range finsightsource.Currencies() {
			fmt.Fprintf(&builder, " %s: %s ", currency, FormatValue(snapshot.Rates.Rates[currency]))
		}
		builder.WriteString("\n")
	}
	if report.Changes != nil {
		builder.WriteString("  Change (%)      |")
		for _, currency := range finsightsource.Currencies() {
			fmt.Fprintf(&builder, " %s: %s ", currency, report.Changes.Rates[currency])
		}
		builder.WriteString("\n")
	}
	builder.WriteString("\nGOLD PRICE (USD/oz):\n")
	for _, snapshot := range report.Snapshots {
		fmt.Fprintf(&builder, "  Date %s: %s\n", snapshot.Date, formatGold(snapshot.Gold))
	}
	if report.Changes != nil {
		fmt.Fprintf(&builder, "  Change (%%): %s\n", report.Changes.Gold)
	}
	builder.WriteString("\n" + banner + "\n")
	_, err := io.WriteString(writer, builder.String())
	return err
}

// RenderTable writes the report's metrics as an aligned table, one row per
// metric with a column per date (plus a change column for comparisons).
func RenderTable(writer io.Writer, report Report) error {
	headers := []string{"METRIC"}
	for _, snapshot := range report.Snapshots {
		headers = append(headers, snapshot.Date.String())
	}
	if report.Changes != nil {
		headers = append(headers, "CHANGE")
	}
	var rows [][]string
	for _, currency := range finsightsource.Currencies() {
		row := []string{fmt.Sprintf("USD/%s", currency)}
		for _, snapshot := range report.Snapshots {
			row = append(row, FormatValue(snapshot.Rates.Rates[currency]))
		}
		if report.Changes != nil {
			row = append(row, report.Changes.Rates[currency])
		}
		rows = append(rows, row)
	}
	goldRow := []string{"GOLD USD/oz"}
	for _, snapshot := range report.Snapshots {
		value := FormatValue(snapshot.Gold.PricePerOunce)
		if snapshot.Gold.Note != "" {
			value = fmt.Sprintf("%s (%s)", value, snapshot.Gold.Note)
		}
		goldRow = append(goldRow, value)
	}
	if report.Changes != nil {
		goldRow = append(goldRow, report.Changes.Gold)
	}
	rows = append(rows, goldRow)
	return cliio.WriteTable(writer, headers, rows)
}

// RenderJSON writes the report as a single JSON object.
func RenderJSON(writer io.Writer, report Report) error {
	return cliio.WriteJSON(writer, report)
}

// FormatValue renders a possibly-missing decimal value.
func FormatValue(value decimal.NullDecimal) string {
	if !value.Valid {
		return percent.Unavailable
	}
	return value.Decimal.String()
}

// FormatTemperature renders a possibly-missing temperature.
func FormatTemperature(temperature *float64) string {
	if temperature == nil {
		return percent.Unavailable
	}
	return fmt.Sprintf("%g", *temperature)
}

// *** PRIVATE ***

// formatGold renders a gold quote line value, appending the nearest-date
// note parenthetically when present.
func formatGold(quote finsightsource.GoldQuote) string {
	if !quote.PricePerOunce.Valid {
		return percent.Unavailable
	}
	value := fmt.Sprintf("$%s %s", quote.PricePerOunce.Decimal.String(), quote.Currency)
	if quote.Note != "" {
		value = fmt.Sprintf("%s (%s)", value, quote.Note)
	}
	return value
}
