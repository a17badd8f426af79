// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package finsightpipeline drives the insight report pipeline.
//
// The pipeline runs its fetch steps strictly sequentially: geolocation,
// then weather, then the finance fetches date by date, then compilation.
// Only two orderings are actual data dependencies — weather needs the
// geolocated coordinates, and compilation needs every fetch result — so
// the finance fetches could be parallelized without changing the contract.
package finsightpipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/finsightdev/finsight/internal/finsight/finsightreport"
	"github.com/finsightdev/finsight/internal/finsight/finsightsource"
	"github.com/finsightdev/finsight/internal/standard/xtime"
)

// Pipeline builds insight reports by running the fetch steps in order.
type Pipeline struct {
	logger  *slog.Logger
	fetcher *finsightsource.Fetcher
	now     func() time.Time
}

// PipelineOption is a functional option for configuring the Pipeline.
type PipelineOption func(*Pipeline)

// PipelineWithNowFunc sets the clock used for the report timestamp.
func PipelineWithNowFunc(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		p.now = now
	}
}

// NewPipeline creates a new Pipeline with the given options.
func NewPipeline(logger *slog.Logger, fetcher *finsightsource.Fetcher, options ...PipelineOption) *Pipeline {
	p := &Pipeline{
		logger:  logger,
		fetcher: fetcher,
		now:     time.Now,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Snapshot builds a single-date report.
// Every step degrades to unavailable values instead of failing, so a total
// outage of all sources still yields a report.
func (p *Pipeline) Snapshot(ctx context.Context, date xtime.Date) finsightreport.Report {
	p.logger.Debug("building snapshot report", "date", date.String())
	location := p.fetcher.Locate(ctx)
	weather := p.fetcher.FetchWeather(ctx, location)
	snapshot := p.fetchDateSnapshot(ctx, date)
	return finsightreport.Compile(p.now(), location, weather, snapshot)
}

// Compare builds a two-date comparison report with percentage changes from
// the first date to the second.
func (p *Pipeline) Compare(ctx context.Context, from xtime.Date, to xtime.Date) finsightreport.Report {
	p.logger.Debug("building comparison report", "from", from.String(), "to", to.String())
	location := p.fetcher.Locate(ctx)
	weather := p.fetcher.FetchWeather(ctx, location)
	// Both rate fetches, then both gold fetches.
	fromRates := p.fetcher.FetchRates(ctx, from)
	toRates := p.fetcher.FetchRates(ctx, to)
	fromGold := p.fetcher.FetchGold(ctx, from)
	toGold := p.fetcher.FetchGold(ctx, to)
	return finsightreport.Compile(
		p.now(),
		location,
		weather,
		finsightreport.DateSnapshot{Date: from, Rates: fromRates, Gold: fromGold},
		finsightreport.DateSnapshot{Date: to, Rates: toRates, Gold: toGold},
	)
}

// *** PRIVATE ***

func (p *Pipeline) fetchDateSnapshot(ctx context.Context, date xtime.Date) finsightreport.DateSnapshot {
	return finsightreport.DateSnapshot{
		Date:  date,
		Rates: p.fetcher.FetchRates(ctx, date),
		Gold:  p.fetcher.FetchGold(ctx, date),
	}
}
