// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package finsightcmd provides shared wiring for finsight commands that
// build reports (reading config, constructing source clients, prompting
// for dates).
package finsightcmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"buf.build/go/app/appext"
	"github.com/finsightdev/finsight/internal/finsight/finsightconfig"
	"github.com/finsightdev/finsight/internal/finsight/finsightpipeline"
	"github.com/finsightdev/finsight/internal/finsight/finsightsource"
	"github.com/finsightdev/finsight/internal/pkg/currencyapi"
	"github.com/finsightdev/finsight/internal/pkg/currencyraw"
	"github.com/finsightdev/finsight/internal/pkg/ipapi"
	"github.com/finsightdev/finsight/internal/pkg/openmeteo"
	"github.com/finsightdev/finsight/internal/standard/xos"
	"github.com/finsightdev/finsight/internal/standard/xtime"
)

// NewPipeline constructs a report Pipeline from the appext container by
// reading the config file (or defaults when it is missing) and creating
// the source clients. All clients share one HTTP client carrying the
// configured per-attempt timeout.
func NewPipeline(container appext.Container) (*finsightpipeline.Pipeline, error) {
	config, err := finsightconfig.ReadConfig(container.ConfigDirPath())
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Timeout: config.Timeout}
	primaryOptions := []currencyapi.ClientOption{currencyapi.ClientWithHTTPClient(httpClient)}
	if config.CurrencyBaseURL != "" {
		primaryOptions = append(primaryOptions, currencyapi.ClientWithBaseURL(config.CurrencyBaseURL))
	}
	mirrorOptions := []currencyraw.ClientOption{currencyraw.ClientWithHTTPClient(httpClient)}
	if config.CurrencyMirrorBaseURL != "" {
		mirrorOptions = append(mirrorOptions, currencyraw.ClientWithBaseURL(config.CurrencyMirrorBaseURL))
	}
	geolocationOptions := []ipapi.ClientOption{ipapi.ClientWithHTTPClient(httpClient)}
	if config.GeolocationBaseURL != "" {
		geolocationOptions = append(geolocationOptions, ipapi.ClientWithBaseURL(config.GeolocationBaseURL))
	}
	weatherOptions := []openmeteo.ClientOption{openmeteo.ClientWithHTTPClient(httpClient)}
	if config.WeatherBaseURL != "" {
		weatherOptions = append(weatherOptions, openmeteo.ClientWithBaseURL(config.WeatherBaseURL))
	}
	logger := container.Logger()
	fetcher := finsightsource.NewFetcher(
		logger,
		currencyapi.NewClient(primaryOptions...),
		currencyraw.NewClient(mirrorOptions...),
		ipapi.NewClient(geolocationOptions...),
		openmeteo.NewClient(weatherOptions...),
	)
	return finsightpipeline.NewPipeline(logger, fetcher), nil
}

// PromptLine writes the prompt and reads one line of input.
// Callers that prompt more than once must reuse the same reader so
// buffered input is not lost between prompts.
func PromptLine(writer io.Writer, reader *bufio.Reader, prompt string) (string, error) {
	if _, err := io.WriteString(writer, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ResolveDate parses a user-supplied date string, substituting the current
// date with a warning when it does not parse. The fetch layer only ever
// sees valid dates.
func ResolveDate(container appext.Container, value string) xtime.Date {
	date, err := xtime.ParseDate(strings.TrimSpace(value))
	if err != nil {
		container.Logger().Warn("invalid date, using today", "value", value)
		return xtime.TimeToDate(time.Now())
	}
	return date
}

// WriteOutput calls render with the file at outputPath (with ~ expansion),
// or with the container's stdout when outputPath is empty.
func WriteOutput(container appext.Container, outputPath string, render func(io.Writer) error) (retErr error) {
	if outputPath == "" {
		return render(container.Stdout())
	}
	expandedPath, err := xos.ExpandHome(outputPath)
	if err != nil {
		return err
	}
	file, err := os.Create(expandedPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		retErr = errors.Join(retErr, file.Close())
	}()
	return render(file)
}
