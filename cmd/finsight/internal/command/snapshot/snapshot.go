// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package snapshot implements the "snapshot" command.
package snapshot

import (
	"bufio"
	"context"
	"io"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/finsightdev/finsight/cmd/finsight/internal/finsightcmd"
	"github.com/finsightdev/finsight/internal/finsight/finsightreport"
	"github.com/finsightdev/finsight/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

const (
	// dateFlagName is the flag name for the report date.
	dateFlagName = "date"
	// formatFlagName is the flag name for the output format.
	formatFlagName = "format"
	// outputFlagName is the flag name for the output file path.
	outputFlagName = "output"
)

// NewCommand returns a new snapshot command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Build a financial insight report for a single date",
		Long: `Build a financial insight report for a single date.

Fetches USD exchange rates (EUR, GBP, JPY) and the gold price for the given
date, plus the current location and temperature, and prints a report. Sources
that fail are reported as unavailable.

Without --date, prompts for the date on stdin. A date that does not parse as
YYYY-MM-DD is replaced with the current date.`,
		Args: appcmd.NoArgs,
		Run: builder.NewRunFunc(
			func(ctx context.Context, container appext.Container) error {
				return run(ctx, container, flags)
			},
		),
		BindFlags: flags.Bind,
	}
}

type flags struct {
	// Date is the report date (YYYY-MM-DD).
	Date string
	// Format is the output format (text, table, json).
	Format string
	// Output is the output file path, empty for stdout.
	Output string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.Date, dateFlagName, "", "Report date (YYYY-MM-DD, prompts if omitted)")
	flagSet.StringVar(&f.Format, formatFlagName, "text", "Output format (text, table, json)")
	flagSet.StringVar(&f.Output, outputFlagName, "", "Write the report to this file instead of stdout")
}

func run(ctx context.Context, container appext.Container, flags *flags) error {
	format, err := cliio.ParseFormat(flags.Format)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	pipeline, err := finsightcmd.NewPipeline(container)
	if err != nil {
		return err
	}
	dateInput := flags.Date
	if dateInput == "" {
		reader := bufio.NewReader(container.Stdin())
		dateInput, err = finsightcmd.PromptLine(container.Stdout(), reader, "Enter report date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
	}
	date := finsightcmd.ResolveDate(container, dateInput)
	report := pipeline.Snapshot(ctx, date)
	return finsightcmd.WriteOutput(container, flags.Output, func(writer io.Writer) error {
		return renderReport(writer, report, format)
	})
}

func renderReport(writer io.Writer, report finsightreport.Report, format cliio.Format) error {
	switch format {
	case cliio.FormatText:
		return finsightreport.RenderText(writer, report)
	case cliio.FormatTable:
		return finsightreport.RenderTable(writer, report)
	case cliio.FormatJSON:
		return finsightreport.RenderJSON(writer, report)
	default:
		return nil
	}
}
