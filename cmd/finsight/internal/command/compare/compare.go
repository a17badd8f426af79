// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package compare implements the "compare" command.
package compare

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
	// fromFlagName is the flag name for the start date.
	fromFlagName = "from"
	// toFlagName is the flag name for the end date.
	toFlagName = "to"
	// formatFlagName is the flag name for the output format.
	formatFlagName = "format"
	// outputFlagName is the flag name for the output file path.
	outputFlagName = "output"
)

// NewCommand returns a new compare command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Build a financial insight report comparing two dates",
		Long: `Build a financial insight report comparing two dates.

Fetches USD exchange rates (EUR, GBP, JPY) and the gold price for both dates,
plus the current location and temperature, and prints a report with the
percent change of each metric between the two dates. Sources that fail are
reported as unavailable.

Without --from/--to, prompts for both dates on stdin. A date that does not
parse as YYYY-MM-DD is replaced with the current date.`,
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
	// From is the start date (YYYY-MM-DD).
	From string
	// To is the end date (YYYY-MM-DD).
	To string
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
	flagSet.StringVar(&f.From, fromFlagName, "", "Start date (YYYY-MM-DD, prompts if omitted)")
	flagSet.StringVar(&f.To, toFlagName, "", "End date (YYYY-MM-DD, prompts if omitted)")
	flagSet.StringVar(&f.Format, formatFlagName, "text", "Output format (text, table, json)")
	flagSet.StringVar(&f.Output, outputFlagName, "", "Write the report to this file instead of stdout")
}

func run(ctx context.Context, container appext.Container, flags *flags) error {
	// Validate: either both --from/--to are set, or neither.
	if (flags.From == "") != (flags.To == "") {
		return appcmd.NewInvalidArgumentError("--from and --to must both be specified or both be omitted")
	}
	format, err := cliio.ParseFormat(flags.Format)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	pipeline, err := finsightcmd.NewPipeline(container)
	if err != nil {
		return err
	}
	fromInput := flags.From
	toInput := flags.To
	if fromInput == "" {
		// One reader for both prompts so buffered input is not lost.
		reader := bufio.NewReader(container.Stdin())
		fromInput, err = finsightcmd.PromptLine(container.Stdout(), reader, "Enter start date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		toInput, err = finsightcmd.PromptLine(container.Stdout(), reader, "Enter end date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
	}
	from := finsightcmd.ResolveDate(container, fromInput)
	to := finsightcmd.ResolveDate(container, toInput)
	report := pipeline.Compare(ctx, from, to)
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
