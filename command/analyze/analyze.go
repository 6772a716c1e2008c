package analyze

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"incident-stats/connectors/config"
	ccsv "incident-stats/connectors/csv"
	"incident-stats/domain/incident"
	"incident-stats/domain/ranking"
	"incident-stats/domain/report"
	"incident-stats/domain/rollup"
)

// ReportFile is the name of the narrative report in the output directory.
const ReportFile = "incident_report.txt"

// ErrTagInvalidRows marks a run aborted because some rows could not be placed.
var ErrTagInvalidRows = goerr.NewTag("invalid_rows")

// Options drive one analyze run.
type Options struct {
	Input     string
	OutputDir string
	Header    report.Header
	Print     io.Writer // when set, the report is also written here
}

// Command returns the analyze sub-command. configPath points at the root
// --config flag value.
func Command(configPath *string) *cli.Command {
	var (
		overrides   config.Overrides
		printReport bool
	)
	flags := append(overrides.Flags(true), &cli.BoolFlag{
		Name:        "print",
		Usage:       "Also print the report to stdout",
		Destination: &printReport,
	})

	return &cli.Command{
		Name:  "analyze",
		Usage: "Aggregate an incident export into summary tables and a report",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Resolve(*configPath, overrides)
			if err != nil {
				return err
			}
			opts := OptionsFrom(cfg)
			if printReport {
				opts.Print = os.Stdout
			}
			return Run(ctx, opts)
		},
	}
}

// OptionsFrom maps a resolved configuration to run options.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Input:     cfg.Data.Input,
		OutputDir: cfg.Data.OutputDir,
		Header: report.Header{
			Organization: cfg.Report.Organization,
			Title:        cfg.Report.Title,
			Currency:     cfg.Report.Currency,
			ISOYear:      cfg.Report.ISOYear,
		},
	}
}

// Run reads the export, aggregates it and writes every output. Nothing is
// written unless all rows are valid.
func Run(ctx context.Context, opts Options) error {
	logger := ctxlog.From(ctx).With("run_id", uuid.NewString())
	logger.Info("analyze.start", "input", opts.Input, "out", opts.OutputDir)

	rows, err := ccsv.ReadRows(opts.Input)
	if err != nil {
		return err
	}

	records, err := NormalizeRows(logger, rows)
	if err != nil {
		return err
	}

	files, text, err := Outputs(records, opts.Header)
	if err != nil {
		return err
	}
	if err := ccsv.WriteAll(opts.OutputDir, files); err != nil {
		return err
	}
	if opts.Print != nil {
		if _, err := io.WriteString(opts.Print, text); err != nil {
			return goerr.Wrap(err, "failed to print report")
		}
	}

	logger.Info("analyze.done", "records", len(records), "files", len(files), "out", opts.OutputDir)
	return nil
}

// NormalizeRows normalizes rows, logging every invalid one. It fails when
// any row is invalid so that no partial output is produced.
func NormalizeRows(logger *slog.Logger, rows []incident.RawRow) ([]incident.Record, error) {
	records, rowErrs := incident.NormalizeAll(rows)
	if len(rowErrs) == 0 {
		return records, nil
	}
	for _, e := range rowErrs {
		logger.Error("analyze.row.invalid", "error", e)
	}
	first := goerr.Values(rowErrs[0])
	return nil, goerr.New("input has rows without a valid week number",
		goerr.T(ErrTagInvalidRows),
		goerr.V("invalid_rows", len(rowErrs)),
		goerr.V("first_line", first["line"]),
		goerr.V("field", incident.ColWeekNumber))
}

// Outputs computes every output file in memory and returns the report text.
// The result depends only on records and header.
func Outputs(records []incident.Record, header report.Header) ([]ccsv.File, string, error) {
	set := rollup.Build(records)
	ranks := ranking.Rank(records)

	tables := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{ccsv.SiteSummaryFile, ccsv.SiteHeader, ccsv.SiteRows(set.Sites)},
		{ccsv.DeviceSummaryFile, ccsv.DeviceHeader, ccsv.DeviceRows(set.Devices)},
		{ccsv.WeeklyCostsFile, ccsv.WeeklyHeader, ccsv.WeeklyRows(set.Weeks)},
		{ccsv.SeveritySummaryFile, ccsv.SeverityHeader, ccsv.SeverityRows(set.Severities)},
		{ccsv.IncidentSummaryFile, ccsv.OverviewHeader, ccsv.OverviewRows(set.Overview)},
	}

	files := make([]ccsv.File, 0, len(tables)+1)
	for _, t := range tables {
		data, err := ccsv.Encode(t.header, t.rows)
		if err != nil {
			return nil, "", goerr.Wrap(err, "failed to encode table", goerr.V("file", t.name))
		}
		files = append(files, ccsv.File{Name: t.name, Data: data})
	}

	text := report.Render(report.Input{
		Header:  header,
		Total:   len(records),
		Rollups: set,
		Ranking: ranks,
	})
	files = append(files, ccsv.File{Name: ReportFile, Data: []byte(text)})
	return files, text, nil
}
