package cmdimport

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"incident-stats/connectors/config"
	ccsv "incident-stats/connectors/csv"
	"incident-stats/domain/incident"
)

// ErrTagInvalidRows marks an import aborted because of rows without a usable week.
var ErrTagInvalidRows = goerr.NewTag("invalid_rows")

// Result summarizes an import run.
type Result struct {
	Rows         int
	Degradations int
	Path         string
}

// Command returns the import sub-command, which writes the canonical form
// of an export so later runs and other tools read clean values.
func Command(configPath *string) *cli.Command {
	var overrides config.Overrides
	return &cli.Command{
		Name:  "import",
		Usage: "Normalize an incident export into " + ccsv.NormalizedFile,
		Flags: overrides.Flags(false),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Resolve(*configPath, overrides)
			if err != nil {
				return err
			}
			_, err = Run(ctx, cfg.Data.Input, cfg.Data.OutputDir)
			return err
		},
	}
}

// Run normalizes input and writes outDir/incidents_normalized.csv.
// Fields that fail to parse are written blank; rows without a valid week
// abort the import before anything is written.
func Run(ctx context.Context, input, outDir string) (*Result, error) {
	logger := ctxlog.From(ctx).With("run_id", uuid.NewString())
	logger.Info("import.start", "input", input, "out", outDir)

	rows, err := ccsv.ReadRows(input)
	if err != nil {
		return nil, err
	}

	records, rowErrs := incident.NormalizeAll(rows)
	if len(rowErrs) > 0 {
		for _, e := range rowErrs {
			logger.Error("import.row.invalid", "error", e)
		}
		return nil, goerr.New("input has rows without a valid week number",
			goerr.T(ErrTagInvalidRows),
			goerr.V("invalid_rows", len(rowErrs)),
			goerr.V("input", input))
	}

	// rows and records line up once every row has a valid week
	degraded := 0
	for i, row := range rows {
		if n := incident.Degradations(row, records[i]); n > 0 {
			logger.Debug("import.row.degraded", "line", row.Line, "fields", n)
			degraded += n
		}
	}

	data, err := ccsv.Encode(incident.Columns, ccsv.IncidentRows(records))
	if err != nil {
		return nil, err
	}
	if err := ccsv.WriteAll(outDir, []ccsv.File{{Name: ccsv.NormalizedFile, Data: data}}); err != nil {
		return nil, err
	}

	res := &Result{Rows: len(records), Degradations: degraded, Path: filepath.Join(outDir, ccsv.NormalizedFile)}
	logger.Info("import.done", "rows", res.Rows, "degraded_fields", res.Degradations, "path", res.Path)
	return res, nil
}
