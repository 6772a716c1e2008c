package web

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"incident-stats/command/analyze"
	"incident-stats/connectors/config"
	ccsv "incident-stats/connectors/csv"
)

// Command returns the web sub-command.
//
// Endpoints:
//
//	GET /api/sites     -> <data>/site_summary.csv
//	GET /api/devices   -> <data>/device_summary.csv
//	GET /api/weekly    -> <data>/weekly_costs.csv
//	GET /api/severity  -> <data>/severity_summary.csv
//	GET /api/summary   -> <data>/incident_summary.csv
//	GET /api/report    -> <data>/incident_report.txt (text/plain)
//
// When --ui points to a built Vite app (index.html exists), static files are served at / and
// unknown routes fall back to index.html for SPA routing.
func Command(configPath *string) *cli.Command {
	var addr, dataDir, uiDir string
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the analyze outputs as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "http listen address (host:port)",
				Value:       ":8080",
				Sources:     cli.EnvVars("INCIDENT_STATS_ADDR"),
				Destination: &addr,
			},
			&cli.StringFlag{
				Name:        "data",
				Usage:       "directory containing analyze outputs (defaults to data.output_dir)",
				Destination: &dataDir,
			},
			&cli.StringFlag{
				Name:        "ui",
				Usage:       "directory containing built UI (Vite dist)",
				Value:       "./ui/dist",
				Destination: &uiDir,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if dataDir == "" {
				cfg, err := config.Resolve(*configPath, config.Overrides{})
				if err != nil {
					return err
				}
				dataDir = cfg.Data.OutputDir
			}
			return Serve(ctx, addr, NewServer(dataDir, uiDir))
		},
	}
}

// NewServer builds the Echo instance serving the files under dataDir.
func NewServer(dataDir, uiDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Helper to register a GET endpoint serving a specific CSV file
	serveCSV := func(route string, filename string) {
		e.GET(route, func(c echo.Context) error {
			path := filepath.Join(dataDir, filename)
			rows, err := readCSV(path)
			if err != nil {
				return fileError(c, path, err, "failed to read CSV")
			}
			return c.JSON(http.StatusOK, rows)
		})
	}

	serveCSV("/api/sites", ccsv.SiteSummaryFile)
	serveCSV("/api/devices", ccsv.DeviceSummaryFile)
	serveCSV("/api/weekly", ccsv.WeeklyCostsFile)
	serveCSV("/api/severity", ccsv.SeveritySummaryFile)
	serveCSV("/api/summary", ccsv.IncidentSummaryFile)

	e.GET("/api/report", func(c echo.Context) error {
		path := filepath.Join(dataDir, analyze.ReportFile)
		b, err := os.ReadFile(path)
		if err != nil {
			return fileError(c, path, err, "failed to read report")
		}
		return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, b)
	})

	// Static UI (optional)
	indexPath := filepath.Join(uiDir, "index.html")
	if fi, err := os.Stat(indexPath); err == nil && !fi.IsDir() {
		e.Static("/", uiDir)
		e.GET("/", func(c echo.Context) error { return c.File(indexPath) })

		// non-API 404s fall back to the SPA index
		e.HTTPErrorHandler = func(err error, c echo.Context) {
			if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
				if !strings.HasPrefix(c.Request().URL.Path, "/api") {
					_ = c.File(indexPath)
					return
				}
			}
			e.DefaultHTTPErrorHandler(err, c)
		}
	}

	return e
}

// Serve runs e on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, e *echo.Echo) error {
	logger := ctxlog.From(ctx)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("web.start", "addr", addr)
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return goerr.Wrap(err, "web server stopped", goerr.V("addr", addr))
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("web.shutdown", "addr", addr)
		if err := e.Shutdown(shutdownCtx); err != nil {
			return goerr.Wrap(err, "failed to shut down web server")
		}
		return nil
	}
}

func fileError(c echo.Context, path string, err error, message string) error {
	if errors.Is(err, os.ErrNotExist) {
		return c.JSON(http.StatusNotFound, map[string]any{
			"error":   "file not found",
			"path":    path,
			"message": "run analyze first",
		})
	}
	ctxlog.From(c.Request().Context()).Error("web.read.failed", "path", path, "error", err)
	return c.JSON(http.StatusInternalServerError, map[string]any{
		"error":   err.Error(),
		"path":    path,
		"message": message,
	})
}

// readCSV loads a CSV file and returns a slice of objects keyed by headers.
// Values are kept as strings to avoid lossy type coercion.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []map[string]string{}, nil
	}

	headers := records[0]
	res := make([]map[string]string, 0, len(records)-1)
	// encoding/csv drops blank lines, so every record here has at least one field
	for _, row := range records[1:] {
		obj := make(map[string]string, len(headers))
		for j := 0; j < len(headers) && j < len(row); j++ {
			obj[headers[j]] = row[j]
		}
		res = append(res, obj)
	}
	return res, nil
}
