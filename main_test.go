package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestApp_AnalyzeThenImport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "incidents.csv")
	gt.NoError(t, os.WriteFile(input, []byte(
		"ticket_id,severity,cost_sek,week_number,device_hostname,site\n"+
			"INC-1,critical,100,3,FW-CORE-1,Lund\n"), 0o644))
	out := filepath.Join(dir, "out")
	cfg := filepath.Join(dir, "missing.yml")

	app := newApp()
	gt.NoError(t, app.Run(context.Background(), []string{
		"incident-stats", "--config", cfg, "--log-format", "json",
		"analyze", "--input", input, "--out", out, "--org", "Lund Campus",
	}))

	report, err := os.ReadFile(filepath.Join(out, "incident_report.txt"))
	gt.NoError(t, err)
	gt.S(t, string(report)).Contains("Lund Campus")

	app = newApp()
	gt.NoError(t, app.Run(context.Background(), []string{
		"incident-stats", "--config", cfg, "import", "-i", input, "-o", out,
	}))
	_, err = os.Stat(filepath.Join(out, "incidents_normalized.csv"))
	gt.NoError(t, err)
}

func TestApp_InvalidLogFormat(t *testing.T) {
	app := newApp()
	err := app.Run(context.Background(), []string{"incident-stats", "--log-format", "xml", "analyze"})
	gt.Error(t, err)
}
