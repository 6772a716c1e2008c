package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/m-mizutani/gt"

	"incident-stats/command/analyze"
	"incident-stats/command/web"
	ccsv "incident-stats/connectors/csv"
)

func get(t *testing.T, dataDir, uiDir, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := web.NewServer(dataDir, uiDir)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSitesAsJSON(t *testing.T) {
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, ccsv.SiteSummaryFile),
		[]byte("site,total_incidents\nMalmo,1\nStockholm,2\n"), 0o644))

	rec := get(t, dir, "", "/api/sites")
	gt.Equal(t, rec.Code, http.StatusOK)

	var got []map[string]string
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	want := []map[string]string{
		{"site": "Malmo", "total_incidents": "1"},
		{"site": "Stockholm", "total_incidents": "2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected body (-want +got):\n%s", diff)
	}
}

func TestMissingFileIs404(t *testing.T) {
	for _, path := range []string{"/api/devices", "/api/weekly", "/api/severity", "/api/summary", "/api/report"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, t.TempDir(), "", path)
			gt.Equal(t, rec.Code, http.StatusNotFound)
			gt.S(t, rec.Body.String()).Contains("file not found")
		})
	}
}

func TestReportAsText(t *testing.T) {
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, analyze.ReportFile), []byte("Org\nReport\n"), 0o644))

	rec := get(t, dir, "", "/api/report")
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.S(t, rec.Header().Get("Content-Type")).Contains("text/plain")
	gt.Equal(t, rec.Body.String(), "Org\nReport\n")
}

func TestSPAFallback(t *testing.T) {
	ui := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(ui, "index.html"), []byte("<html>dashboard</html>"), 0o644))

	rec := get(t, t.TempDir(), ui, "/devices/SW-DC-01")
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.S(t, rec.Body.String()).Contains("dashboard")

	rec = get(t, t.TempDir(), ui, "/api/unknown")
	gt.Equal(t, rec.Code, http.StatusNotFound)
}

func TestBlankLinesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, ccsv.IncidentSummaryFile),
		[]byte("Metric,Value\ntotal_incidents,3\n\nhigh_severity_count,1\n"), 0o644))

	rec := get(t, dir, "", "/api/summary")
	gt.Equal(t, rec.Code, http.StatusOK)

	var got []map[string]string
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	want := []map[string]string{
		{"Metric": "total_incidents", "Value": "3"},
		{"Metric": "high_severity_count", "Value": "1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected body (-want +got):\n%s", diff)
	}
}
