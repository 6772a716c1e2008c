package cmdimport_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	cmdimport "incident-stats/command/import"
	ccsv "incident-stats/connectors/csv"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_WritesCanonicalForm(t *testing.T) {
	input := writeInput(t, "Ticket_ID,Severity,Cost_SEK,Resolution_Minutes,Week_Number,Site\n"+
		"INC-1,CRITICAL,\"1 234,50\",90,10,Stockholm\n"+
		"INC-2,bogus,abc,soon,11, Malmo \n")
	out := filepath.Join(t.TempDir(), "out")

	res, err := cmdimport.Run(context.Background(), input, out)
	gt.NoError(t, err)
	gt.Equal(t, res.Rows, 2)
	// cost, resolution minutes and severity of INC-2
	gt.Equal(t, res.Degradations, 3)
	gt.Equal(t, res.Path, filepath.Join(out, ccsv.NormalizedFile))

	b, err := os.ReadFile(res.Path)
	gt.NoError(t, err)
	gt.Equal(t, string(b), "ticket_id,severity,cost_sek,resolution_minutes,affected_users,impact_score,week_number,device_hostname,site,category,reported_by,in_last_weeks_warnings\n"+
		"INC-1,critical,1234.5,90,0,0,10,,Stockholm,,,\n"+
		"INC-2,,,,0,0,11,,Malmo,,,\n")
}

func TestRun_OutputIsReadableAgain(t *testing.T) {
	input := writeInput(t, "ticket_id,severity,cost_sek,week_number\nINC-1,low,\"12 000\",3\n")
	out := t.TempDir()

	res, err := cmdimport.Run(context.Background(), input, out)
	gt.NoError(t, err)

	again, err := cmdimport.Run(context.Background(), res.Path, t.TempDir())
	gt.NoError(t, err)
	gt.Equal(t, again.Degradations, 0)

	first, err := os.ReadFile(res.Path)
	gt.NoError(t, err)
	second, err := os.ReadFile(again.Path)
	gt.NoError(t, err)
	gt.Equal(t, string(second), string(first))
}

func TestRun_InvalidWeekAborts(t *testing.T) {
	input := writeInput(t, "ticket_id,week_number\nINC-1,10\nINC-2,week ten\n")
	out := filepath.Join(t.TempDir(), "out")

	_, err := cmdimport.Run(context.Background(), input, out)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, cmdimport.ErrTagInvalidRows))

	_, statErr := os.Stat(filepath.Join(out, ccsv.NormalizedFile))
	gt.True(t, os.IsNotExist(statErr))
}
