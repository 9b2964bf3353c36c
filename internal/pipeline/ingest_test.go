package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go-survival-pipeline/internal/model"
	"go-survival-pipeline/internal/survival"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectRecords(t *testing.T, source model.Source) (survival.Table, []error) {
	t.Helper()

	out := make(chan survival.Record, 100)
	errCh := make(chan error, 100)

	go func() {
		IngestSource(context.Background(), source, out, errCh)
		close(out)
		close(errCh)
	}()

	var rows survival.Table
	for rec := range out {
		rows = append(rows, rec)
	}
	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return rows, errs
}

func TestIngestCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obs.csv")
	content := "id,time,hazard,cohort\np1,1,0.1,a\np1,2,0.25,a\np2,1,0.5,b\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, errs := collectRecords(t, model.Source{Type: "csv", URL: path})
	require.Empty(t, errs)
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, "p1", first["id"])
	assert.Equal(t, 1, first["time"])
	assert.Equal(t, 0.1, first["hazard"])
	assert.Equal(t, "a", first["cohort"])
}

func TestIngestJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obs.json")
	content := `[{"id":"p1","time":1,"hazard":0.1},{"id":"p1","time":2,"hazard":0.2}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, errs := collectRecords(t, model.Source{Type: "json", URL: path})
	require.Empty(t, errs)
	require.Len(t, rows, 2)

	// Whole JSON numbers arrive as int, fractional ones as float64.
	assert.Equal(t, 1, rows[0]["time"])
	assert.Equal(t, 0.1, rows[0]["hazard"])
}

func TestIngestUnknownSourceType(t *testing.T) {
	rows, errs := collectRecords(t, model.Source{Type: "parquet", URL: "whatever"})
	assert.Empty(t, rows)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "unknown source type")
}

func TestIngestMissingFile(t *testing.T) {
	rows, errs := collectRecords(t, model.Source{Type: "csv", URL: filepath.Join(t.TempDir(), "nope.csv")})
	assert.Empty(t, rows)
	require.Len(t, errs, 1)
}
