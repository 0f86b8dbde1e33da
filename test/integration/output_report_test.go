package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carescan/proforma/internal/output"
	"github.com/carescan/proforma/internal/store"
)

func TestOutputGeneration(t *testing.T) {
	_, result := runWorkbook(t)
	dir := t.TempDir()

	for _, format := range []string{"console", "csv", "detailed-csv", "json", "yaml"} {
		files, err := output.GenerateReport(result, format, dir)
		require.NoError(t, err, format)
		require.Len(t, files, 1)
		data, err := os.ReadFile(files[0])
		require.NoError(t, err)
		assert.NotEmpty(t, data, format)
	}

	allDir := t.TempDir()
	files, err := output.GenerateReport(result, "all", allDir)
	require.NoError(t, err)
	assert.Len(t, files, 4)

	entries, err := os.ReadDir(allDir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestMonthlyCSVHasOneRowPerMonth(t *testing.T) {
	_, result := runWorkbook(t)
	data, err := output.CSVDetailedExporter{}.Format(result)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 61)
}

func TestArchiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, result := runWorkbook(t)

	s, err := store.Open(filepath.Join(t.TempDir(), "proforma.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveRun(ctx, workbookPath, result))
	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, result.Metadata.RunID, runs[0].ID)
	assert.True(t, result.Metrics.TotalNetIncome.Equal(runs[0].TotalNetIncome))

	loaded, err := s.GetRun(ctx, result.Metadata.RunID)
	require.NoError(t, err)
	require.Len(t, loaded.AnnualSummary, len(result.AnnualSummary))
	for i := range result.AnnualSummary {
		assert.True(t, result.AnnualSummary[i].NetIncome.Equal(loaded.AnnualSummary[i].NetIncome))
	}
}
