package export

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/observability"
)

func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := NewWriter(dir,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetricsForTesting(),
	)
	require.NoError(t, err)
	return w, dir
}

func exportRange() domain.TimeRange {
	return domain.TimeRange{
		Start: time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 2, 5, 45, 59, 0, time.UTC),
	}
}

func TestWriteCSV(t *testing.T) {
	w, dir := newTestWriter(t)

	var ds domain.Dataset
	ds.Append("2024-01-01T06:12:00Z", "false", map[string]any{
		"t1": 25.3, "wd": float64(90), "wd_compass_dir": "E",
	})
	ds.Append("2024-01-01T06:27:00Z", "true", map[string]any{
		"t1": 25.4,
	})

	portal, ok := domain.LookupPortal("Barbados")
	require.True(t, ok)

	headers := []string{"time", "wd", "test", "wd_compass_dir", "t1", "test"}
	path, err := w.WriteCSV(portal, 7, exportRange(), headers, ds, "-999")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Barbados_ID7_2024-01-01_2024-01-02.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, headers, rows[0])
	assert.Equal(t, []string{"2024-01-01T06:12:00Z", "90", "false", "E", "25.3", "false"}, rows[1])

	// The second observation has no wind fields; the null marker fills
	// them.
	assert.Equal(t, []string{"2024-01-01T06:27:00Z", "-999", "true", "-999", "25.4", "true"}, rows[2])
}

func TestWriteWarning(t *testing.T) {
	w, dir := newTestWriter(t)

	portal, ok := domain.LookupPortal("Trinidad")
	require.True(t, ok)

	path, err := w.WriteWarning(portal, 42)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Trinidad_instrumentID_42_[WARNING].txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "No data was found for the specified time frame.\nCheck the CHORDS portal to verify.", string(content))
}

func TestWriteGlossary(t *testing.T) {
	w, dir := newTestWriter(t)

	portal, ok := domain.LookupPortal("Barbados")
	require.True(t, ok)
	require.NotEmpty(t, portal.Glossary)

	path, err := w.WriteGlossary(portal)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "README.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Units of measurement guide")
	assert.Contains(t, string(content), "(wd)")
	assert.Contains(t, string(content), "Wind Direction")
}

func TestWriteGlossary_SkipsPortalsWithoutOne(t *testing.T) {
	w, dir := newTestWriter(t)

	portal, ok := domain.LookupPortal("Kenya")
	require.True(t, ok)
	require.Empty(t, portal.Glossary)

	path, err := w.WriteGlossary(portal)
	require.NoError(t, err)
	assert.Empty(t, path)

	_, statErr := os.Stat(filepath.Join(dir, "README.txt"))
	assert.True(t, os.IsNotExist(statErr))
}
