package retrieve

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
)

var runnerPortal = domain.PortalProfile{
	Name:       "test",
	FieldOrder: []string{"ws", "wd", "t1"},
}

// recordingExporter captures artifact writes so tests can check which
// instruments produced which files.
type recordingExporter struct {
	csvIDs     []int
	csvHeaders [][]string
	warningIDs []int
	glossaries int
}

func (e *recordingExporter) WriteCSV(_ domain.PortalProfile, instrumentID int, _ domain.TimeRange, headers []string, _ domain.Dataset, _ string) (string, error) {
	e.csvIDs = append(e.csvIDs, instrumentID)
	e.csvHeaders = append(e.csvHeaders, headers)
	return "", nil
}

func (e *recordingExporter) WriteWarning(_ domain.PortalProfile, instrumentID int) (string, error) {
	e.warningIDs = append(e.warningIDs, instrumentID)
	return "", nil
}

func (e *recordingExporter) WriteGlossary(domain.PortalProfile) (string, error) {
	e.glossaries++
	return "", nil
}

func dataResponse(values ...float64) scriptedResponse {
	obs := make([]domain.RawObservation, 0, len(values))
	for i, v := range values {
		obs = append(obs, domain.RawObservation{
			Time:         fmt.Sprintf("2024-01-01T06:%02d:00Z", i),
			Test:         "false",
			Measurements: map[string]any{"t1": v},
		})
	}
	return scriptedResponse{obs: obs}
}

func TestRunner_WritesWarningAndContinues(t *testing.T) {
	// The middle instrument has nothing in range; it gets a warning file
	// and the run proceeds to the remaining instrument.
	fetcher := &scriptedFetcher{
		responses: []scriptedResponse{
			dataResponse(25.3, 25.4),
			{obs: nil},
			dataResponse(26.0),
		},
	}
	exporter := &recordingExporter{}
	runner := NewRunner(newTestRetriever(fetcher), exporter, discardLogger())

	err := runner.Run(context.Background(), RunRequest{
		Portal:        runnerPortal,
		InstrumentIDs: []int{7, 8, 9},
		Range:         retrieveRange,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{7, 9}, exporter.csvIDs)
	assert.Equal(t, []int{8}, exporter.warningIDs)
	require.Len(t, exporter.csvHeaders, 2)
	assert.Equal(t, []string{"time", "t1"}, exporter.csvHeaders[0])
	assert.Equal(t, 1, exporter.glossaries, "glossary written once after the loop")
	assert.Len(t, fetcher.calls, 3, "every instrument was fetched")
}

func TestRunner_AbortsOnRetrievalError(t *testing.T) {
	fetcher := &scriptedFetcher{
		responses: []scriptedResponse{
			{err: fmt.Errorf("instrument 7: %w", domain.ErrAccessDenied)},
		},
	}
	exporter := &recordingExporter{}
	runner := NewRunner(newTestRetriever(fetcher), exporter, discardLogger())

	err := runner.Run(context.Background(), RunRequest{
		Portal:        runnerPortal,
		InstrumentIDs: []int{7, 8},
		Range:         retrieveRange,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	assert.Len(t, fetcher.calls, 1, "remaining instruments are not attempted")
	assert.Empty(t, exporter.csvIDs)
	assert.Empty(t, exporter.warningIDs)
	assert.Zero(t, exporter.glossaries)
}

func TestRunner_AbortsOnColumnError(t *testing.T) {
	fetcher := &scriptedFetcher{
		responses: []scriptedResponse{dataResponse(25.3)},
	}
	exporter := &recordingExporter{}
	runner := NewRunner(newTestRetriever(fetcher), exporter, discardLogger())

	err := runner.Run(context.Background(), RunRequest{
		Portal:        runnerPortal,
		InstrumentIDs: []int{7, 8},
		Range:         retrieveRange,
		Columns:       []string{"nope"},
	})
	require.Error(t, err)

	var colErr *domain.ColumnError
	assert.ErrorAs(t, err, &colErr)
	assert.Empty(t, exporter.csvIDs)
	assert.Empty(t, exporter.warningIDs)
	assert.Zero(t, exporter.glossaries)
}
