package retrieve

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/observability"
)

// capFetcher reports the datapoint cap for any span longer than maxSpan and
// otherwise serves one observation per request, stamped with the span start.
// It records every span it served so tests can check coverage.
type capFetcher struct {
	maxSpan time.Duration
	served  []domain.TimeRange

	// failOnce, when set, trips the cap exactly once for the span starting
	// at failAt, then serves it normally. Used to force a mid-sweep
	// re-split after a successful prefix.
	failAt   time.Time
	failOnce bool
	failed   bool
}

func (f *capFetcher) Fetch(_ context.Context, _ int, rng domain.TimeRange) ([]domain.RawObservation, error) {
	if rng.End.Sub(rng.Start) > f.maxSpan {
		return nil, &domain.TooManyError{Detail: "too many datapoints"}
	}
	if f.failOnce && !f.failed && rng.Start.Equal(f.failAt) {
		f.failed = true
		return nil, &domain.TooManyError{Detail: "too many datapoints"}
	}

	f.served = append(f.served, rng)
	return []domain.RawObservation{
		{
			Time:         rng.Start.Format(time.RFC3339),
			Test:         "false",
			Measurements: map[string]any{"t1": 25.3},
		},
	}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRetriever(f Fetcher) *Retriever {
	return New(f, discardLogger(), observability.NewMetricsForTesting())
}

// assertTiles checks that the served spans cover the range exactly once:
// chronological, gap-free, overlap-free, first span starting at the range
// start and last span ending at the range end.
func assertTiles(t *testing.T, rng domain.TimeRange, served []domain.TimeRange) {
	t.Helper()
	require.NotEmpty(t, served)
	assert.Equal(t, rng.Start, served[0].Start)
	assert.Equal(t, rng.End, served[len(served)-1].End)
	for i := 1; i < len(served); i++ {
		assert.Equal(t, served[i-1].End, served[i].Start,
			"span %d must begin exactly where span %d ended", i, i-1)
	}
}

func TestSplitFetch_ConvergesWhenSweepSucceeds(t *testing.T) {
	rng := domain.TimeRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}

	// 8h total: halves (4h) and quarters (2h) trip the cap, eighths (1h)
	// succeed, so the splitter must converge exactly at 8 divisions.
	fetcher := &capFetcher{maxSpan: time.Hour}
	r := newTestRetriever(fetcher)

	ds, err := r.Retrieve(context.Background(), 1, Request{Range: rng, NullMarker: ""})
	require.NoError(t, err)

	require.Len(t, fetcher.served, 8)
	assert.Equal(t, 8, ds.Len(),
		"final record count equals the sum across sub-intervals of the final sweep")
	assertTiles(t, rng, fetcher.served)
}

func TestSplitFetch_PreservesPrefixAcrossResplit(t *testing.T) {
	rng := domain.TimeRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}

	// Halves trip the cap; at 4 divisions the first 2h interval succeeds,
	// then the interval starting at 02:00 trips the cap once, forcing a
	// re-split to 8 divisions mid-sweep.
	fetcher := &capFetcher{
		maxSpan:  2 * time.Hour,
		failAt:   time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC),
		failOnce: true,
	}
	r := newTestRetriever(fetcher)

	ds, err := r.Retrieve(context.Background(), 1, Request{Range: rng, NullMarker: ""})
	require.NoError(t, err)

	// One 2h span before the failure, then 1h spans from 02:00 onward:
	// nothing re-fetched, nothing lost.
	assertTiles(t, rng, fetcher.served)
	assert.Equal(t, 2*time.Hour, fetcher.served[0].End.Sub(fetcher.served[0].Start))
	for _, span := range fetcher.served[1:] {
		assert.Equal(t, time.Hour, span.End.Sub(span.Start))
	}
	assert.Equal(t, len(fetcher.served), ds.Len(),
		"records from every successful fetch of every sweep are retained")
}

func TestSplitFetch_ClampsStraddlingInterval(t *testing.T) {
	// 430 minutes. At 2 divisions the intervals are 215m with a boundary
	// at 03:35; at 4 divisions floor division gives 107m intervals whose
	// boundaries (01:47, 03:34, 05:21, ...) do not include 03:35. After
	// the first 215m interval succeeds and the second trips the cap,
	// covered progress (03:35) straddles the new grid's third interval,
	// so the resumed sweep must clamp that fetch to start at 03:35.
	rng := domain.TimeRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 7, 10, 0, 0, time.UTC),
	}

	fetcher := &capFetcher{
		maxSpan:  215 * time.Minute,
		failAt:   time.Date(2024, 1, 1, 3, 35, 0, 0, time.UTC),
		failOnce: true,
	}
	r := newTestRetriever(fetcher)

	_, err := r.Retrieve(context.Background(), 1, Request{Range: rng, NullMarker: ""})
	require.NoError(t, err)
	assertTiles(t, rng, fetcher.served)
}

func TestSplitFetch_RunawayDoublingGuard(t *testing.T) {
	rng := domain.TimeRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	// Every span trips the cap, so doubling can never converge.
	fetcher := &capFetcher{maxSpan: -1}
	r := newTestRetriever(fetcher)

	_, err := r.Retrieve(context.Background(), 1, Request{Range: rng, NullMarker: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datapoint cap")
	assert.Empty(t, fetcher.served)
}

func TestSplitFetch_NonCapErrorAborts(t *testing.T) {
	rng := domain.TimeRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}

	fetcher := &scriptedFetcher{
		responses: []scriptedResponse{
			{err: &domain.TooManyError{Detail: "too many datapoints"}},
			{err: fmt.Errorf("instrument 1: %w", domain.ErrServerError)},
		},
	}
	r := newTestRetriever(fetcher)

	_, err := r.Retrieve(context.Background(), 1, Request{Range: rng, NullMarker: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServerError)
}

// scriptedFetcher replays canned responses in order, repeating the last one
// when the script runs out.
type scriptedFetcher struct {
	responses []scriptedResponse
	calls     []domain.TimeRange
}

type scriptedResponse struct {
	obs []domain.RawObservation
	err error
}

func (f *scriptedFetcher) Fetch(_ context.Context, _ int, rng domain.TimeRange) ([]domain.RawObservation, error) {
	f.calls = append(f.calls, rng)
	idx := len(f.calls) - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	resp := f.responses[idx]
	return resp.obs, resp.err
}
