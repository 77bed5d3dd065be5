// Package retrieve drives per-instrument data retrieval: a plain
// whole-range fetch when it fits under the portal's datapoint cap, adaptive
// range splitting when it does not, and day-by-day walking when a recurring
// daily clock-time window was requested.
package retrieve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/observability"
)

// Fetcher issues one bounded-range request for one instrument.
type Fetcher interface {
	Fetch(ctx context.Context, instrumentID int, rng domain.TimeRange) ([]domain.RawObservation, error)
}

// Request describes what to retrieve for an instrument.
type Request struct {
	Range domain.TimeRange

	// Window restricts results to a recurring daily clock-time slice.
	// Nil means the full range with no daily filter.
	Window *domain.DailyWindow

	// NullMarker substitutes for unresolvable values during normalization.
	NullMarker string
}

// Retriever assembles one instrument's dataset from however many portal
// requests the range requires.
type Retriever struct {
	fetcher Fetcher
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Retriever.
func New(fetcher Fetcher, logger *slog.Logger, metrics *observability.Metrics) *Retriever {
	return &Retriever{
		fetcher: fetcher,
		logger:  logger,
		metrics: metrics,
	}
}

// Retrieve fetches, normalizes, and assembles all observations for one
// instrument. Retrieval is strictly sequential and chronological; the
// returned dataset's parallel-length invariant has been validated.
func (r *Retriever) Retrieve(ctx context.Context, instrumentID int, req Request) (domain.Dataset, error) {
	start := time.Now()
	defer func() {
		r.metrics.InstrumentDuration.Observe(time.Since(start).Seconds())
	}()

	var ds domain.Dataset
	var err error
	if req.Window != nil {
		err = r.walkWindow(ctx, instrumentID, req, &ds)
	} else {
		err = r.fetchRange(ctx, instrumentID, req, &ds)
	}
	if err != nil {
		return domain.Dataset{}, err
	}

	if err := ds.Validate(); err != nil {
		return domain.Dataset{}, fmt.Errorf("instrument %d: %w", instrumentID, err)
	}

	r.metrics.RecordsDownloaded.Add(float64(ds.Len()))
	r.metrics.MeasurementsTotal.Add(float64(ds.TotalMeasurements))
	r.logger.Info("instrument retrieval complete",
		"instrument_id", instrumentID,
		"records", ds.Len(),
		"measurements", ds.TotalMeasurements,
	)

	return ds, nil
}

// fetchRange attempts a single whole-range fetch and falls back to adaptive
// splitting only when the portal reports the datapoint cap.
func (r *Retriever) fetchRange(ctx context.Context, instrumentID int, req Request, ds *domain.Dataset) error {
	observations, err := r.fetcher.Fetch(ctx, instrumentID, req.Range)
	if err != nil {
		var tooMany *domain.TooManyError
		if !errors.As(err, &tooMany) {
			return err
		}
		r.logger.Info("large data request, reducing range",
			"instrument_id", instrumentID, "detail", tooMany.Detail)
		return r.splitFetch(ctx, instrumentID, req, ds)
	}

	return r.collect(ds, observations, req.NullMarker)
}

// collect normalizes raw observations and appends them to the dataset. The
// measurement total counts raw values only, so derived compass columns do
// not inflate it.
func (r *Retriever) collect(ds *domain.Dataset, observations []domain.RawObservation, nullMarker string) error {
	for _, obs := range observations {
		normalized, err := domain.NormalizeObservation(obs.Measurements, nullMarker)
		if err != nil {
			return err
		}
		ds.Append(obs.Time, obs.Test, normalized)
		ds.TotalMeasurements += len(obs.Measurements)
	}
	return nil
}
