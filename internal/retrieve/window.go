package retrieve

import (
	"context"
	"time"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
)

// walkWindow fetches only the requested daily clock-time window for each
// calendar day of the range, concatenating results chronologically.
//
// The first day is fetched only when its window starts at or after the
// range start. This is deliberate: a first-day window opening even one
// second before the range start is skipped entirely, not clamped, so a
// range starting at 06:00:00 with a window of [05:45:00, 06:00:59] yields
// no fetch for day one. Subsequent days are fetched while the day's window
// end still precedes the range end.
//
// Unlike the top-level path, a window fetch that reports any error,
// including the datapoint cap, is fatal for the whole run: windowed fetches
// span minutes by construction and are not expected to ever need
// subdivision, so a cap response here means the request itself is wrong.
func (r *Retriever) walkWindow(ctx context.Context, instrumentID int, req Request, ds *domain.Dataset) error {
	win := *req.Window

	r.logger.Info("time window specified",
		"instrument_id", instrumentID,
		"window_start", win.Start.String(),
		"window_end", win.End.String(),
	)

	day := req.Range.Start
	if first := domain.CombineDayClock(day, win.Start); !first.Before(req.Range.Start) {
		if err := r.fetchDay(ctx, instrumentID, day, win, req.NullMarker, ds); err != nil {
			return err
		}
	}

	day = day.AddDate(0, 0, 1)
	for domain.CombineDayClock(day, win.End).Before(req.Range.End) {
		if err := r.fetchDay(ctx, instrumentID, day, win, req.NullMarker, ds); err != nil {
			return err
		}
		day = day.AddDate(0, 0, 1)
	}

	return nil
}

// fetchDay retrieves one calendar day's window slice.
func (r *Retriever) fetchDay(ctx context.Context, instrumentID int, day time.Time, win domain.DailyWindow, nullMarker string, ds *domain.Dataset) error {
	rng := domain.TimeRange{
		Start: domain.CombineDayClock(day, win.Start),
		End:   domain.CombineDayClock(day, win.End),
	}

	observations, err := r.fetcher.Fetch(ctx, instrumentID, rng)
	if err != nil {
		return err
	}
	r.metrics.WindowFetches.Inc()

	return r.collect(ds, observations, nullMarker)
}
