package retrieve

import (
	"context"
	"errors"
	"fmt"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
)

// maxDivisions bounds the doubling loop. At 4096 sub-divisions a range that
// still trips the datapoint cap is denser than any deployed station
// transmits; continuing would only hammer the portal.
const maxDivisions = 4096

// splitFetch services a range whose single-shot fetch reported the
// datapoint cap. It divides the original range into equal integer-minute
// sub-intervals, fetching each in chronological order; whenever a
// sub-interval still trips the cap, the number of divisions doubles and the
// sweep restarts over the entire original range.
//
// Progress is never discarded: coveredThrough marks the end of the last
// successful sub-interval, records collected so far stay in the dataset,
// and after a re-split the sweep skips sub-intervals already covered. A
// sub-interval straddling the covered point is clamped to start exactly
// there, so no timestamp is fetched twice and none is skipped.
func (r *Retriever) splitFetch(ctx context.Context, instrumentID int, req Request, ds *domain.Dataset) error {
	divisions := 2
	boundaries, err := req.Range.SplitBoundaries(divisions)
	if err != nil {
		return fmt.Errorf("instrument %d: %w", instrumentID, err)
	}

	coveredThrough := req.Range.Start

	for {
		resplit := false

		for i := 0; i+1 < len(boundaries); i++ {
			segStart, segEnd := boundaries[i], boundaries[i+1]
			if !segEnd.After(coveredThrough) {
				continue
			}
			if segStart.Before(coveredThrough) {
				segStart = coveredThrough
			}

			r.logger.Debug("getting next data segment",
				"instrument_id", instrumentID,
				"divisions", divisions,
				"start", segStart.Format(domain.TimestampLayout),
				"end", segEnd.Format(domain.TimestampLayout),
			)

			observations, err := r.fetcher.Fetch(ctx, instrumentID, domain.TimeRange{Start: segStart, End: segEnd})
			if err != nil {
				var tooMany *domain.TooManyError
				if !errors.As(err, &tooMany) {
					return err
				}

				divisions *= 2
				if divisions > maxDivisions {
					return fmt.Errorf("instrument %d: range still exceeds datapoint cap at %d divisions: %w",
						instrumentID, maxDivisions, tooMany)
				}
				boundaries, err = req.Range.SplitBoundaries(divisions)
				if err != nil {
					return fmt.Errorf("instrument %d: %w", instrumentID, err)
				}
				r.metrics.SplitSweeps.Inc()
				resplit = true
				break
			}

			if err := r.collect(ds, observations, req.NullMarker); err != nil {
				return err
			}
			coveredThrough = segEnd
		}

		if !resplit {
			r.logger.Info("finished reduction",
				"instrument_id", instrumentID, "divisions", divisions)
			return nil
		}
	}
}
