package retrieve

import (
	"context"
	"log/slog"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
)

// Exporter writes the artifacts a run produces: one CSV per instrument with
// data, one warning file per instrument without, and the portal glossary.
// Satisfied by export.Writer.
type Exporter interface {
	WriteCSV(portal domain.PortalProfile, instrumentID int, rng domain.TimeRange, headers []string, ds domain.Dataset, nullMarker string) (string, error)
	WriteWarning(portal domain.PortalProfile, instrumentID int) (string, error)
	WriteGlossary(portal domain.PortalProfile) (string, error)
}

// RunRequest describes one complete download run.
type RunRequest struct {
	Portal        domain.PortalProfile
	InstrumentIDs []int
	Range         domain.TimeRange
	Window        *domain.DailyWindow
	NullMarker    string
	IncludeTest   bool
	Columns       []string
}

// Runner drives a whole download: every configured instrument in sequence,
// then the portal glossary.
type Runner struct {
	retriever *Retriever
	exporter  Exporter
	logger    *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(retriever *Retriever, exporter Exporter, logger *slog.Logger) *Runner {
	return &Runner{
		retriever: retriever,
		exporter:  exporter,
		logger:    logger,
	}
}

// Run processes each instrument in order: retrieve, shape the columns, then
// write the CSV. An instrument that returned nothing gets a warning file
// instead and the run continues with the next instrument; every other
// failure aborts the remaining instruments.
func (r *Runner) Run(ctx context.Context, req RunRequest) error {
	for _, id := range req.InstrumentIDs {
		r.logger.Info("reading instrument", "instrument_id", id, "portal", req.Portal.Name)

		ds, err := r.retriever.Retrieve(ctx, id, Request{
			Range:      req.Range,
			Window:     req.Window,
			NullMarker: req.NullMarker,
		})
		if err != nil {
			return err
		}

		headers, err := domain.BuildHeaders(ds.Observations, req.Columns, req.IncludeTest, req.Portal)
		if err != nil {
			return err
		}

		if len(headers) == 0 || !ds.HasData() {
			if _, err := r.exporter.WriteWarning(req.Portal, id); err != nil {
				return err
			}
			continue
		}

		if _, err := r.exporter.WriteCSV(req.Portal, id, req.Range, headers, ds, req.NullMarker); err != nil {
			return err
		}
	}

	if _, err := r.exporter.WriteGlossary(req.Portal); err != nil {
		return err
	}
	return nil
}
