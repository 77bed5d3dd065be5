// Package export serializes assembled instrument datasets into the output
// directory: one CSV per instrument, a warning file when an instrument
// returned nothing, and a README unit glossary for the portal.
package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/observability"
)

const warningText = "No data was found for the specified time frame.\nCheck the CHORDS portal to verify."

// Writer emits instrument artifacts into a single data directory.
type Writer struct {
	dataDir string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates a Writer rooted at dataDir. The directory is created if
// it does not exist.
func NewWriter(dataDir string, logger *slog.Logger, metrics *observability.Metrics) (*Writer, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Writer{
		dataDir: dataDir,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// WriteCSV serializes one instrument's dataset under the given headers and
// returns the path written. Fields absent from an observation are filled
// with the null marker.
func (w *Writer) WriteCSV(portal domain.PortalProfile, instrumentID int, rng domain.TimeRange, headers []string, ds domain.Dataset, nullMarker string) (string, error) {
	name := fmt.Sprintf("%s_ID%d_%s_%s.csv",
		portal.Name, instrumentID,
		rng.Start.Format(time.DateOnly), rng.End.Format(time.DateOnly))
	path := filepath.Join(w.dataDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(headers); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	row := make([]string, len(headers))
	for i := 0; i < ds.Len(); i++ {
		for j, header := range headers {
			switch header {
			case "time":
				row[j] = ds.Times[i]
			case "test":
				row[j] = ds.Tests[i]
			default:
				row[j] = formatValue(ds.Observations[i][header], nullMarker)
			}
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("writing %s: %w", name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}

	w.metrics.FilesWritten.WithLabelValues("csv").Inc()
	w.logger.Info("finished writing to file",
		"instrument_id", instrumentID, "path", path, "records", ds.Len())
	return path, nil
}

// WriteWarning records that an instrument produced no data in the requested
// time frame and returns the path written.
func (w *Writer) WriteWarning(portal domain.PortalProfile, instrumentID int) (string, error) {
	name := fmt.Sprintf("%s_instrumentID_%d_[WARNING].txt", portal.Name, instrumentID)
	path := filepath.Join(w.dataDir, name)

	if err := os.WriteFile(path, []byte(warningText), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	w.metrics.FilesWritten.WithLabelValues("warning").Inc()
	w.logger.Warn("no data found for instrument",
		"instrument_id", instrumentID, "portal", portal.Name, "path", path)
	return path, nil
}

// formatValue renders a measurement value for CSV output. Floats keep their
// shortest exact decimal form; a nil value falls back to the null marker.
func formatValue(v any, nullMarker string) string {
	switch val := v.(type) {
	case nil:
		return nullMarker
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
