package export

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
)

// WriteGlossary emits README.txt describing the portal's sensors and their
// units. Portals without a glossary yet produce no file; the returned path
// is empty in that case.
func (w *Writer) WriteGlossary(portal domain.PortalProfile) (string, error) {
	if len(portal.Glossary) == 0 {
		w.logger.Info("no unit glossary defined for portal, skipping README",
			"portal", portal.Name)
		return "", nil
	}

	path := filepath.Join(w.dataDir, "README.txt")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating README.txt: %w", err)
	}
	defer f.Close()

	tw := tabwriter.NewWriter(f, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "==================================================================================")
	fmt.Fprintln(tw, "============================ Units of measurement guide =========================")
	fmt.Fprintln(tw, "==================================================================================")
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Sensor name\t(shortname)\tMeasured Property\t(units)")
	fmt.Fprintln(tw, "__________________________________________________________________________________")
	fmt.Fprintln(tw)
	for _, entry := range portal.Glossary {
		fmt.Fprintf(tw, "%s\t(%s)\t%s\t(%s)\n",
			entry.Sensor, entry.Shortname, entry.Property, entry.Units)
	}
	if err := tw.Flush(); err != nil {
		return "", fmt.Errorf("writing README.txt: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing README.txt: %w", err)
	}

	w.metrics.FilesWritten.WithLabelValues("readme").Inc()
	w.logger.Info("wrote unit glossary", "portal", portal.Name, "path", path)
	return path, nil
}
