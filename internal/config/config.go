// Package config loads and validates all downloader settings from the
// environment, with optional .env file support.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
)

// Config holds all downloader settings, populated from environment variables.
type Config struct {
	PortalURL     string
	Portal        domain.PortalProfile
	UserEmail     string
	APIKey        string
	InstrumentIDs []int

	Range       domain.TimeRange
	Window      *domain.DailyWindow
	NullValue   string
	IncludeTest bool
	Columns     []string
	DataDir     string

	LogLevel    string
	LogFormat   string
	MetricsAddr string

	HTTPTimeout       time.Duration
	RequestsPerSecond float64
	RequestBurst      int

	// Warnings are non-fatal findings about the requested range, surfaced
	// at startup.
	Warnings []string
}

// archiveDepth is how far back the CHORDS portals retain data.
const archiveDepthYears = 2

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first when
// present.
func Load() (*Config, error) {
	// Absence of a .env file is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		PortalURL:   strings.TrimRight(os.Getenv("CHORDS_PORTAL_URL"), "/"),
		UserEmail:   os.Getenv("CHORDS_USER_EMAIL"),
		APIKey:      os.Getenv("CHORDS_API_KEY"),
		NullValue:   os.Getenv("CHORDS_NULL_VALUE"),
		DataDir:     envOrDefault("CHORDS_DATA_DIR", "data_downloads"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "json"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
	}

	if cfg.PortalURL == "" {
		return nil, errors.New("CHORDS_PORTAL_URL is required")
	}
	if cfg.UserEmail == "" {
		return nil, errors.New("CHORDS_USER_EMAIL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("CHORDS_API_KEY is required")
	}

	portal, ok := domain.LookupPortal(os.Getenv("CHORDS_PORTAL_NAME"))
	if !ok {
		return nil, fmt.Errorf("CHORDS_PORTAL_NAME must be one of (case sensitive): %s",
			strings.Join(domain.PortalNames(), ", "))
	}
	cfg.Portal = portal

	ids, err := parseInstrumentIDs(os.Getenv("CHORDS_INSTRUMENT_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.InstrumentIDs = ids

	rng, err := parseRange(os.Getenv("CHORDS_START"), os.Getenv("CHORDS_END"))
	if err != nil {
		return nil, err
	}
	cfg.Range = rng

	window, err := parseWindow(os.Getenv("CHORDS_WINDOW_START"), os.Getenv("CHORDS_WINDOW_END"))
	if err != nil {
		return nil, err
	}
	cfg.Window = window

	if v := os.Getenv("CHORDS_INCLUDE_TEST"); v != "" {
		includeTest, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CHORDS_INCLUDE_TEST %q: %w", v, err)
		}
		cfg.IncludeTest = includeTest
	}

	cfg.Columns = splitList(os.Getenv("CHORDS_COLUMNS"))

	cfg.HTTPTimeout, err = parseDuration("HTTP_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	cfg.RequestsPerSecond, err = parsePositiveFloat("REQUESTS_PER_SECOND", "2")
	if err != nil {
		return nil, err
	}

	cfg.RequestBurst, err = parsePositiveInt("REQUEST_BURST", "1")
	if err != nil {
		return nil, err
	}

	cfg.Warnings = rangeWarnings(cfg.Range)

	return cfg, nil
}

// rangeWarnings reports non-fatal problems with the requested range: CHORDS
// portals keep a rolling archive, so a start before the cutoff or an end in
// the future silently truncates the result.
func rangeWarnings(rng domain.TimeRange) []string {
	now := clock.Now()
	var warnings []string
	if cutoff := now.AddDate(-archiveDepthYears, 0, 0); rng.Start.Before(cutoff) {
		warnings = append(warnings, fmt.Sprintf(
			"start %s predates the CHORDS cutoff (%d years); only the archive will be pulled",
			rng.Start.Format(domain.TimestampLayout), archiveDepthYears))
	}
	if rng.End.After(now) {
		warnings = append(warnings, fmt.Sprintf(
			"end %s is in the future; data will only reach the present",
			rng.End.Format(domain.TimestampLayout)))
	}
	return warnings
}

func parseInstrumentIDs(raw string) ([]int, error) {
	items := splitList(raw)
	if len(items) == 0 {
		return nil, errors.New("CHORDS_INSTRUMENT_IDS is required")
	}
	ids := make([]int, 0, len(items))
	for _, item := range items {
		id, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("CHORDS_INSTRUMENT_IDS: instrument ids must be integers, got %q", item)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseRange(start, end string) (domain.TimeRange, error) {
	if start == "" || end == "" {
		return domain.TimeRange{}, errors.New("CHORDS_START and CHORDS_END are required")
	}
	startTS, err := domain.ParseTimestamp(start)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("invalid CHORDS_START: %w", err)
	}
	endTS, err := domain.ParseTimestamp(end)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("invalid CHORDS_END: %w", err)
	}
	rng, err := domain.NewTimeRange(startTS, endTS)
	if err != nil {
		return domain.TimeRange{}, err
	}
	return rng, nil
}

func parseWindow(start, end string) (*domain.DailyWindow, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, errors.New("CHORDS_WINDOW_START and CHORDS_WINDOW_END must both be set to use a daily time window")
	}
	startCT, err := domain.ParseClockTime(start)
	if err != nil {
		return nil, fmt.Errorf("invalid CHORDS_WINDOW_START: %w", err)
	}
	endCT, err := domain.ParseClockTime(end)
	if err != nil {
		return nil, fmt.Errorf("invalid CHORDS_WINDOW_END: %w", err)
	}
	win, err := domain.NewDailyWindow(startCT, endCT)
	if err != nil {
		return nil, err
	}
	return &win, nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

func parsePositiveFloat(key, fallback string) (float64, error) {
	raw := envOrDefault(key, fallback)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return f, nil
}

func parsePositiveInt(key, fallback string) (int, error) {
	raw := envOrDefault(key, fallback)
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
