// Package chords implements the HTTP client for the CHORDS portal data API,
// classifying each response as data, an authentication failure, a server
// failure, or the recoverable "too many datapoints" condition.
package chords

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/observability"
)

// accessDeniedPrefix identifies the portal's bad-credentials response. The
// full message is "Access Denied, user authentication required.".
const accessDeniedPrefix = "Access Denied"

// internalServerError is the portal's response to an invalid instrument or
// otherwise unserviceable request.
const internalServerError = "Internal Server Error"

// Credentials are the pre-obtained portal login pair passed on every request.
type Credentials struct {
	Email  string
	APIKey string
}

// Client issues bounded-range data requests against one CHORDS portal.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a portal client. baseURL is the portal root, with or
// without a trailing slash.
func NewClient(baseURL string, creds Credentials, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch retrieves all observations for one instrument within the range.
// Error classification:
//   - domain.ErrAccessDenied: bad credentials, fatal for the whole run
//   - domain.ErrServerError: portal-side failure, fatal for the whole run
//   - *domain.TooManyError: range exceeds the datapoint cap, subdivide
//   - anything else: malformed response or transport failure, fatal
func (c *Client) Fetch(ctx context.Context, instrumentID int, rng domain.TimeRange) ([]domain.RawObservation, error) {
	params := url.Values{
		"start":   {rng.Start.Format(domain.TimestampLayout)},
		"end":     {rng.End.Format(domain.TimestampLayout)},
		"email":   {c.creds.Email},
		"api_key": {c.creds.APIKey},
	}
	fullURL := fmt.Sprintf("%s/api/v1/data/%d?%s", c.baseURL, instrumentID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(observability.OutcomeError).Inc()
		return nil, fmt.Errorf("portal data request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.FetchRequests.WithLabelValues(observability.OutcomeError).Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("portal API error: status %d: %s", resp.StatusCode, body)
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.metrics.FetchRequests.WithLabelValues(observability.OutcomeError).Inc()
		return nil, fmt.Errorf("decode portal response: %w", err)
	}

	return c.classify(instrumentID, rng, envelope)
}

func (c *Client) classify(instrumentID int, rng domain.TimeRange, envelope apiResponse) ([]domain.RawObservation, error) {
	if len(envelope.Errors) > 0 {
		if strings.HasPrefix(envelope.Errors[0], accessDeniedPrefix) {
			c.metrics.FetchRequests.WithLabelValues(observability.OutcomeAccessDenied).Inc()
			c.logger.Error("portal rejected credentials; check url, email address, and api key",
				"detail", envelope.Errors[0])
			return nil, fmt.Errorf("instrument %d: %w", instrumentID, domain.ErrAccessDenied)
		}
		// Anything else in the errors list is the datapoint cap.
		c.metrics.FetchRequests.WithLabelValues(observability.OutcomeTooMany).Inc()
		c.logger.Debug("datapoint cap hit",
			"instrument_id", instrumentID,
			"start", rng.Start.Format(domain.TimestampLayout),
			"end", rng.End.Format(domain.TimestampLayout),
		)
		return nil, &domain.TooManyError{Detail: envelope.Errors[0]}
	}

	if envelope.Error != "" {
		c.metrics.FetchRequests.WithLabelValues(observability.OutcomeServerError).Inc()
		c.logger.Error("portal server error; verify the instrument IDs against the portal",
			"instrument_id", instrumentID, "detail", envelope.Error)
		if envelope.Error == internalServerError {
			return nil, fmt.Errorf("instrument %d: %w", instrumentID, domain.ErrServerError)
		}
		return nil, fmt.Errorf("instrument %d: unexpected portal error %q", instrumentID, envelope.Error)
	}

	if len(envelope.Features) == 0 {
		c.metrics.FetchRequests.WithLabelValues(observability.OutcomeError).Inc()
		return nil, fmt.Errorf("instrument %d: malformed portal response: no features", instrumentID)
	}

	data := envelope.Features[0].Properties.Data
	observations := make([]domain.RawObservation, 0, len(data))
	for _, entry := range data {
		observations = append(observations, domain.RawObservation{
			Time:         entry.Time,
			Test:         testFlagString(entry.Test),
			Measurements: entry.Measurements,
		})
	}

	c.metrics.FetchRequests.WithLabelValues(observability.OutcomeOK).Inc()
	return observations, nil
}

// testFlagString coerces the portal's test flag, which some deployments emit
// as a JSON boolean and others as the strings "true"/"false".
func testFlagString(v any) string {
	switch flag := v.(type) {
	case string:
		return flag
	case bool:
		return strconv.FormatBool(flag)
	case nil:
		return "false"
	default:
		return fmt.Sprintf("%v", flag)
	}
}

// Portal API response envelope. Exactly one of Features, Errors, or Error is
// populated on a well-formed response.
type apiResponse struct {
	Features []feature `json:"features"`
	Errors   []string  `json:"errors"`
	Error    string    `json:"error"`
}

type feature struct {
	Properties properties `json:"properties"`
}

type properties struct {
	Data []dataPoint `json:"data"`
}

type dataPoint struct {
	Time         string         `json:"time"`
	Test         any            `json:"test"`
	Measurements map[string]any `json:"measurements"`
}
