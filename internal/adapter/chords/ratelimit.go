package chords

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/domain"
)

// Fetcher is the data-request contract satisfied by Client and its
// decorators.
type Fetcher interface {
	Fetch(ctx context.Context, instrumentID int, rng domain.TimeRange) ([]domain.RawObservation, error)
}

// RateLimitedFetcher wraps a Fetcher with a token-bucket rate limit. The
// adaptive splitter can issue a large number of sequential requests for
// dense data, so every request first waits for limiter permission.
type RateLimitedFetcher struct {
	inner   Fetcher
	limiter *rate.Limiter
}

// RateLimited decorates a fetcher with a limit of rps requests per second
// (fractional values allowed) and the given burst size.
func RateLimited(inner Fetcher, rps float64, burst int) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Fetch waits for rate limiter permission, then delegates.
func (r *RateLimitedFetcher) Fetch(ctx context.Context, instrumentID int, rng domain.TimeRange) ([]domain.RawObservation, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.inner.Fetch(ctx, instrumentID, rng)
}
