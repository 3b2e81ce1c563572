package newsgrab

import (
	"context"
	"time"
)

// Fetcher retrieves raw page bytes from URLs.
type Fetcher interface {
	// Fetch retrieves the resource at url and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases fetcher resources.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// DateParser converts source-provided date strings into times.
type DateParser interface {
	ParseDate(value string) (time.Time, error)
}
