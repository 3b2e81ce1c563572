package mock

import (
	"context"
	"time"

	"github.com/fwojciec/newsgrab"
)

var _ newsgrab.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of newsgrab.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ newsgrab.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of newsgrab.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ newsgrab.DateParser = (*DateParser)(nil)

// DateParser is a mock implementation of newsgrab.DateParser.
type DateParser struct {
	ParseDateFn func(value string) (time.Time, error)
}

func (p *DateParser) ParseDate(value string) (time.Time, error) {
	return p.ParseDateFn(value)
}
