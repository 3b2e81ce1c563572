// Package ingest runs passes over many articles: first visits of new
// article URLs, catch-up of stored failures, and revisits of stored
// contents. It owns fetching, per-domain rate limiting, bounded
// concurrency and target deduplication; every page is handed to the
// dispatcher, which decides what is stored.
package ingest

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"time"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/bloom"
	"github.com/fwojciec/newsgrab/dispatch"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed at once when
// Ingester.Concurrency is not set.
const DefaultConcurrency = 4

// dedupFalsePositiveRate keeps the chance of skipping a distinct URL
// negligible for pass sizes seen in practice.
const dedupFalsePositiveRate = 1e-6

// Ingester orchestrates ingest passes.
type Ingester struct {
	Fetcher     newsgrab.Fetcher
	Adapters    newsgrab.AdapterResolver
	Dispatcher  *dispatch.Dispatcher
	Articles    newsgrab.ArticleService
	Contents    newsgrab.ContentService
	RateLimiter newsgrab.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration

	// RetryLog, if set, is called for every fetch retry.
	RetryLog LogFunc

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Target is an article URL to visit for the first time.
type Target struct {
	URL    string
	Source string

	// Feed is the listing the URL was discovered from. Required.
	Feed string

	// PubDate and Title are optional hints from the feed item.
	PubDate string
	Title   string

	// Meta holds additional source-defined metadata.
	Meta map[string]string
}

// Payload builds the payload for the fetched body of the target.
func (t Target) Payload(body []byte, fetchedAt time.Time) *newsgrab.Payload {
	meta := maps.Clone(t.Meta)
	if meta == nil {
		meta = make(map[string]string)
	}
	if t.Feed != "" {
		meta[newsgrab.MetaURLRSS] = t.Feed
	}
	if t.PubDate != "" {
		meta[newsgrab.MetaPubDate] = t.PubDate
	}
	if t.Title != "" {
		meta[newsgrab.MetaTitle] = t.Title
	}
	return &newsgrab.Payload{
		URL:       t.URL,
		Source:    t.Source,
		Response:  body,
		Meta:      meta,
		FetchedAt: fetchedAt,
	}
}

// Result holds the outcome of a pass.
type Result struct {
	Contents int
	Articles int
	Revisits int

	// Failed counts items that never reached the dispatcher, such as
	// fetch errors or sources without an eligible adapter.
	Failed int

	// Skipped counts duplicate targets.
	Skipped int
}

// ProgressEvent reports progress during a pass.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Outcome   dispatch.Outcome
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting pass progress.
// It is never called concurrently.
type ProgressFunc func(event ProgressEvent)

// itemResult holds the outcome of processing a single item.
type itemResult struct {
	url    string
	result *dispatch.Result
	err    error
}

// processFunc handles item i. A returned error aborts the pass; item
// level failures are reported through itemResult.err.
type processFunc func(ctx context.Context, i int) (itemResult, error)

// Visit fetches and dispatches each target. Duplicate URLs are skipped.
func (in *Ingester) Visit(ctx context.Context, targets []Target, progress ProgressFunc) (*Result, error) {
	filter := bloom.NewFilter(uint(len(targets)), dedupFalsePositiveRate)
	unique := make([]Target, 0, len(targets))
	for _, t := range targets {
		if filter.Seen(t.URL) {
			continue
		}
		unique = append(unique, t)
	}

	result, err := in.run(ctx, len(unique), progress, func(ctx context.Context, i int) (itemResult, error) {
		t := unique[i]
		item := itemResult{url: t.URL}

		adapter, err := in.Adapters.Resolve(t.Source, in.now())
		if err != nil {
			item.err = err
			return item, nil
		}

		body, err := in.fetch(ctx, t.URL)
		if err != nil {
			item.err = err
			return item, nil
		}

		res, err := in.Dispatcher.Dispatch(ctx, t.Payload(body, in.now()), adapter)
		if err != nil {
			return item, fmt.Errorf("dispatch %s: %w", t.URL, err)
		}
		item.result = res
		return item, nil
	})
	if err != nil {
		return nil, err
	}

	result.Skipped = len(targets) - len(unique)
	return result, nil
}

// CatchUp retries extraction of stored articles with the adapter that is
// currently eligible for their source. Stored responses are reused; no
// page is fetched again.
func (in *Ingester) CatchUp(ctx context.Context, filter newsgrab.ArticleFilter, progress ProgressFunc) (*Result, error) {
	articles, err := in.Articles.FindArticles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}

	return in.run(ctx, len(articles), progress, func(ctx context.Context, i int) (itemResult, error) {
		a := articles[i]
		item := itemResult{url: a.URL}

		adapter, err := in.Adapters.Resolve(a.Source, in.now())
		if err != nil {
			item.err = err
			return item, nil
		}

		res, err := in.Dispatcher.CatchUp(ctx, a, adapter)
		if err != nil {
			return item, fmt.Errorf("catch up %s: %w", a.ID, err)
		}
		item.result = res
		return item, nil
	})
}

// Revisit re-fetches stored contents and records a snapshot of each.
func (in *Ingester) Revisit(ctx context.Context, filter newsgrab.ContentFilter, progress ProgressFunc) (*Result, error) {
	contents, err := in.Contents.FindContents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find contents: %w", err)
	}

	return in.run(ctx, len(contents), progress, func(ctx context.Context, i int) (itemResult, error) {
		c := contents[i]
		item := itemResult{url: c.URL}

		adapter, err := in.Adapters.Resolve(c.Source, in.now())
		if err != nil {
			item.err = err
			return item, nil
		}

		body, err := in.fetch(ctx, c.URL)
		if err != nil {
			item.err = err
			return item, nil
		}

		t := Target{URL: c.URL, Source: c.Source, Feed: c.URLRSS, Meta: c.Meta}
		res, err := in.Dispatcher.Revisit(ctx, t.Payload(body, in.now()), adapter, c)
		if err != nil {
			return item, fmt.Errorf("revisit %s: %w", c.ID, err)
		}
		item.result = res
		return item, nil
	})
}

// run processes n items with bounded concurrency and reports progress
// from a single goroutine.
func (in *Ingester) run(ctx context.Context, n int, progress ProgressFunc, process processFunc) (*Result, error) {
	concurrency := in.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	notify(progress, ProgressEvent{Type: ProgressStarted, Total: n})

	resultCh := make(chan itemResult)
	errCh := make(chan error, 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i := 0; i < n; i++ {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				item, err := process(gctx, i)
				if err != nil {
					return err
				}
				resultCh <- item
				return nil
			})
		}
		errCh <- g.Wait()
		close(resultCh)
	}()

	var result Result
	completed := 0
	for item := range resultCh {
		completed++

		if item.err != nil {
			result.Failed++
			notify(progress, ProgressEvent{
				Type:      ProgressFailed,
				Completed: completed,
				Total:     n,
				URL:       item.url,
				Error:     item.err,
			})
			continue
		}

		switch item.result.Outcome {
		case dispatch.OutcomeContent:
			result.Contents++
		case dispatch.OutcomeArticle:
			result.Articles++
		case dispatch.OutcomeRevisit:
			result.Revisits++
		}
		notify(progress, ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     n,
			URL:       item.url,
			Outcome:   item.result.Outcome,
		})
	}

	if err := <-errCh; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notify(progress, ProgressEvent{Type: ProgressFinished, Completed: completed, Total: n})
	return &result, nil
}

// fetch waits for the domain's rate limit and fetches with retry.
func (in *Ingester) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "invalid article url %q", rawURL)
	}

	if in.RateLimiter != nil {
		if err := in.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	delays := in.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, rawURL, in.Fetcher.Fetch, in.RetryLog, delays)
}

func (in *Ingester) now() time.Time {
	if in.Now != nil {
		return in.Now()
	}
	return time.Now()
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
