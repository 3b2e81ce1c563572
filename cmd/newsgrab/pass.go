package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/ingest"
)

// Run executes the catchup command.
func (c *CatchupCmd) Run(deps *Dependencies) error {
	filter := newsgrab.ArticleFilter{
		MaxAttempts: c.MaxAttempts,
		Limit:       c.Limit,
	}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	deps.Ingester.Concurrency = c.Concurrency
	result, err := deps.Ingester.CatchUp(deps.Ctx, filter, progressPrinter(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	printResult(deps, result)
	return nil
}

// Run executes the revisit command.
func (c *RevisitCmd) Run(deps *Dependencies) error {
	filter := revisitFilter(c.Source, c.Limit, c.MinAge, time.Now())

	deps.Ingester.Concurrency = c.Concurrency
	result, err := deps.Ingester.Revisit(deps.Ctx, filter, progressPrinter(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	printResult(deps, result)
	return nil
}

func revisitFilter(source string, limit int, minAge time.Duration, now time.Time) newsgrab.ContentFilter {
	filter := newsgrab.ContentFilter{Limit: limit}
	if source != "" {
		filter.Source = &source
	}
	if minAge > 0 {
		before := now.Add(-minAge)
		filter.CreatedBefore = &before
	}
	return filter
}

// progressPrinter reports one line per item: outcomes on stdout,
// failures on stderr.
func progressPrinter(deps *Dependencies) ingest.ProgressFunc {
	return func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Processing %d items\n", event.Total)
		case ingest.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s %s\n", event.Completed, event.Total, event.Outcome, event.URL)
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] fail %s: %v\n", event.Completed, event.Total, event.URL, event.Error)
		}
	}
}

func printResult(deps *Dependencies, r *ingest.Result) {
	fmt.Fprintf(deps.Stdout, "Done: %d contents, %d articles, %d revisits, %d failed, %d skipped\n",
		r.Contents, r.Articles, r.Revisits, r.Failed, r.Skipped)
}
