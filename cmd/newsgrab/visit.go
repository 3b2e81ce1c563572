package main

import (
	"fmt"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/ingest"
)

// Run executes the visit command.
func (c *VisitCmd) Run(deps *Dependencies) error {
	src, ok := deps.Registry.Source(c.Source)
	if !ok {
		err := newsgrab.Errorf(newsgrab.ENOTFOUND, "source %q not configured", c.Source)
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	feed := c.Feed
	if feed == "" {
		feed = src.FeedURL()
	}

	targets := make([]ingest.Target, 0, len(c.URLs))
	for _, u := range c.URLs {
		targets = append(targets, ingest.Target{
			URL:     u,
			Source:  src.ID,
			Feed:    feed,
			PubDate: c.PubDate,
			Title:   c.Title,
		})
	}

	deps.Ingester.Concurrency = c.Concurrency
	result, err := deps.Ingester.Visit(deps.Ctx, targets, progressPrinter(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	printResult(deps, result)
	return nil
}
