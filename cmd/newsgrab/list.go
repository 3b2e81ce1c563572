package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/newsgrab"
)

// Run executes the articles command.
func (c *ArticlesCmd) Run(deps *Dependencies) error {
	filter := newsgrab.ArticleFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No failed articles.")
		return nil
	}

	for _, a := range articles {
		fmt.Fprintf(deps.Stdout, "%s  %d  %s  %s\n", a.ID, a.Attempts, a.URL, a.ParseError)
	}
	return nil
}

// Run executes the contents command.
func (c *ContentsCmd) Run(deps *Dependencies) error {
	filter := newsgrab.ContentFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	contents, err := deps.Contents.FindContents(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	if len(contents) == 0 {
		fmt.Fprintln(deps.Stdout, "No contents found. Use 'newsgrab visit' to fetch articles.")
		return nil
	}

	for _, ct := range contents {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", ct.ID, formatDate(ct.PubTS, deps.Location), ct.URL, ct.Title)
	}
	return nil
}

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	for _, src := range deps.Registry.Sources() {
		window := src.DateOnline.Format(time.DateOnly) + " -"
		if src.DateExpire != nil {
			window += " " + src.DateExpire.Format(time.DateOnly)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  adapter=%s  online=%s\n", src.ID, src.Name, src.Adapter, window)
		for _, f := range src.Feeds {
			fmt.Fprintf(deps.Stdout, "  %s  %s\n", f.Title, f.URL)
		}
	}
	return nil
}

// formatDate renders a publish time as a local date, or "-" when unknown.
func formatDate(ts *time.Time, loc *time.Location) string {
	if ts == nil {
		return strings.Repeat("-", len(time.DateOnly))
	}
	if loc == nil {
		loc = time.UTC
	}
	return ts.In(loc).Format(time.DateOnly)
}
