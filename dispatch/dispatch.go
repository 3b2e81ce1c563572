// Package dispatch turns one fetched payload into exactly one persisted
// outcome: a content record when the adapter can extract the page, or an
// article record holding the raw response when it cannot.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/newsgrab"
)

// Outcome identifies which record a dispatch persisted.
type Outcome int

const (
	OutcomeContent Outcome = iota + 1
	OutcomeArticle
	OutcomeRevisit
)

// String returns the outcome name used in logs and CLI output.
func (o Outcome) String() string {
	switch o {
	case OutcomeContent:
		return "content"
	case OutcomeArticle:
		return "article"
	case OutcomeRevisit:
		return "revisit"
	}
	return "unknown"
}

// Result holds the record persisted by a dispatch call.
// Exactly one of Content, Article and Revisit is set.
type Result struct {
	Outcome Outcome
	Content *newsgrab.Content
	Article *newsgrab.Article
	Revisit *newsgrab.Revisit
}

// Dispatcher runs extraction and applies the save-or-fallback decision.
// It holds no per-call state and is safe for concurrent use.
type Dispatcher struct {
	Store newsgrab.Store

	// Dates parses meta pub_date values. When nil, PubTS is never derived.
	Dates newsgrab.DateParser

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewDispatcher creates a Dispatcher writing to store.
func NewDispatcher(store newsgrab.Store, dates newsgrab.DateParser) *Dispatcher {
	return &Dispatcher{Store: store, Dates: dates}
}

// attempt is one normalized payload after extraction.
type attempt struct {
	payload    *newsgrab.Payload
	adapter    newsgrab.Adapter
	extraction *newsgrab.Extraction
	err        error // document failure, if any
}

// Dispatch handles a first-visit payload.
// It returns EINVALID without persisting anything if the payload lacks
// meta url_rss; every other failure of the document is stored as an Article.
func (d *Dispatcher) Dispatch(ctx context.Context, p *newsgrab.Payload, adapter newsgrab.Adapter) (*Result, error) {
	a, err := d.prepare(p, adapter)
	if err != nil {
		return nil, err
	}
	if a.err != nil {
		return d.saveArticle(ctx, a, nil)
	}

	c := d.content(a)
	if err := d.Store.SaveContent(ctx, c); err != nil {
		return nil, fmt.Errorf("save content: %w", err)
	}
	return &Result{Outcome: OutcomeContent, Content: c}, nil
}

// CatchUp retries extraction of a stored Article using its saved response.
// On success the content references the article so the store can resolve
// it; on failure the same article is saved again with one more attempt.
func (d *Dispatcher) CatchUp(ctx context.Context, article *newsgrab.Article, adapter newsgrab.Adapter) (*Result, error) {
	if article == nil {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "catch-up requires an article")
	}

	a, err := d.prepare(article.Payload(), adapter)
	if err != nil {
		return nil, err
	}
	if a.err != nil {
		return d.saveArticle(ctx, a, article)
	}

	c := d.content(a)
	c.ArticleID = article.ID
	if err := d.Store.SaveContent(ctx, c); err != nil {
		return nil, fmt.Errorf("save content: %w", err)
	}
	return &Result{Outcome: OutcomeContent, Content: c}, nil
}

// Revisit re-extracts a page previously stored as original.
// A successful extraction is appended to the revisit history and never
// overwrites original; a failed one falls back to the article path.
func (d *Dispatcher) Revisit(ctx context.Context, p *newsgrab.Payload, adapter newsgrab.Adapter, original *newsgrab.Content) (*Result, error) {
	if original == nil {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "revisit requires the original content")
	}

	a, err := d.prepare(p, adapter)
	if err != nil {
		return nil, err
	}
	if a.err != nil {
		return d.saveArticle(ctx, a, nil)
	}

	c := d.content(a)
	r := &newsgrab.Revisit{
		Content:   *c,
		ContentID: original.ID,
		Changed:   c.TextMD5 != original.TextMD5 || c.HTMLMD5 != original.HTMLMD5,
	}
	if err := d.Store.SaveRevisit(ctx, r); err != nil {
		return nil, fmt.Errorf("save revisit: %w", err)
	}
	return &Result{Outcome: OutcomeRevisit, Revisit: r}, nil
}

// prepare normalizes the payload and runs the adapter.
// Only contract violations are returned as errors.
func (d *Dispatcher) prepare(p *newsgrab.Payload, adapter newsgrab.Adapter) (*attempt, error) {
	if p == nil {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "payload required")
	}
	if adapter == nil {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "adapter required for %q", p.URL)
	}

	np, err := normalize(p, d.Dates)
	if err != nil {
		return nil, err
	}

	ext, err := extract(adapter, np)
	return &attempt{payload: np, adapter: adapter, extraction: ext, err: err}, nil
}

// extract runs the adapter. A panicking adapter is treated like a document
// that did not match, so the fetch attempt still ends up stored.
func extract(adapter newsgrab.Adapter, p *newsgrab.Payload) (ext *newsgrab.Extraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			ext = nil
			err = newsgrab.Errorf(newsgrab.EEXTRACT, "adapter %s panicked: %v", adapter.Name(), r)
		}
	}()

	ext, err = adapter.Extract(p)
	if err != nil {
		return nil, err
	}
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	return ext, nil
}

// content builds the content record for a successful attempt.
// The raw response is not carried over and the title hint leaves meta.
func (d *Dispatcher) content(a *attempt) *newsgrab.Content {
	p := a.payload
	delete(p.Meta, newsgrab.MetaTitle)

	return &newsgrab.Content{
		Source:          p.Source,
		URL:             p.URL,
		URLRSS:          p.URLRSS,
		PubTS:           p.PubTS,
		Title:           a.extraction.Title,
		Text:            a.extraction.Text,
		HTML:            a.extraction.HTML,
		TextMD5:         newsgrab.FingerprintString(a.extraction.Text),
		HTMLMD5:         newsgrab.FingerprintString(a.extraction.HTML),
		ParserClassname: a.adapter.Name(),
		Meta:            p.Meta,
		CreatedAt:       d.now(),
	}
}

// saveArticle stores a failed attempt. When prev is set the stored article
// is replaced and its attempt counter advanced.
func (d *Dispatcher) saveArticle(ctx context.Context, a *attempt, prev *newsgrab.Article) (*Result, error) {
	p := a.payload
	now := d.now()

	article := &newsgrab.Article{
		Source:          p.Source,
		URL:             p.URL,
		URLRSS:          p.URLRSS,
		PubTS:           p.PubTS,
		Meta:            p.Meta,
		Response:        p.Response,
		ResponseMD5:     newsgrab.Fingerprint(p.Response),
		ParserClassname: a.adapter.Name(),
		ParseError:      parseError(a.err),
		Attempts:        1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if prev != nil {
		article.ID = prev.ID
		article.Attempts = prev.Attempts + 1
		article.CreatedAt = prev.CreatedAt
	}

	if err := d.Store.SaveArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}
	return &Result{Outcome: OutcomeArticle, Article: article}, nil
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

func parseError(err error) string {
	var e *newsgrab.Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
