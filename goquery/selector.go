// Package goquery provides selector-driven adapters for sites whose article
// markup is known. Each adapter locates a title and a body with CSS
// selectors and refuses pages that match fewer elements than required.
package goquery

import (
	"strconv"

	"github.com/fwojciec/newsgrab"
)

// DefaultMinHits is the number of matched elements required when a
// SelectorConfig does not set one: one title and one body.
const DefaultMinHits = 2

// Option keys understood by NewSelectorAdapterFromOptions.
const (
	OptionTitleSelector = "title_selector"
	OptionBodySelector  = "body_selector"
	OptionMinHits       = "min_hits"
)

// SelectorConfig defines where an adapter finds the parts of an article.
type SelectorConfig struct {
	// Title selects the headline. The first match is used.
	Title string

	// Body selects the article body. All matches are kept in document order.
	Body string

	// MinHits is the minimum number of title and body matches combined.
	MinHits int
}

// Ensure SelectorAdapter implements newsgrab.Adapter at compile time.
var _ newsgrab.Adapter = (*SelectorAdapter)(nil)

// SelectorAdapter extracts articles with CSS selectors.
type SelectorAdapter struct {
	name   string
	config SelectorConfig
}

// NewSelectorAdapter creates a SelectorAdapter. The name is recorded as the
// parser of every content record the adapter produces.
func NewSelectorAdapter(name string, config SelectorConfig) (*SelectorAdapter, error) {
	if name == "" {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "selector adapter name required")
	}
	if config.Title == "" || config.Body == "" {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "adapter %q requires title and body selectors", name)
	}
	if config.MinHits <= 0 {
		config.MinHits = DefaultMinHits
	}
	return &SelectorAdapter{name: name, config: config}, nil
}

// NewSelectorAdapterFromOptions creates a SelectorAdapter from source options.
func NewSelectorAdapterFromOptions(name string, options map[string]string) (*SelectorAdapter, error) {
	config := SelectorConfig{
		Title: options[OptionTitleSelector],
		Body:  options[OptionBodySelector],
	}
	if v, ok := options[OptionMinHits]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, newsgrab.Errorf(newsgrab.EINVALID, "adapter %q: invalid %s %q", name, OptionMinHits, v)
		}
		config.MinHits = n
	}
	return NewSelectorAdapter(name, config)
}

// Name returns the adapter's identifier.
func (a *SelectorAdapter) Name() string {
	return "goquery." + a.name
}

// Extract locates the title and body. It returns EEXTRACT when fewer than
// MinHits elements match, or when the title or body is empty.
func (a *SelectorAdapter) Extract(p *newsgrab.Payload) (*newsgrab.Extraction, error) {
	doc, err := newDocument(p)
	if err != nil {
		return nil, err
	}

	titles := doc.Find(a.config.Title)
	bodies := doc.Find(a.config.Body)

	if hits := titles.Length() + bodies.Length(); hits < a.config.MinHits {
		return nil, newsgrab.Errorf(newsgrab.EEXTRACT, "matched %d of %d required elements", hits, a.config.MinHits)
	}
	if titles.Length() == 0 || bodies.Length() == 0 {
		return nil, newsgrab.Errorf(newsgrab.EEXTRACT, "missing title or body")
	}

	title := collapseSpace(titles.First().Text())
	if title == "" {
		return nil, newsgrab.Errorf(newsgrab.EEXTRACT, "empty title")
	}

	text := plainText(bodies)
	if text == "" {
		return nil, newsgrab.Errorf(newsgrab.EEXTRACT, "empty body")
	}

	html, err := outerHTML(bodies)
	if err != nil {
		return nil, newsgrab.Errorf(newsgrab.EEXTRACT, "failed to render body: %v", err)
	}

	return &newsgrab.Extraction{
		Title: title,
		Text:  text,
		HTML:  html,
	}, nil
}
