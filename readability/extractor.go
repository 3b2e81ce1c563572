// Package readability provides a generic adapter backed by go-readability.
package readability

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/newsgrab"
	"github.com/go-shiori/go-readability"
)

// Name identifies the adapter in stored records.
const Name = "readability"

// Ensure Adapter implements newsgrab.Adapter at compile time.
var _ newsgrab.Adapter = (*Adapter)(nil)

// Adapter wraps go-readability to extract the main content of a page.
type Adapter struct{}

// NewAdapter creates a new Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Name returns the adapter's identifier.
func (a *Adapter) Name() string {
	return Name
}

// Extract returns the page's title and main content.
func (a *Adapter) Extract(p *newsgrab.Payload) (*newsgrab.Extraction, error) {
	if len(p.Response) == 0 {
		return nil, newsgrab.Errorf(newsgrab.EEXTRACT, "empty response")
	}

	// Relative links are resolved against the page URL when it parses.
	pageURL, _ := url.Parse(p.URL)

	article, err := readability.FromReader(bytes.NewReader(p.Response), pageURL)
	if err != nil {
		return nil, newsgrab.Errorf(newsgrab.EEXTRACT, "readability: %v", err)
	}

	ext := &newsgrab.Extraction{
		Title: strings.TrimSpace(article.Title),
		Text:  strings.TrimSpace(article.TextContent),
		HTML:  article.Content,
	}
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	return ext, nil
}
