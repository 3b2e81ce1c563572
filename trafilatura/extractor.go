// Package trafilatura provides a generic adapter for sources without
// dedicated selectors, backed by go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/newsgrab"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Name identifies the adapter in stored records.
const Name = "trafilatura"

// Ensure Adapter implements newsgrab.Adapter at compile time.
var _ newsgrab.Adapter = (*Adapter)(nil)

// Adapter wraps go-trafilatura to extract the main content of a page.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(bytes.NewReader(p.Response), opts)
	if err != nil {
		return nil, newsgrab.Errorf(newsgrab.EEXTRACT, "trafilatura: %v", err)
	}
	if result.ContentNode == nil {
		return nil, newsgrab.Errorf(newsgrab.EEXTRACT, "no main content found")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, newsgrab.Errorf(newsgrab.EEXTRACT, "failed to render content: %v", err)
	}

	ext := &newsgrab.Extraction{
		Title: strings.TrimSpace(result.Metadata.Title),
		Text:  strings.TrimSpace(result.ContentText),
		HTML:  contentHTML,
	}
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	return ext, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
