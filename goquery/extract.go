package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsgrab"
)

// newDocument wraps the payload's parsed response in a goquery document.
func newDocument(p *newsgrab.Payload) (*goquery.Document, error) {
	node, err := p.Document()
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(node), nil
}

// outerHTML renders each node of the selection, separated by newlines.
func outerHTML(sel *goquery.Selection) (string, error) {
	parts := make([]string, 0, sel.Length())
	var renderErr error
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		h, err := goquery.OuterHtml(s)
		if err != nil {
			renderErr = err
			return false
		}
		parts = append(parts, h)
		return true
	})
	if renderErr != nil {
		return "", renderErr
	}
	return strings.Join(parts, "\n"), nil
}

// plainText returns the text of each node with whitespace runs collapsed.
// Nodes are separated by blank lines.
func plainText(sel *goquery.Selection) string {
	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := collapseSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

// collapseSpace trims s and replaces runs of whitespace with a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
