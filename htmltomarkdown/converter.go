// Package htmltomarkdown renders extracted article bodies as Markdown for
// reading stored content in a terminal.
package htmltomarkdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/newsgrab"
)

// Ensure Converter implements newsgrab.Converter at compile time.
var _ newsgrab.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", newsgrab.Errorf(newsgrab.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

// ConvertContent renders a stored content record as a Markdown document:
// the headline, a source line, and the converted body.
func (c *Converter) ConvertContent(content *newsgrab.Content) (string, error) {
	body, err := c.Convert(content.HTML)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", content.Title)
	fmt.Fprintf(&b, "> %s", content.URL)
	if content.PubTS != nil {
		fmt.Fprintf(&b, " (%s)", content.PubTS.Format(time.DateOnly))
	}
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	return b.String(), nil
}
