package newsgrab

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be an extracted article body.
	Convert(html string) (string, error)
}
