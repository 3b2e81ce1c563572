package newsgrab

import "context"

// ContentExporter writes rendered contents to an output that becomes
// visible only when committed.
type ContentExporter interface {
	// Save stages a content record with its rendered Markdown body.
	Save(ctx context.Context, c *Content, body string) error

	// Commit publishes every staged record, replacing a previous export.
	Commit() error

	// Abort discards staged records.
	Abort() error
}
