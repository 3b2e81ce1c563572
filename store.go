package newsgrab

import "context"

// Store is the persistence surface the dispatcher writes to.
// Every dispatch call results in exactly one of these calls.
// Implementations must be safe for concurrent use.
type Store interface {
	SaveContent(ctx context.Context, c *Content) error
	SaveArticle(ctx context.Context, a *Article) error
	SaveRevisit(ctx context.Context, r *Revisit) error
}
