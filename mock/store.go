package mock

import (
	"context"

	"github.com/fwojciec/newsgrab"
)

var _ newsgrab.Store = (*Store)(nil)

// Store is a mock implementation of newsgrab.Store.
type Store struct {
	SaveContentFn func(ctx context.Context, c *newsgrab.Content) error
	SaveArticleFn func(ctx context.Context, a *newsgrab.Article) error
	SaveRevisitFn func(ctx context.Context, r *newsgrab.Revisit) error
}

func (s *Store) SaveContent(ctx context.Context, c *newsgrab.Content) error {
	return s.SaveContentFn(ctx, c)
}

func (s *Store) SaveArticle(ctx context.Context, a *newsgrab.Article) error {
	return s.SaveArticleFn(ctx, a)
}

func (s *Store) SaveRevisit(ctx context.Context, r *newsgrab.Revisit) error {
	return s.SaveRevisitFn(ctx, r)
}
