package mock

import (
	"context"

	"github.com/fwojciec/newsgrab"
)

var _ newsgrab.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of newsgrab.ArticleService.
type ArticleService struct {
	SaveArticleFn     func(ctx context.Context, a *newsgrab.Article) error
	FindArticleByIDFn func(ctx context.Context, id string) (*newsgrab.Article, error)
	FindArticlesFn    func(ctx context.Context, filter newsgrab.ArticleFilter) ([]*newsgrab.Article, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (s *ArticleService) SaveArticle(ctx context.Context, a *newsgrab.Article) error {
	return s.SaveArticleFn(ctx, a)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*newsgrab.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter newsgrab.ArticleFilter) ([]*newsgrab.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}
