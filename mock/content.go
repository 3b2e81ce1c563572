package mock

import (
	"context"

	"github.com/fwojciec/newsgrab"
)

var _ newsgrab.ContentService = (*ContentService)(nil)

// ContentService is a mock implementation of newsgrab.ContentService.
type ContentService struct {
	SaveContentFn     func(ctx context.Context, c *newsgrab.Content) error
	FindContentByIDFn func(ctx context.Context, id string) (*newsgrab.Content, error)
	FindContentsFn    func(ctx context.Context, filter newsgrab.ContentFilter) ([]*newsgrab.Content, error)
}

func (s *ContentService) SaveContent(ctx context.Context, c *newsgrab.Content) error {
	return s.SaveContentFn(ctx, c)
}

func (s *ContentService) FindContentByID(ctx context.Context, id string) (*newsgrab.Content, error) {
	return s.FindContentByIDFn(ctx, id)
}

func (s *ContentService) FindContents(ctx context.Context, filter newsgrab.ContentFilter) ([]*newsgrab.Content, error) {
	return s.FindContentsFn(ctx, filter)
}
