package mock

import (
	"context"

	"github.com/fwojciec/newsgrab"
)

var _ newsgrab.RevisitService = (*RevisitService)(nil)

// RevisitService is a mock implementation of newsgrab.RevisitService.
type RevisitService struct {
	SaveRevisitFn  func(ctx context.Context, r *newsgrab.Revisit) error
	FindRevisitsFn func(ctx context.Context, filter newsgrab.RevisitFilter) ([]*newsgrab.Revisit, error)
}

func (s *RevisitService) SaveRevisit(ctx context.Context, r *newsgrab.Revisit) error {
	return s.SaveRevisitFn(ctx, r)
}

func (s *RevisitService) FindRevisits(ctx context.Context, filter newsgrab.RevisitFilter) ([]*newsgrab.Revisit, error) {
	return s.FindRevisitsFn(ctx, filter)
}
