package sqlite

import "github.com/fwojciec/newsgrab"

var _ newsgrab.Store = (*Store)(nil)

// Store combines the record services into the newsgrab.Store the
// dispatcher writes to. All services share one connection.
type Store struct {
	*ContentService
	*ArticleService
	*RevisitService
}

// NewStore creates a Store backed by db.
func NewStore(db *DB) *Store {
	return &Store{
		ContentService: NewContentService(db),
		ArticleService: NewArticleService(db),
		RevisitService: NewRevisitService(db),
	}
}
