package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsgrab"
)

// Ensure LoggingStore implements newsgrab.Store.
var _ newsgrab.Store = (*LoggingStore)(nil)

// LoggingStore wraps a Store with logging of every persisted record.
type LoggingStore struct {
	next   newsgrab.Store
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next newsgrab.Store, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// SaveContent logs the saved content and delegates to the wrapped store.
func (s *LoggingStore) SaveContent(ctx context.Context, c *newsgrab.Content) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save content",
			"id", c.ID,
			"url", c.URL,
			"article", c.ArticleID,
			"text_md5", c.TextMD5,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveContent(ctx, c)
}

// SaveArticle logs the saved article and delegates to the wrapped store.
func (s *LoggingStore) SaveArticle(ctx context.Context, a *newsgrab.Article) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save article",
			"id", a.ID,
			"url", a.URL,
			"attempts", a.Attempts,
			"reason", a.ParseError,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveArticle(ctx, a)
}

// SaveRevisit logs the saved snapshot and delegates to the wrapped store.
func (s *LoggingStore) SaveRevisit(ctx context.Context, r *newsgrab.Revisit) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save revisit",
			"id", r.ID,
			"content", r.ContentID,
			"changed", r.Changed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveRevisit(ctx, r)
}
