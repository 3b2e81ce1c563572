package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fwojciec/newsgrab"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ newsgrab.ContentService = (*ContentService)(nil)

var contentColumns = []string{
	"id", "article_id", "source", "url", "url_rss", "pub_ts", "title", "text", "html",
	"text_md5", "html_md5", "parser", "meta", "created_at",
}

// ContentService implements newsgrab.ContentService using SQLite.
type ContentService struct {
	db *DB
}

// NewContentService creates a new ContentService.
func NewContentService(db *DB) *ContentService {
	return &ContentService{db: db}
}

// SaveContent stores a content record. A record whose URL and fingerprints
// are already stored is not inserted again; c takes the stored ID and
// creation time instead. When c.ArticleID is set the article it was
// promoted from is removed in the same transaction.
func (s *ContentService) SaveContent(ctx context.Context, c *newsgrab.Content) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	meta, err := encodeMeta(c.Meta)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert("contents").
		Columns(contentColumns...).
		Values(c.ID, c.ArticleID, c.Source, c.URL, c.URLRSS, nullTime(c.PubTS), c.Title, c.Text, c.HTML,
			c.TextMD5, c.HTMLMD5, c.ParserClassname, meta, formatTime(c.CreatedAt)).
		Suffix("ON CONFLICT (url, text_md5, html_md5) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if inserted == 0 {
		var createdAt string
		err := tx.QueryRowContext(ctx,
			"SELECT id, created_at FROM contents WHERE url = ? AND text_md5 = ? AND html_md5 = ?",
			c.URL, c.TextMD5, c.HTMLMD5).Scan(&c.ID, &createdAt)
		if err != nil {
			return fmt.Errorf("failed to find existing content: %w", err)
		}
		if c.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return err
		}
	}

	if c.ArticleID != "" {
		if _, err := tx.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", c.ArticleID); err != nil {
			return fmt.Errorf("failed to resolve article: %w", err)
		}
	}

	return tx.Commit()
}

// FindContentByID retrieves a content record by ID.
func (s *ContentService) FindContentByID(ctx context.Context, id string) (*newsgrab.Content, error) {
	query, args, err := sq.Select(contentColumns...).From("contents").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanContent(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, newsgrab.Errorf(newsgrab.ENOTFOUND, "content not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindContents retrieves content records matching the filter, newest first.
func (s *ContentService) FindContents(ctx context.Context, filter newsgrab.ContentFilter) ([]*newsgrab.Content, error) {
	b := sq.Select(contentColumns...).From("contents")

	if filter.ID != nil {
		b = b.Where(sq.Eq{"id": *filter.ID})
	}
	if filter.Source != nil {
		b = b.Where(sq.Eq{"source": *filter.Source})
	}
	if filter.URL != nil {
		b = b.Where(sq.Eq{"url": *filter.URL})
	}
	if filter.CreatedBefore != nil {
		b = b.Where(sq.Lt{"created_at": formatTime(*filter.CreatedBefore)})
	}

	b = paginate(b.OrderBy("created_at DESC", "id ASC"), filter.Limit, filter.Offset)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []*newsgrab.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}

	return contents, rows.Err()
}

func scanContent(row rowScanner) (*newsgrab.Content, error) {
	var c newsgrab.Content
	var pubTS *string
	var meta, createdAt string

	if err := row.Scan(&c.ID, &c.ArticleID, &c.Source, &c.URL, &c.URLRSS, &pubTS, &c.Title, &c.Text, &c.HTML,
		&c.TextMD5, &c.HTMLMD5, &c.ParserClassname, &meta, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if c.PubTS, err = parseNullTime(pubTS, "pub_ts"); err != nil {
		return nil, err
	}
	if c.Meta, err = decodeMeta(meta); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
