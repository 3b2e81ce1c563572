package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fwojciec/newsgrab"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ newsgrab.ArticleService = (*ArticleService)(nil)

var articleColumns = []string{
	"id", "source", "url", "url_rss", "pub_ts", "meta", "response", "response_md5",
	"parser", "parse_error", "attempts", "created_at", "updated_at",
}

// ArticleService implements newsgrab.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// SaveArticle stores an article. An article with an existing ID replaces
// the stored row except for its creation time.
func (s *ArticleService) SaveArticle(ctx context.Context, a *newsgrab.Article) error {
	if err := a.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	if a.Attempts < 1 {
		a.Attempts = 1
	}

	meta, err := encodeMeta(a.Meta)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert("articles").
		Columns(articleColumns...).
		Values(a.ID, a.Source, a.URL, a.URLRSS, nullTime(a.PubTS), meta, a.Response, a.ResponseMD5,
			a.ParserClassname, a.ParseError, a.Attempts, formatTime(a.CreatedAt), formatTime(a.UpdatedAt)).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			source = excluded.source,
			url = excluded.url,
			url_rss = excluded.url_rss,
			pub_ts = excluded.pub_ts,
			meta = excluded.meta,
			response = excluded.response,
			response_md5 = excluded.response_md5,
			parser = excluded.parser,
			parse_error = excluded.parse_error,
			attempts = excluded.attempts,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*newsgrab.Article, error) {
	query, args, err := sq.Select(articleColumns...).From("articles").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	a, err := scanArticle(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, newsgrab.Errorf(newsgrab.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindArticles retrieves articles matching the filter, oldest first so
// catch-up passes retry the longest waiting articles before newer ones.
func (s *ArticleService) FindArticles(ctx context.Context, filter newsgrab.ArticleFilter) ([]*newsgrab.Article, error) {
	b := sq.Select(articleColumns...).From("articles")

	if filter.ID != nil {
		b = b.Where(sq.Eq{"id": *filter.ID})
	}
	if filter.Source != nil {
		b = b.Where(sq.Eq{"source": *filter.Source})
	}
	if filter.MaxAttempts > 0 {
		b = b.Where(sq.Lt{"attempts": filter.MaxAttempts})
	}

	b = paginate(b.OrderBy("created_at ASC", "id ASC"), filter.Limit, filter.Offset)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*newsgrab.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return newsgrab.Errorf(newsgrab.ENOTFOUND, "article not found")
	}
	return nil
}

func scanArticle(row rowScanner) (*newsgrab.Article, error) {
	var a newsgrab.Article
	var pubTS *string
	var meta, createdAt, updatedAt string

	if err := row.Scan(&a.ID, &a.Source, &a.URL, &a.URLRSS, &pubTS, &meta, &a.Response, &a.ResponseMD5,
		&a.ParserClassname, &a.ParseError, &a.Attempts, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if a.PubTS, err = parseNullTime(pubTS, "pub_ts"); err != nil {
		return nil, err
	}
	if a.Meta, err = decodeMeta(meta); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &a, nil
}
