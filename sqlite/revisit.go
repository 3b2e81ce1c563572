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
var _ newsgrab.RevisitService = (*RevisitService)(nil)

var revisitColumns = []string{
	"id", "content_id", "source", "url", "url_rss", "pub_ts", "title", "text", "html",
	"text_md5", "html_md5", "parser", "meta", "changed", "created_at",
}

// RevisitService implements newsgrab.RevisitService using SQLite.
type RevisitService struct {
	db *DB
}

// NewRevisitService creates a new RevisitService.
func NewRevisitService(db *DB) *RevisitService {
	return &RevisitService{db: db}
}

// SaveRevisit appends a snapshot. Returns ENOTFOUND if the original
// content does not exist.
func (s *RevisitService) SaveRevisit(ctx context.Context, r *newsgrab.Revisit) error {
	if r.ContentID == "" {
		return newsgrab.Errorf(newsgrab.EINVALID, "revisit content id required")
	}
	if err := r.Content.Validate(); err != nil {
		return err
	}

	r.ID = uuid.New().String()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	meta, err := encodeMeta(r.Meta)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert("revisits").
		Columns(revisitColumns...).
		Values(r.ID, r.ContentID, r.Source, r.URL, r.URLRSS, nullTime(r.PubTS), r.Title, r.Text, r.HTML,
			r.TextMD5, r.HTMLMD5, r.ParserClassname, meta, r.Changed, formatTime(r.CreatedAt)).
		ToSql()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM contents WHERE id = ?", r.ContentID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return newsgrab.Errorf(newsgrab.ENOTFOUND, "content %q not found", r.ContentID)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// FindRevisits retrieves snapshots matching the filter, newest first.
func (s *RevisitService) FindRevisits(ctx context.Context, filter newsgrab.RevisitFilter) ([]*newsgrab.Revisit, error) {
	b := sq.Select(revisitColumns...).From("revisits")

	if filter.ContentID != nil {
		b = b.Where(sq.Eq{"content_id": *filter.ContentID})
	}
	if filter.Changed != nil {
		b = b.Where(sq.Eq{"changed": *filter.Changed})
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

	var revisits []*newsgrab.Revisit
	for rows.Next() {
		r, err := scanRevisit(rows)
		if err != nil {
			return nil, err
		}
		revisits = append(revisits, r)
	}

	return revisits, rows.Err()
}

func scanRevisit(row rowScanner) (*newsgrab.Revisit, error) {
	var r newsgrab.Revisit
	var pubTS *string
	var meta, createdAt string

	if err := row.Scan(&r.ID, &r.ContentID, &r.Source, &r.URL, &r.URLRSS, &pubTS, &r.Title, &r.Text, &r.HTML,
		&r.TextMD5, &r.HTMLMD5, &r.ParserClassname, &meta, &r.Changed, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if r.PubTS, err = parseNullTime(pubTS, "pub_ts"); err != nil {
		return nil, err
	}
	if r.Meta, err = decodeMeta(meta); err != nil {
		return nil, err
	}
	if r.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &r, nil
}
