package newsgrab

import (
	"context"
	"maps"
	"time"
)

// Article represents a fetch attempt whose extraction failed.
// It keeps the raw response so a catch-up pass can retry extraction
// without fetching the page again.
type Article struct {
	ID     string     `json:"id"`
	Source string     `json:"source"`
	URL    string     `json:"url"`
	URLRSS string     `json:"urlRss"`
	PubTS  *time.Time `json:"pubTs,omitempty"`

	Meta map[string]string `json:"meta,omitempty"`

	Response    []byte `json:"-"`
	ResponseMD5 string `json:"responseMd5"`

	// ParserClassname names the adapter that failed, ParseError why.
	ParserClassname string `json:"parserClassname"`
	ParseError      string `json:"parseError,omitempty"`

	// Attempts counts extraction attempts, including the first visit.
	Attempts int `json:"attempts"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URLRSS == "" {
		return Errorf(EINVALID, "article url_rss required")
	}
	if a.ResponseMD5 == "" {
		return Errorf(EINVALID, "article response_md5 required")
	}
	return nil
}

// Payload rebuilds the payload of the original fetch attempt.
// The feed URL is moved back into meta so the payload normalizes
// exactly like a fresh fetch.
func (a *Article) Payload() *Payload {
	meta := maps.Clone(a.Meta)
	if meta == nil {
		meta = make(map[string]string)
	}
	if a.URLRSS != "" {
		meta[MetaURLRSS] = a.URLRSS
	}
	return &Payload{
		URL:       a.URL,
		Source:    a.Source,
		Response:  a.Response,
		Meta:      meta,
		FetchedAt: a.CreatedAt,
	}
}

// ArticleService represents a service for managing article records.
type ArticleService interface {
	// SaveArticle persists an article. An article with an existing ID
	// replaces the stored one.
	SaveArticle(ctx context.Context, a *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID     *string `json:"id"`
	Source *string `json:"source"`

	// MaxAttempts excludes articles that already failed this many times.
	MaxAttempts int `json:"maxAttempts"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
