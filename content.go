package newsgrab

import (
	"context"
	"time"
)

// Content represents a successfully extracted article.
type Content struct {
	ID string `json:"id"`

	// ArticleID is set when the content was promoted from a stored
	// Article by a catch-up pass.
	ArticleID string `json:"articleId,omitempty"`

	Source string     `json:"source"`
	URL    string     `json:"url"`
	URLRSS string     `json:"urlRss"`
	PubTS  *time.Time `json:"pubTs,omitempty"`

	Title string `json:"title"`
	Text  string `json:"text"`
	HTML  string `json:"html"`

	TextMD5 string `json:"textMd5"`
	HTMLMD5 string `json:"htmlMd5"`

	// ParserClassname names the adapter that produced the record.
	ParserClassname string `json:"parserClassname"`

	Meta      map[string]string `json:"meta,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Validate returns an error if the content contains invalid fields.
func (c *Content) Validate() error {
	if c.URLRSS == "" {
		return Errorf(EINVALID, "content url_rss required")
	}
	if c.Title == "" {
		return Errorf(EINVALID, "content title required")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "content text required")
	}
	if c.HTML == "" {
		return Errorf(EINVALID, "content html required")
	}
	if c.TextMD5 == "" || c.HTMLMD5 == "" {
		return Errorf(EINVALID, "content fingerprints required")
	}
	return nil
}

// ContentService represents a service for managing content records.
type ContentService interface {
	// SaveContent persists a content record. Records with the same URL and
	// fingerprints as an existing record are not stored twice; the existing
	// ID is assigned instead. When ArticleID is set the article is removed.
	SaveContent(ctx context.Context, c *Content) error

	// FindContentByID retrieves a content record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindContentByID(ctx context.Context, id string) (*Content, error)

	// FindContents retrieves content records matching the filter.
	FindContents(ctx context.Context, filter ContentFilter) ([]*Content, error)
}

// ContentFilter represents a filter for FindContents.
type ContentFilter struct {
	ID     *string `json:"id"`
	Source *string `json:"source"`
	URL    *string `json:"url"`

	// CreatedBefore limits results to records created before the time.
	CreatedBefore *time.Time `json:"createdBefore"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
