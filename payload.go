package newsgrab

import (
	"bytes"
	"maps"
	"time"

	"golang.org/x/net/html"
)

// Meta keys with a defined meaning. Any other key is source-defined and is
// carried through to the stored record untouched.
const (
	// MetaURLRSS is the feed the article was discovered from. Required.
	MetaURLRSS = "url_rss"

	// MetaPubDate is the publish date string as provided by the source.
	MetaPubDate = "pub_date"

	// MetaTitle is a title hint provided by the feed.
	MetaTitle = "title"
)

// Payload represents a single fetch attempt.
// It is owned by exactly one dispatch call.
type Payload struct {
	URL    string `json:"url"`
	Source string `json:"source"`

	// Response holds the raw fetched bytes.
	Response []byte `json:"-"`

	// Doc is the pre-parsed response, if the fetcher parsed it.
	Doc *html.Node `json:"-"`

	// Meta holds source-provided metadata keyed by Meta* constants
	// or source-defined keys.
	Meta map[string]string `json:"meta"`

	// Fields populated during normalization.
	URLRSS string     `json:"urlRss,omitempty"`
	PubTS  *time.Time `json:"pubTs,omitempty"`

	FetchedAt time.Time `json:"fetchedAt"`
}

// Document returns the parsed response, parsing Response when the fetcher
// did not supply a document.
func (p *Payload) Document() (*html.Node, error) {
	if p.Doc != nil {
		return p.Doc, nil
	}
	if len(p.Response) == 0 {
		return nil, Errorf(EEXTRACT, "empty response")
	}
	doc, err := html.Parse(bytes.NewReader(p.Response))
	if err != nil {
		return nil, Errorf(EEXTRACT, "failed to parse response: %v", err)
	}
	p.Doc = doc
	return doc, nil
}

// Clone returns a copy of the payload whose response and metadata can be
// modified without affecting p. The parsed document is shared; adapters
// treat it as read-only.
func (p *Payload) Clone() *Payload {
	other := *p
	other.Response = bytes.Clone(p.Response)
	other.Meta = maps.Clone(p.Meta)
	if other.Meta == nil {
		other.Meta = make(map[string]string)
	}
	if p.PubTS != nil {
		ts := *p.PubTS
		other.PubTS = &ts
	}
	return &other
}
