package newsgrab

import "time"

// Feed is a listing a source publishes articles through.
type Feed struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Source describes a news site and the adapter that understands its pages.
type Source struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Adapter string            `json:"adapter"`
	Feeds   []Feed            `json:"feeds"`
	Options map[string]string `json:"options,omitempty"`

	// DateOnline is when the adapter becomes effective.
	DateOnline time.Time `json:"dateOnline"`

	// DateExpire is when the adapter stops being effective.
	// Nil means the adapter never expires.
	DateExpire *time.Time `json:"dateExpire,omitempty"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.ID == "" {
		return Errorf(EINVALID, "source id required")
	}
	if s.Adapter == "" {
		return Errorf(EINVALID, "source %q adapter required", s.ID)
	}
	if s.DateExpire != nil && !s.DateExpire.After(s.DateOnline) {
		return Errorf(EINVALID, "source %q expires before it goes online", s.ID)
	}
	return nil
}

// Eligible reports whether the source's adapter may run at the given time.
func (s *Source) Eligible(at time.Time) bool {
	if at.Before(s.DateOnline) {
		return false
	}
	return s.DateExpire == nil || at.Before(*s.DateExpire)
}

// FeedURL returns the URL of the first feed, or an empty string.
func (s *Source) FeedURL() string {
	if len(s.Feeds) == 0 {
		return ""
	}
	return s.Feeds[0].URL
}
