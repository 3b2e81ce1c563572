package newsgrab

import "context"

// Revisit is a point-in-time snapshot of a previously stored Content,
// re-extracted to detect drift. The original Content is never modified.
type Revisit struct {
	Content

	// ContentID references the original content record.
	ContentID string `json:"contentId"`

	// Changed reports whether the text or HTML fingerprint differs
	// from the original record.
	Changed bool `json:"changed"`
}

// RevisitService represents a service for managing revisit history.
type RevisitService interface {
	// SaveRevisit appends a snapshot to the revisit history.
	SaveRevisit(ctx context.Context, r *Revisit) error

	// FindRevisits retrieves snapshots matching the filter, newest first.
	FindRevisits(ctx context.Context, filter RevisitFilter) ([]*Revisit, error)
}

// RevisitFilter represents a filter for FindRevisits.
type RevisitFilter struct {
	ContentID *string `json:"contentId"`
	Changed   *bool   `json:"changed"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
