package newsgrab

import "time"

// Extraction holds the fields an adapter pulls out of a page.
type Extraction struct {
	Title string
	Text  string // plain-text body
	HTML  string // body markup
}

// Validate returns EEXTRACT if any field is empty.
func (e *Extraction) Validate() error {
	switch {
	case e == nil:
		return Errorf(EEXTRACT, "no extraction")
	case e.Title == "":
		return Errorf(EEXTRACT, "empty title")
	case e.Text == "":
		return Errorf(EEXTRACT, "empty text")
	case e.HTML == "":
		return Errorf(EEXTRACT, "empty html")
	}
	return nil
}

// Adapter extracts content from pages of one source.
// Adapters are stateless and must not persist anything.
type Adapter interface {
	// Name identifies the adapter in stored records (e.g., "goquery.e-info").
	Name() string

	// Extract returns the title, text and HTML body of the page.
	// When the page does not have the expected shape it returns an error
	// with code EEXTRACT and no partial result. Missing optional metadata
	// is never a reason to fail.
	Extract(p *Payload) (*Extraction, error)
}

// AdapterResolver selects the adapter responsible for a source.
type AdapterResolver interface {
	// Resolve returns the adapter registered for the source if it is
	// eligible to run at the given time.
	// Returns ENOTFOUND if no adapter is registered and EINVALID if the
	// registered adapter is outside its eligibility window.
	Resolve(sourceID string, at time.Time) (Adapter, error)
}
