// Package dateparse implements newsgrab.DateParser on top of
// araddon/dateparse, which accepts the many date layouts found in feeds
// without knowing the layout in advance.
package dateparse

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/newsgrab"
)

// Ensure Parser implements newsgrab.DateParser at compile time.
var _ newsgrab.DateParser = (*Parser)(nil)

// Parser parses publish dates of unknown layout.
type Parser struct {
	// loc applies to values that carry no zone of their own.
	loc *time.Location
}

// NewParser creates a Parser. Values without a zone are read in loc,
// or in UTC when loc is nil.
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	return &Parser{loc: loc}
}

// ParseDate parses value and returns the instant in UTC.
// Returns EINVALID if the value is empty or not a recognizable date.
func (p *Parser) ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, newsgrab.Errorf(newsgrab.EINVALID, "empty date")
	}

	t, err := dateparse.ParseIn(value, p.loc)
	if err != nil {
		return time.Time{}, newsgrab.Errorf(newsgrab.EINVALID, "unrecognized date %q", value)
	}
	return t.UTC(), nil
}
