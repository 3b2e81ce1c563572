package mock

import (
	"time"

	"github.com/fwojciec/newsgrab"
)

var _ newsgrab.Adapter = (*Adapter)(nil)

// Adapter is a mock implementation of newsgrab.Adapter.
type Adapter struct {
	NameFn    func() string
	ExtractFn func(p *newsgrab.Payload) (*newsgrab.Extraction, error)
}

func (a *Adapter) Name() string {
	return a.NameFn()
}

func (a *Adapter) Extract(p *newsgrab.Payload) (*newsgrab.Extraction, error) {
	return a.ExtractFn(p)
}

var _ newsgrab.AdapterResolver = (*AdapterResolver)(nil)

// AdapterResolver is a mock implementation of newsgrab.AdapterResolver.
type AdapterResolver struct {
	ResolveFn func(sourceID string, at time.Time) (newsgrab.Adapter, error)
}

func (r *AdapterResolver) Resolve(sourceID string, at time.Time) (newsgrab.Adapter, error) {
	return r.ResolveFn(sourceID, at)
}
