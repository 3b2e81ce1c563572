package main

import (
	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/goquery"
	"github.com/fwojciec/newsgrab/readability"
	"github.com/fwojciec/newsgrab/trafilatura"
	"github.com/fwojciec/newsgrab/yaml"
)

// SelectorAdapterName configures a source with its own CSS selectors
// taken from the source options.
const SelectorAdapterName = "selector"

// NewAdapter creates the adapter a source names.
func NewAdapter(src *newsgrab.Source) (newsgrab.Adapter, error) {
	switch src.Adapter {
	case goquery.EInfoName:
		return goquery.NewEInfoAdapter(), nil
	case SelectorAdapterName:
		return goquery.NewSelectorAdapterFromOptions(src.ID, src.Options)
	case trafilatura.Name:
		return trafilatura.NewAdapter(), nil
	case readability.Name:
		return readability.NewAdapter(), nil
	}
	return nil, newsgrab.Errorf(newsgrab.EINVALID, "source %q: unknown adapter %q", src.ID, src.Adapter)
}

// buildRegistry registers an adapter for every configured source.
func buildRegistry(cfg *yaml.Config) (*newsgrab.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := newsgrab.NewRegistry()
	for _, src := range cfg.NewsSources() {
		adapter, err := NewAdapter(src)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(src, adapter); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
