package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/newsgrab"
)

// Ensure LoggingAdapter implements newsgrab.Adapter.
var _ newsgrab.Adapter = (*LoggingAdapter)(nil)

// LoggingAdapter wraps an Adapter with debug logging of each extraction.
// Failed extractions are expected and logged at debug level too; the
// dispatcher records them as articles.
type LoggingAdapter struct {
	next   newsgrab.Adapter
	logger *slog.Logger
}

// NewLoggingAdapter creates a new LoggingAdapter.
func NewLoggingAdapter(next newsgrab.Adapter, logger *slog.Logger) *LoggingAdapter {
	return &LoggingAdapter{next: next, logger: logger}
}

// Name delegates to the wrapped adapter so stored records name the real parser.
func (a *LoggingAdapter) Name() string {
	return a.next.Name()
}

// Extract logs the extraction and delegates to the wrapped adapter.
func (a *LoggingAdapter) Extract(p *newsgrab.Payload) (ext *newsgrab.Extraction, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"adapter", a.next.Name(),
			"url", p.URL,
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", newsgrab.ErrorCode(err), "reason", newsgrab.ErrorMessage(err))
		} else if ext != nil {
			attrs = append(attrs, "title", ext.Title, "chars", len(ext.Text))
		}
		a.logger.Debug("extract", attrs...)
	}(time.Now())
	return a.next.Extract(p)
}

// Ensure LoggingResolver implements newsgrab.AdapterResolver.
var _ newsgrab.AdapterResolver = (*LoggingResolver)(nil)

// LoggingResolver wraps an AdapterResolver so every resolved adapter logs
// its extractions.
type LoggingResolver struct {
	next   newsgrab.AdapterResolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next newsgrab.AdapterResolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and wraps the adapter.
func (r *LoggingResolver) Resolve(sourceID string, at time.Time) (newsgrab.Adapter, error) {
	adapter, err := r.next.Resolve(sourceID, at)
	if err != nil {
		r.logger.Warn("resolve adapter",
			"source", sourceID,
			"at", at,
			"err", err,
		)
		return nil, err
	}
	return NewLoggingAdapter(adapter, r.logger), nil
}
