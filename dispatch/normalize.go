package dispatch

import (
	"strings"

	"github.com/fwojciec/newsgrab"
)

// normalize returns a copy of p with the declared meta keys applied:
//
//   - url_rss is required and moves from Meta to URLRSS.
//   - pub_date stays in Meta; PubTS is derived from it when it parses.
//
// The title hint is demoted later, once extraction has produced a title.
func normalize(p *newsgrab.Payload, dates newsgrab.DateParser) (*newsgrab.Payload, error) {
	np := p.Clone()

	feed := strings.TrimSpace(np.Meta[newsgrab.MetaURLRSS])
	if feed == "" {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "payload %q missing meta %s", p.URL, newsgrab.MetaURLRSS)
	}
	np.URLRSS = feed
	delete(np.Meta, newsgrab.MetaURLRSS)

	if raw := strings.TrimSpace(np.Meta[newsgrab.MetaPubDate]); raw != "" && dates != nil {
		if ts, err := dates.ParseDate(raw); err == nil {
			ts = ts.UTC()
			np.PubTS = &ts
		}
	}

	return np, nil
}
