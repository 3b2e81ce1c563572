package goquery

// EInfoName identifies the e-info.org.tw adapter.
const EInfoName = "e-info.org.tw"

// EInfoConfig locates articles on e-info.org.tw (環境資訊中心).
// Article pages carry the headline in .title and the body in #page,
// both inside the .maincol2-padding column.
var EInfoConfig = SelectorConfig{
	Title:   ".maincol2-padding .title",
	Body:    ".maincol2-padding #page",
	MinHits: 2,
}

// NewEInfoAdapter creates the adapter for e-info.org.tw.
func NewEInfoAdapter() *SelectorAdapter {
	return &SelectorAdapter{name: EInfoName, config: EInfoConfig}
}
