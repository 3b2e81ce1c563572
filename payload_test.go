package newsgrab_test

import (
	"testing"
	"time"

	"github.com/fwojciec/newsgrab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_Document(t *testing.T) {
	t.Parallel()

	t.Run("parses response once", func(t *testing.T) {
		t.Parallel()

		p := &newsgrab.Payload{Response: []byte("<html><body><p>hi</p></body></html>")}

		doc, err := p.Document()
		require.NoError(t, err)
		require.NotNil(t, doc)

		again, err := p.Document()
		require.NoError(t, err)
		assert.Same(t, doc, again)
	})

	t.Run("empty response is an extraction failure", func(t *testing.T) {
		t.Parallel()

		p := &newsgrab.Payload{}

		_, err := p.Document()
		assert.Equal(t, newsgrab.EEXTRACT, newsgrab.ErrorCode(err))
	})
}

func TestPayload_Clone(t *testing.T) {
	t.Parallel()

	t.Run("copies response and meta", func(t *testing.T) {
		t.Parallel()

		ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		p := &newsgrab.Payload{
			URL:      "http://example.com/a",
			Response: []byte("abc"),
			Meta:     map[string]string{"k": "v"},
			PubTS:    &ts,
		}

		c := p.Clone()
		c.Response[0] = 'x'
		c.Meta["k"] = "changed"
		*c.PubTS = ts.Add(time.Hour)

		assert.Equal(t, []byte("abc"), p.Response)
		assert.Equal(t, "v", p.Meta["k"])
		assert.Equal(t, ts, *p.PubTS)
		assert.Equal(t, p.URL, c.URL)
	})

	t.Run("nil meta becomes empty map", func(t *testing.T) {
		t.Parallel()

		c := (&newsgrab.Payload{}).Clone()
		require.NotNil(t, c.Meta)
		c.Meta["k"] = "v"
	})
}

func TestArticle_Payload(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	a := &newsgrab.Article{
		ID:        "a1",
		Source:    "e-info.org.tw",
		URL:       "http://e-info.org.tw/node/1",
		URLRSS:    "http://e-info.org.tw/rss.xml",
		Meta:      map[string]string{newsgrab.MetaPubDate: "2024-01-30"},
		Response:  []byte("<html></html>"),
		CreatedAt: created,
	}

	p := a.Payload()

	assert.Equal(t, a.URL, p.URL)
	assert.Equal(t, a.Source, p.Source)
	assert.Equal(t, a.Response, p.Response)
	assert.Equal(t, created, p.FetchedAt)
	assert.Equal(t, map[string]string{
		newsgrab.MetaPubDate: "2024-01-30",
		newsgrab.MetaURLRSS:  "http://e-info.org.tw/rss.xml",
	}, p.Meta)
	assert.NotContains(t, a.Meta, newsgrab.MetaURLRSS)
}

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, newsgrab.EINVALID, newsgrab.ErrorCode((&newsgrab.Article{ResponseMD5: "x"}).Validate()))
	assert.Equal(t, newsgrab.EINVALID, newsgrab.ErrorCode((&newsgrab.Article{URLRSS: "x"}).Validate()))
	assert.NoError(t, (&newsgrab.Article{URLRSS: "x", ResponseMD5: "y"}).Validate())
}

func TestContent_Validate(t *testing.T) {
	t.Parallel()

	valid := newsgrab.Content{
		URLRSS:  "http://e-info.org.tw/rss.xml",
		Title:   "T",
		Text:    "t",
		HTML:    "<p>t</p>",
		TextMD5: "a",
		HTMLMD5: "b",
	}
	assert.NoError(t, valid.Validate())

	noFeed := valid
	noFeed.URLRSS = ""
	assert.Equal(t, newsgrab.EINVALID, newsgrab.ErrorCode(noFeed.Validate()))

	noHash := valid
	noHash.HTMLMD5 = ""
	assert.Equal(t, newsgrab.EINVALID, newsgrab.ErrorCode(noHash.Validate()))
}
