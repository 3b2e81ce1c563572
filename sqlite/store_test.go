package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/dispatch"
	"github.com/fwojciec/newsgrab/goquery"
	"github.com/fwojciec/newsgrab/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Dispatch(t *testing.T) {
	t.Parallel()

	const failing = `<html><body><p>Service Unavailable</p></body></html>`
	const matching = `<html><body><div class="maincol2-padding"><h1 class="title">標題</h1><div id="page"><p>內文</p></div></div></body></html>`

	payload := func(page string) *newsgrab.Payload {
		return &newsgrab.Payload{
			URL:      "http://e-info.org.tw/node/9",
			Source:   goquery.EInfoName,
			Response: []byte(page),
			Meta:     map[string]string{newsgrab.MetaURLRSS: "http://e-info.org.tw/rss.xml"},
		}
	}

	t.Run("failed article is promoted by catch-up", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewStore(db)
		d := dispatch.NewDispatcher(store, nil)
		adapter := goquery.NewEInfoAdapter()
		ctx := context.Background()

		res, err := d.Dispatch(ctx, payload(failing), adapter)
		require.NoError(t, err)
		require.Equal(t, dispatch.OutcomeArticle, res.Outcome)

		stored, err := store.FindArticleByID(ctx, res.Article.ID)
		require.NoError(t, err)

		// Retrying the same response fails again.
		res, err = d.CatchUp(ctx, stored, adapter)
		require.NoError(t, err)
		require.Equal(t, dispatch.OutcomeArticle, res.Outcome)

		stored, err = store.FindArticleByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Attempts)

		// A stored response that now matches is promoted.
		stored.Response = []byte(matching)
		res, err = d.CatchUp(ctx, stored, adapter)
		require.NoError(t, err)
		require.Equal(t, dispatch.OutcomeContent, res.Outcome)

		articles, err := store.FindArticles(ctx, newsgrab.ArticleFilter{})
		require.NoError(t, err)
		assert.Empty(t, articles)

		contents, err := store.FindContents(ctx, newsgrab.ContentFilter{})
		require.NoError(t, err)
		require.Len(t, contents, 1)
		assert.Equal(t, "http://e-info.org.tw/rss.xml", contents[0].URLRSS)
		assert.Equal(t, stored.ID, contents[0].ArticleID)
	})

	t.Run("repeated dispatch stores content once", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewStore(db)
		d := dispatch.NewDispatcher(store, nil)
		now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		d.Now = func() time.Time { return now }
		ctx := context.Background()

		first, err := d.Dispatch(ctx, payload(matching), goquery.NewEInfoAdapter())
		require.NoError(t, err)

		now = now.Add(time.Hour)
		second, err := d.Dispatch(ctx, payload(matching), goquery.NewEInfoAdapter())
		require.NoError(t, err)

		assert.Equal(t, first.Content.ID, second.Content.ID)

		contents, err := store.FindContents(ctx, newsgrab.ContentFilter{})
		require.NoError(t, err)
		assert.Len(t, contents, 1)
	})

	t.Run("revisit records history", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewStore(db)
		d := dispatch.NewDispatcher(store, nil)
		ctx := context.Background()

		res, err := d.Dispatch(ctx, payload(matching), goquery.NewEInfoAdapter())
		require.NoError(t, err)

		_, err = d.Revisit(ctx, payload(matching), goquery.NewEInfoAdapter(), res.Content)
		require.NoError(t, err)

		history, err := store.FindRevisits(ctx, newsgrab.RevisitFilter{ContentID: &res.Content.ID})
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.False(t, history[0].Changed)
	})
}
