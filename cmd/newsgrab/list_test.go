package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/newsgrab"
	main "github.com/fwojciec/newsgrab/cmd/newsgrab"
	"github.com/fwojciec/newsgrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticlesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists articles with attempts and parse error", func(t *testing.T) {
		t.Parallel()

		var gotFilter newsgrab.ArticleFilter
		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, filter newsgrab.ArticleFilter) ([]*newsgrab.Article, error) {
				gotFilter = filter
				return []*newsgrab.Article{
					{ID: "art-1", URL: "http://e-info.org.tw/node/1", Attempts: 3, ParseError: "matched 0 of 2 required elements"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Articles: articles,
		}

		cmd := &main.ArticlesCmd{Source: "e-info.org.tw", Limit: 10}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, gotFilter.Source)
		assert.Equal(t, "e-info.org.tw", *gotFilter.Source)
		assert.Equal(t, 10, gotFilter.Limit)
		assert.Contains(t, stdout.String(), "art-1  3  http://e-info.org.tw/node/1  matched 0 of 2 required elements")
	})

	t.Run("shows message when nothing failed", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(context.Context, newsgrab.ArticleFilter) ([]*newsgrab.Article, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Articles: articles}

		require.NoError(t, (&main.ArticlesCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No failed articles.")
	})

	t.Run("reports store error", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(context.Context, newsgrab.ArticleFilter) ([]*newsgrab.Article, error) {
				return nil, errors.New("database locked")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Articles: articles}

		err := (&main.ArticlesCmd{}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Internal error")
	})
}

func TestContentsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists contents with local publish date", func(t *testing.T) {
		t.Parallel()

		// 2024-01-29 18:00 UTC is already the 30th in Taipei.
		pub := time.Date(2024, 1, 29, 18, 0, 0, 0, time.UTC)
		contents := &mock.ContentService{
			FindContentsFn: func(context.Context, newsgrab.ContentFilter) ([]*newsgrab.Content, error) {
				return []*newsgrab.Content{
					{ID: "c-1", URL: "http://e-info.org.tw/node/1", Title: "濕地保育法 三讀通過", PubTS: &pub},
					{ID: "c-2", URL: "http://e-info.org.tw/node/2", Title: "無日期"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Location: time.FixedZone("CST", 8*3600),
			Contents: contents,
		}

		require.NoError(t, (&main.ContentsCmd{}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "c-1  2024-01-30  http://e-info.org.tw/node/1  濕地保育法 三讀通過")
		assert.Contains(t, output, "c-2  ----------  http://e-info.org.tw/node/2  無日期")
	})

	t.Run("shows hint when empty", func(t *testing.T) {
		t.Parallel()

		contents := &mock.ContentService{
			FindContentsFn: func(context.Context, newsgrab.ContentFilter) ([]*newsgrab.Content, error) {
				return []*newsgrab.Content{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Contents: contents}

		require.NoError(t, (&main.ContentsCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "newsgrab visit")
	})
}

func TestSourcesCmd_Run(t *testing.T) {
	t.Parallel()

	registry := newsgrab.NewRegistry()
	expire := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, registry.Register(&newsgrab.Source{
		ID:         "e-info.org.tw",
		Name:       "環境資訊中心",
		Adapter:    "e-info.org.tw",
		Feeds:      []newsgrab.Feed{{Title: "全部文章", URL: "http://e-info.org.tw/rss.xml"}},
		DateOnline: time.Date(2013, 7, 26, 0, 0, 0, 0, time.UTC),
		DateExpire: &expire,
	}, &mock.Adapter{}))

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Registry: registry}

	require.NoError(t, (&main.SourcesCmd{}).Run(deps))

	output := stdout.String()
	assert.Contains(t, output, "e-info.org.tw  環境資訊中心  adapter=e-info.org.tw  online=2013-07-26 - 2020-01-01")
	assert.Contains(t, output, "全部文章  http://e-info.org.tw/rss.xml")
}
