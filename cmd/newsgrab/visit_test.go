package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/newsgrab"
	main "github.com/fwojciec/newsgrab/cmd/newsgrab"
	"github.com/fwojciec/newsgrab/dispatch"
	"github.com/fwojciec/newsgrab/goquery"
	"github.com/fwojciec/newsgrab/ingest"
	"github.com/fwojciec/newsgrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><body><div class="maincol2-padding"><h1 class="title">標題</h1><div id="page"><p>內文</p></div></div></body></html>`

func eInfoRegistry(t *testing.T) *newsgrab.Registry {
	t.Helper()
	registry := newsgrab.NewRegistry()
	require.NoError(t, registry.Register(&newsgrab.Source{
		ID:         goquery.EInfoName,
		Adapter:    goquery.EInfoName,
		Feeds:      []newsgrab.Feed{{URL: "http://e-info.org.tw/rss.xml"}},
		DateOnline: time.Date(2013, 7, 26, 0, 0, 0, 0, time.UTC),
	}, goquery.NewEInfoAdapter()))
	return registry
}

func TestVisitCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stores content using the source feed", func(t *testing.T) {
		t.Parallel()

		var saved *newsgrab.Content
		store := &mock.Store{
			SaveContentFn: func(_ context.Context, c *newsgrab.Content) error {
				saved = c
				return nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) ([]byte, error) {
				return []byte(articlePage), nil
			},
		}
		registry := eInfoRegistry(t)

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Registry: registry,
			Ingester: &ingest.Ingester{
				Fetcher:     fetcher,
				Adapters:    registry,
				Dispatcher:  dispatch.NewDispatcher(store, nil),
				RetryDelays: []time.Duration{},
			},
		}

		cmd := &main.VisitCmd{
			URLs:        []string{"http://e-info.org.tw/node/1"},
			Source:      goquery.EInfoName,
			Title:       "feed title",
			Concurrency: 1,
		}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, saved)
		assert.Equal(t, "http://e-info.org.tw/rss.xml", saved.URLRSS)
		assert.Equal(t, "標題", saved.Title)
		assert.Contains(t, stdout.String(), "[1/1] content http://e-info.org.tw/node/1")
		assert.Contains(t, stdout.String(), "Done: 1 contents, 0 articles, 0 revisits, 0 failed, 0 skipped")
	})

	t.Run("reports fetch failures on stderr", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) ([]byte, error) {
				return nil, errors.New("HTTP 503")
			},
		}
		registry := eInfoRegistry(t)

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Registry: registry,
			Ingester: &ingest.Ingester{
				Fetcher:     fetcher,
				Adapters:    registry,
				Dispatcher:  dispatch.NewDispatcher(&mock.Store{}, nil),
				RetryDelays: []time.Duration{},
			},
		}

		cmd := &main.VisitCmd{URLs: []string{"http://e-info.org.tw/node/1"}, Source: goquery.EInfoName}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stderr.String(), "fail http://e-info.org.tw/node/1: HTTP 503")
		assert.Contains(t, stdout.String(), "1 failed")
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Registry: eInfoRegistry(t),
		}

		err := (&main.VisitCmd{URLs: []string{"http://x/1"}, Source: "unknown"}).Run(deps)
		assert.Equal(t, newsgrab.ENOTFOUND, newsgrab.ErrorCode(err))
		assert.Contains(t, stderr.String(), `source "unknown" not configured`)
	})
}

func TestCatchupCmd_Run(t *testing.T) {
	t.Parallel()

	var gotFilter newsgrab.ArticleFilter
	articles := &mock.ArticleService{
		FindArticlesFn: func(_ context.Context, filter newsgrab.ArticleFilter) ([]*newsgrab.Article, error) {
			gotFilter = filter
			return []*newsgrab.Article{{
				ID:       "a-1",
				Source:   goquery.EInfoName,
				URL:      "http://e-info.org.tw/node/1",
				URLRSS:   "http://e-info.org.tw/rss.xml",
				Response: []byte(articlePage),
				Attempts: 1,
			}}, nil
		},
	}
	var promoted *newsgrab.Content
	store := &mock.Store{
		SaveContentFn: func(_ context.Context, c *newsgrab.Content) error {
			promoted = c
			return nil
		},
	}
	registry := eInfoRegistry(t)

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
		Ingester: &ingest.Ingester{
			Adapters:   registry,
			Dispatcher: dispatch.NewDispatcher(store, nil),
			Articles:   articles,
		},
	}

	cmd := &main.CatchupCmd{Source: goquery.EInfoName, MaxAttempts: 5, Concurrency: 2}
	require.NoError(t, cmd.Run(deps))

	require.NotNil(t, gotFilter.Source)
	assert.Equal(t, goquery.EInfoName, *gotFilter.Source)
	assert.Equal(t, 5, gotFilter.MaxAttempts)
	require.NotNil(t, promoted)
	assert.Equal(t, "a-1", promoted.ArticleID)
	assert.Contains(t, stdout.String(), "Done: 1 contents")
}

func TestRevisitCmd_Run(t *testing.T) {
	t.Parallel()

	var gotFilter newsgrab.ContentFilter
	contents := &mock.ContentService{
		FindContentsFn: func(_ context.Context, filter newsgrab.ContentFilter) ([]*newsgrab.Content, error) {
			gotFilter = filter
			return nil, nil
		},
	}

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
		Ingester: &ingest.Ingester{
			Contents: contents,
		},
	}

	before := time.Now()
	cmd := &main.RevisitCmd{Limit: 20, MinAge: 24 * time.Hour}
	require.NoError(t, cmd.Run(deps))

	assert.Nil(t, gotFilter.Source)
	assert.Equal(t, 20, gotFilter.Limit)
	require.NotNil(t, gotFilter.CreatedBefore)
	assert.WithinDuration(t, before.Add(-24*time.Hour), *gotFilter.CreatedBefore, time.Minute)
	assert.Contains(t, stdout.String(), "Processing 0 items")
}
