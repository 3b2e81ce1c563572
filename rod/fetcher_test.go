package rod

import (
	"errors"
	"testing"

	"github.com/fwojciec/newsgrab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBrowsers hands out instances without a browser process and records
// which of them were stopped.
type fakeBrowsers struct {
	launched []*instance
	stopped  map[*instance]bool
	fail     bool
}

func (b *fakeBrowsers) launch() (*instance, error) {
	if b.fail {
		return nil, errors.New("no chrome")
	}
	inst := &instance{}
	inst.stop = func() error {
		if b.stopped[inst] {
			return errors.New("stopped twice")
		}
		b.stopped[inst] = true
		return nil
	}
	b.launched = append(b.launched, inst)
	return inst, nil
}

func newFakeFetcher(t *testing.T, opts ...Option) (*Fetcher, *fakeBrowsers) {
	t.Helper()
	b := &fakeBrowsers{stopped: map[*instance]bool{}}
	f, err := newFetcher(b.launch, opts...)
	require.NoError(t, err)
	return f, b
}

func TestFetcher_Recycle(t *testing.T) {
	t.Parallel()

	t.Run("keeps a recycled browser until its pages are released", func(t *testing.T) {
		t.Parallel()

		f, b := newFakeFetcher(t, WithRecycleAfter(2))

		first, err := f.acquire()
		require.NoError(t, err)
		second, err := f.acquire()
		require.NoError(t, err)
		assert.Same(t, first, second)

		third, err := f.acquire()
		require.NoError(t, err)
		require.Len(t, b.launched, 2)
		assert.NotSame(t, first, third)
		assert.False(t, b.stopped[first], "old browser has pages in flight")

		f.release(first)
		assert.False(t, b.stopped[first])
		f.release(second)
		assert.True(t, b.stopped[first])

		f.release(third)
		assert.False(t, b.stopped[third])
	})

	t.Run("stops an idle browser when it is replaced", func(t *testing.T) {
		t.Parallel()

		f, b := newFakeFetcher(t, WithRecycleAfter(1))

		first, err := f.acquire()
		require.NoError(t, err)
		f.release(first)

		_, err = f.acquire()
		require.NoError(t, err)
		assert.True(t, b.stopped[first])
	})

	t.Run("keeps the old browser when relaunch fails", func(t *testing.T) {
		t.Parallel()

		f, b := newFakeFetcher(t, WithRecycleAfter(1))

		first, err := f.acquire()
		require.NoError(t, err)
		f.release(first)

		b.fail = true
		second, err := f.acquire()
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.False(t, b.stopped[first])
	})
}

func TestFetcher_CloseWaitsForPages(t *testing.T) {
	t.Parallel()

	f, b := newFakeFetcher(t)

	inst, err := f.acquire()
	require.NoError(t, err)

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
	assert.False(t, b.stopped[inst])

	_, err = f.acquire()
	assert.Equal(t, newsgrab.EINVALID, newsgrab.ErrorCode(err))

	f.release(inst)
	assert.True(t, b.stopped[inst])
}
