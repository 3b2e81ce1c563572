// Package rod fetches pages through headless Chrome for sources whose
// articles are rendered by JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/newsgrab"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements newsgrab.Fetcher at compile time.
var _ newsgrab.Fetcher = (*Fetcher)(nil)

const (
	// DefaultTimeout bounds a single page load.
	DefaultTimeout = 30 * time.Second

	// DefaultRecycleAfter is the number of pages served by one browser
	// process before it is replaced. Chrome memory grows with every page
	// and is not returned when pages close.
	DefaultRecycleAfter = 75
)

// Fetcher returns the rendered HTML of article pages.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	timeout      time.Duration
	recycleAfter int
	launch       func() (*instance, error)

	mu      sync.Mutex
	current *instance
	served  int
	closed  bool
}

// instance is one browser process. A retired instance is stopped once its
// last in-flight page is released.
type instance struct {
	browser  *rod.Browser
	stop     func() error
	inflight int
	retired  bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the page load timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRecycleAfter sets how many pages a browser process serves.
func WithRecycleAfter(n int) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// NewFetcher launches a headless browser.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	return newFetcher(launch, opts...)
}

func newFetcher(launch func() (*instance, error), opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultTimeout,
		recycleAfter: DefaultRecycleAfter,
		launch:       launch,
	}
	for _, opt := range opts {
		opt(f)
	}

	inst, err := f.launch()
	if err != nil {
		return nil, err
	}
	f.current = inst
	return f, nil
}

// Fetch navigates to url and returns the document after the load event.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inst, err := f.acquire()
	if err != nil {
		return nil, err
	}
	defer f.release(inst)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := inst.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return []byte(html), nil
}

// acquire returns the current browser with its in-flight count raised,
// replacing it once it has served recycleAfter pages. The replaced browser
// keeps running until its pages are released. A failed relaunch keeps the
// old browser.
func (f *Fetcher) acquire() (*instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "fetcher is closed")
	}

	if f.recycleAfter > 0 && f.served >= f.recycleAfter {
		if inst, err := f.launch(); err == nil {
			_ = f.retire(f.current)
			f.current = inst
			f.served = 0
		}
	}
	f.served++
	f.current.inflight++
	return f.current, nil
}

// release lowers the in-flight count of inst and stops it if it was retired.
func (f *Fetcher) release(inst *instance) {
	f.mu.Lock()
	defer f.mu.Unlock()

	inst.inflight--
	if inst.retired && inst.inflight == 0 {
		_ = inst.stop()
	}
}

// retire marks inst for shutdown. Must be called with mu held.
func (f *Fetcher) retire(inst *instance) error {
	if inst == nil || inst.retired {
		return nil
	}
	inst.retired = true
	if inst.inflight == 0 {
		return inst.stop()
	}
	return nil
}

// Close releases browser resources. Pages still loading finish before their
// browser stops. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	err := f.retire(f.current)
	f.current = nil
	return err
}

func launch() (*instance, error) {
	l := launcher.New().
		Set("disable-dev-shm-usage").
		Set("disable-renderer-backgrounding").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{
		browser: browser,
		stop: func() error {
			err := browser.Close()
			l.Kill()
			return err
		},
	}, nil
}
