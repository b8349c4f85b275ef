package gallery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// LoadState is the load status of one image.
type LoadState int

const (
	LoadUnknown LoadState = iota
	LoadPending
	LoadLoaded
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadLoaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	}
	return "unknown"
}

// Loader fetches one image. A nil error means the image is displayable.
type Loader interface {
	Load(ctx context.Context, ref ImageRef) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, ref ImageRef) error

func (f LoaderFunc) Load(ctx context.Context, ref ImageRef) error { return f(ctx, ref) }

// DefaultPreloadConcurrency bounds simultaneous loads when none is configured.
const DefaultPreloadConcurrency = 4

// DefaultFailureTTL is how long a failed load is trusted before the image is
// loaded again.
const DefaultFailureTTL = 30 * time.Second

type loadResult struct {
	state LoadState
	err   error
	at    time.Time
}

// Preloader loads images in the background and caches the outcome.
// Concurrent requests for the same image share one load. Successes are kept;
// failures expire after the failure TTL so a fixed asset recovers. It is safe
// for use by many navigators at once.
type Preloader struct {
	loader Loader
	sem    *semaphore.Weighted
	group  singleflight.Group
	log    *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	results map[ImageRef]loadResult
	closed  bool
	failTTL time.Duration
	now     func() time.Time
}

// NewPreloader returns a preloader running at most concurrency loads at once.
func NewPreloader(loader Loader, concurrency int64, log *logrus.Entry) *Preloader {
	if concurrency <= 0 {
		concurrency = DefaultPreloadConcurrency
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Preloader{
		loader:  loader,
		sem:     semaphore.NewWeighted(concurrency),
		log:     log.WithField("component", "preloader"),
		ctx:     ctx,
		cancel:  cancel,
		results: make(map[ImageRef]loadResult),
		failTTL: DefaultFailureTTL,
		now:     time.Now,
	}
}

// SetFailureTTL changes how long failures are cached. Non-positive values
// disable failure caching.
func (p *Preloader) SetFailureTTL(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failTTL = d
}

// usable reports whether a cached result can be returned without loading again.
// Callers hold p.mu.
func (p *Preloader) usable(r loadResult) bool {
	switch r.state {
	case LoadLoaded:
		return true
	case LoadFailed:
		return p.now().Sub(r.at) < p.failTTL
	}
	return false
}

// Fetch loads ref and reports the outcome to done, which may be nil.
// A cached outcome is reported before Fetch returns; otherwise done runs on
// a background goroutine. Nothing is reported once the preloader is closed.
func (p *Preloader) Fetch(ref ImageRef, done func(error)) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	r, ok := p.results[ref]
	if ok && p.usable(r) {
		p.mu.Unlock()
		if done != nil {
			done(r.err)
		}
		return
	}
	if !ok || r.state != LoadPending {
		p.results[ref] = loadResult{state: LoadPending}
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()

		_, err, _ := p.group.Do(string(ref), func() (any, error) {
			// A caller that arrives after the load finished reuses its result.
			if r, ok := p.settled(ref); ok {
				return nil, r.err
			}
			if err := p.sem.Acquire(p.ctx, 1); err != nil {
				return nil, err
			}
			defer p.sem.Release(1)
			err := p.loader.Load(p.ctx, ref)
			if p.ctx.Err() != nil {
				return nil, p.ctx.Err()
			}
			p.record(ref, err)
			return nil, err
		})

		if errors.Is(err, context.Canceled) && p.ctx.Err() != nil {
			p.mu.Lock()
			delete(p.results, ref)
			p.mu.Unlock()
			return
		}
		if done != nil {
			done(err)
		}
	}()
}

func (p *Preloader) settled(ref ImageRef) (loadResult, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, ok := p.results[ref]
	return r, ok && p.usable(r)
}

func (p *Preloader) record(ref ImageRef, err error) {
	res := loadResult{state: LoadLoaded}
	if err != nil {
		res = loadResult{state: LoadFailed, err: err, at: p.now()}
		p.log.WithError(err).WithField("ref", ref).Debug("preload failed")
	}
	p.mu.Lock()
	p.results[ref] = res
	p.mu.Unlock()
}

// State reports the cached load status of ref. An expired failure reads as
// LoadUnknown.
func (p *Preloader) State(ref ImageRef) LoadState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r := p.results[ref]
	if r.state == LoadFailed && !p.usable(r) {
		return LoadUnknown
	}
	return r.state
}

// Wait blocks until every in-flight load has finished.
func (p *Preloader) Wait() { p.wg.Wait() }

// Close cancels in-flight loads and waits for them to unwind.
func (p *Preloader) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cancel()
	p.wg.Wait()
}
