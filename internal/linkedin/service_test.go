package linkedin_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adarshmisra/portfolio/internal/linkedin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileURL = "https://www.linkedin.com/in/someone/"

type stubFetcher struct {
	mu    sync.Mutex
	page  string
	err   error
	calls atomic.Int32
	gate  chan struct{}
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page, f.err
}

func (f *stubFetcher) set(page string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.page, f.err = page, err
}

func ogPage(u string) string {
	return `<html><head><meta property="og:image" content="` + u + `"></head></html>`
}

func newService(f linkedin.Fetcher, clock *fakeClock, manual string) *linkedin.Service {
	return linkedin.NewService(linkedin.Options{
		ProfileURL:     profileURL,
		ManualImageURL: manual,
		CacheTTL:       time.Hour,
		Now:            clock.Now,
	}, f)
}

func TestLookup_ManualOverrideWins(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{page: ogPage("https://example.com/scraped.jpg")}
	svc := newService(f, newClock(), "https://example.com/manual.jpg")

	res := svc.Lookup(context.Background())
	require.NotNil(t, res.ImageURL)
	assert.Equal(t, "https://example.com/manual.jpg", *res.ImageURL)
	assert.Equal(t, linkedin.SourceManual, res.Source)
	assert.False(t, res.Cached)
	assert.Equal(t, linkedin.OutcomeManual, res.Outcome)
	assert.Zero(t, f.calls.Load(), "manual override never scrapes")
	assert.True(t, svc.Status().Manual)
}

func TestLookup_FetchesThenServesFreshCache(t *testing.T) {
	t.Parallel()

	clock := newClock()
	f := &stubFetcher{page: ogPage("https://example.com/p.jpg")}
	svc := newService(f, clock, "")

	first := svc.Lookup(context.Background())
	require.NotNil(t, first.ImageURL)
	assert.Equal(t, "https://example.com/p.jpg", *first.ImageURL)
	assert.False(t, first.Cached)
	assert.Equal(t, linkedin.OutcomeFetched, first.Outcome)

	clock.Advance(30 * time.Minute)
	second := svc.Lookup(context.Background())
	require.NotNil(t, second.ImageURL)
	assert.Equal(t, "https://example.com/p.jpg", *second.ImageURL)
	assert.True(t, second.Cached)
	assert.Equal(t, linkedin.OutcomeFresh, second.Outcome)
	assert.Equal(t, int32(1), f.calls.Load(), "fresh cache makes no network call")

	st := svc.Status()
	assert.True(t, st.Cached)
	assert.True(t, st.Fresh)
	assert.Equal(t, 30*time.Minute, st.Age)
	assert.Equal(t, linkedin.MethodOpenGraph, st.LastMethod)
	assert.Empty(t, st.LastError)
}

func TestLookup_ExpiredCacheRefetches(t *testing.T) {
	t.Parallel()

	clock := newClock()
	f := &stubFetcher{page: ogPage("https://example.com/old.jpg")}
	svc := newService(f, clock, "")

	svc.Lookup(context.Background())
	f.set(ogPage("https://example.com/new.jpg"), nil)
	clock.Advance(2 * time.Hour)

	res := svc.Lookup(context.Background())
	require.NotNil(t, res.ImageURL)
	assert.Equal(t, "https://example.com/new.jpg", *res.ImageURL)
	assert.False(t, res.Cached)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestLookup_FetchFailureServesStaleCache(t *testing.T) {
	t.Parallel()

	clock := newClock()
	f := &stubFetcher{page: ogPage("https://example.com/p.jpg")}
	svc := newService(f, clock, "")

	svc.Lookup(context.Background())
	clock.Advance(48 * time.Hour)
	f.set("", errors.New("connection reset"))

	res := svc.Lookup(context.Background())
	require.NotNil(t, res.ImageURL)
	assert.Equal(t, "https://example.com/p.jpg", *res.ImageURL)
	assert.True(t, res.Cached)
	assert.NotEmpty(t, res.Warning)
	assert.Empty(t, res.Error)
	assert.Equal(t, linkedin.OutcomeStale, res.Outcome)
	assert.Contains(t, svc.Status().LastError, "connection reset")
}

func TestLookup_NoPatternServesStaleCache(t *testing.T) {
	t.Parallel()

	clock := newClock()
	f := &stubFetcher{page: ogPage("https://example.com/p.jpg")}
	svc := newService(f, clock, "")

	svc.Lookup(context.Background())
	clock.Advance(2 * time.Hour)
	f.set("<html>sign in</html>", nil)

	res := svc.Lookup(context.Background())
	require.NotNil(t, res.ImageURL)
	assert.Equal(t, "https://example.com/p.jpg", *res.ImageURL)
	assert.Equal(t, linkedin.OutcomeStale, res.Outcome)
}

func TestLookup_FetchFailureWithoutCache(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{err: linkedin.ErrUnexpectedStatus}
	svc := newService(f, newClock(), "")

	res := svc.Lookup(context.Background())
	assert.Nil(t, res.ImageURL)
	assert.Equal(t, "Failed to fetch profile image", res.Error)
	assert.Equal(t, linkedin.OutcomeFailed, res.Outcome)
}

func TestLookup_NotFoundWithoutCache(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{page: "<html></html>"}
	svc := newService(f, newClock(), "")

	res := svc.Lookup(context.Background())
	assert.Nil(t, res.ImageURL)
	assert.Equal(t, "Profile image not found", res.Error)
	assert.Equal(t, linkedin.OutcomeNotFound, res.Outcome)
	assert.Contains(t, svc.Status().LastError, linkedin.ErrImageNotFound.Error())
}

func TestLookup_ConcurrentMissesShareOneFetch(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{page: ogPage("https://example.com/p.jpg"), gate: make(chan struct{})}
	svc := newService(f, newClock(), "")

	const callers = 8
	var wg sync.WaitGroup
	results := make([]linkedin.Result, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = svc.Lookup(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return f.calls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(f.gate)
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r.ImageURL)
		assert.Equal(t, "https://example.com/p.jpg", *r.ImageURL)
	}
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestInvalidate(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{page: ogPage("https://example.com/p.jpg")}
	svc := newService(f, newClock(), "")

	svc.Lookup(context.Background())
	svc.Invalidate()
	assert.False(t, svc.Status().Cached)

	svc.Lookup(context.Background())
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestWarm(t *testing.T) {
	t.Parallel()

	t.Run("caches scraped image", func(t *testing.T) {
		f := &stubFetcher{page: ogPage("https://example.com/p.jpg")}
		svc := newService(f, newClock(), "")

		svc.Warm(context.Background())

		st := svc.Status()
		assert.True(t, st.Fresh)
		assert.Equal(t, "https://example.com/p.jpg", st.ImageURL)
		assert.Equal(t, linkedin.MethodOpenGraph, st.LastMethod)
		assert.Equal(t, int32(1), f.calls.Load())
	})

	t.Run("manual override skips fetch", func(t *testing.T) {
		f := &stubFetcher{page: ogPage("https://example.com/p.jpg")}
		svc := newService(f, newClock(), "https://example.com/manual.jpg")

		svc.Warm(context.Background())

		assert.Zero(t, f.calls.Load())
		assert.True(t, svc.Status().Manual)
	})

	t.Run("fetch failure with empty cache", func(t *testing.T) {
		f := &stubFetcher{err: errors.New("connection reset")}
		svc := newService(f, newClock(), "")

		assert.NotPanics(t, func() { svc.Warm(context.Background()) })
		st := svc.Status()
		assert.False(t, st.Cached)
		assert.Contains(t, st.LastError, "connection reset")
	})

	t.Run("no image with empty cache", func(t *testing.T) {
		f := &stubFetcher{page: "<html></html>"}
		svc := newService(f, newClock(), "")

		assert.NotPanics(t, func() { svc.Warm(context.Background()) })
		assert.False(t, svc.Status().Cached)
	})
}
