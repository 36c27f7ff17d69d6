// Package linkedin looks up a profile picture URL from a public LinkedIn page.
//
// Lookup order: a manually configured URL, then a fresh cached value, then a
// single fetch of the profile page with three extraction heuristics. When the
// fetch fails the last cached value is served regardless of age.
package linkedin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrImageNotFound is returned when the page was fetched but no heuristic matched.
var ErrImageNotFound = errors.New("profile image not found")

// Outcome classifies how a Result was produced.
type Outcome int

const (
	OutcomeManual Outcome = iota
	OutcomeFresh
	OutcomeFetched
	OutcomeStale
	OutcomeNotFound
	OutcomeFailed
)

const (
	SourceManual = "manual"

	msgNotFound      = "Profile image not found"
	msgFetchFailed   = "Failed to fetch profile image"
	msgStaleFallback = "Using cached image due to fetch error"
)

// Result is the JSON body served by the profile image endpoint.
type Result struct {
	ImageURL *string `json:"imageUrl"`
	Cached   bool    `json:"cached"`
	Source   string  `json:"source,omitempty"`
	Error    string  `json:"error,omitempty"`
	Warning  string  `json:"warning,omitempty"`

	Outcome Outcome `json:"-"`
}

// Options configures a Service.
type Options struct {
	// ProfileURL is the public profile page to scrape.
	ProfileURL string
	// ManualImageURL short-circuits scraping when set.
	ManualImageURL string
	CacheTTL       time.Duration
	Now            func() time.Time
}

// Status describes the lookup state for the admin dashboard.
type Status struct {
	Manual      bool          `json:"manual"`
	ImageURL    string        `json:"image_url,omitempty"`
	Cached      bool          `json:"cached"`
	Fresh       bool          `json:"fresh"`
	Age         time.Duration `json:"age"`
	TTL         time.Duration `json:"ttl"`
	LastMethod  Method        `json:"last_method,omitempty"`
	LastError   string        `json:"last_error,omitempty"`
	LastAttempt time.Time     `json:"last_attempt,omitempty"`
}

// Service resolves the profile image URL.
type Service struct {
	profileURL string
	manualURL  string
	fetcher    Fetcher
	cache      *Cache
	now        func() time.Time

	// concurrent misses share one fetch
	group singleflight.Group

	mu          sync.Mutex
	lastMethod  Method
	lastErr     error
	lastAttempt time.Time
}

// NewService creates a Service backed by fetcher.
func NewService(opts Options, fetcher Fetcher) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		profileURL: opts.ProfileURL,
		manualURL:  opts.ManualImageURL,
		fetcher:    fetcher,
		cache:      NewCache(ttl, now),
		now:        now,
	}
}

// Lookup returns the profile image URL. It never fails; errors are reported
// inside the Result.
func (s *Service) Lookup(ctx context.Context) Result {
	if s.manualURL != "" {
		u := s.manualURL
		return Result{ImageURL: &u, Source: SourceManual, Outcome: OutcomeManual}
	}

	if u, ok := s.cache.Fresh(); ok {
		return Result{ImageURL: &u, Cached: true, Outcome: OutcomeFresh}
	}

	v, err, _ := s.group.Do(s.profileURL, func() (any, error) {
		// one client going away must not fail the shared fetch
		return s.refresh(context.WithoutCancel(ctx))
	})
	if err == nil {
		u := v.(string)
		return Result{ImageURL: &u, Outcome: OutcomeFetched}
	}

	log.Printf("Error fetching LinkedIn image: %v", err)

	// a page without a recognisable image counts as a failed fetch too
	if u, _, ok := s.cache.Last(); ok {
		return Result{ImageURL: &u, Cached: true, Warning: msgStaleFallback, Outcome: OutcomeStale}
	}
	if errors.Is(err, ErrImageNotFound) {
		return Result{Error: msgNotFound, Outcome: OutcomeNotFound}
	}
	return Result{Error: msgFetchFailed, Outcome: OutcomeFailed}
}

func (s *Service) refresh(ctx context.Context) (string, error) {
	if s.fetcher == nil {
		return "", s.record("", errors.New("no fetcher configured"))
	}

	page, err := s.fetcher.Fetch(ctx, s.profileURL)
	if err != nil {
		return "", s.record("", err)
	}

	u, method, ok := Extract(page)
	if !ok {
		return "", s.record("", fmt.Errorf("%w at %s", ErrImageNotFound, s.profileURL))
	}

	s.cache.Store(u)
	s.record(method, nil)
	return u, nil
}

func (s *Service) record(method Method, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAttempt = s.now()
	s.lastErr = err
	if method != "" {
		s.lastMethod = method
	}
	return err
}

// Warm performs one lookup so the first visitor is served from cache.
func (s *Service) Warm(ctx context.Context) {
	res := s.Lookup(ctx)
	switch res.Outcome {
	case OutcomeManual:
		log.Println("LinkedIn image: using manual override")
	case OutcomeFetched, OutcomeFresh:
		log.Printf("LinkedIn image cached: %s", *res.ImageURL)
	default:
		log.Printf("LinkedIn image warm-up did not find an image: %s", res.Error)
	}
}

// Invalidate clears the cache so the next lookup fetches again.
func (s *Service) Invalidate() {
	s.cache.Clear()
}

// Status reports the current cache state.
func (s *Service) Status() Status {
	st := Status{Manual: s.manualURL != "", TTL: s.cache.TTL()}

	if u, _, ok := s.cache.Last(); ok {
		st.ImageURL = u
		st.Cached = true
		st.Age, _ = s.cache.Age()
		_, st.Fresh = s.cache.Fresh()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st.LastMethod = s.lastMethod
	st.LastAttempt = s.lastAttempt
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}
