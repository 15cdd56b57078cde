// Package collect loads climate news from keyed news APIs and RSS feeds,
// falling back to configured sample articles when nothing is available.
package collect

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/TobiSchelling/climatenews/internal/config"
)

// ErrCooldown is returned when a refresh is requested too soon after the
// previous one.
var ErrCooldown = errors.New("news was refreshed moments ago; please wait before refreshing again")

// State is the loader's refresh phase.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateSuccess  State = "success"
	StateFallback State = "fallback"
)

// Status describes the loader and its last refresh.
type Status struct {
	State       State
	Outcome     State // StateSuccess or StateFallback once a refresh has run
	LastRefresh time.Time
	Count       int
	Sources     map[string]int
}

// RunRecorder persists refresh outcomes.
type RunRecorder interface {
	InsertRefreshRun(outcome string, articleCount int, sources map[string]int) (int64, error)
}

// Loader orchestrates article collection from news APIs and RSS feeds.
type Loader struct {
	apis     []Source
	feeds    *FeedParser
	samples  []config.Sample
	rules    []config.TagRule
	cooldown time.Duration
	recorder RunRecorder
	now      func() time.Time

	// OnStateChange, when set, is called on every state transition.
	// It runs without the loader's lock held.
	OnStateChange func(State)

	mu       sync.Mutex
	articles []Article
	status   Status
}

// NewLoader creates a loader for the configured sources. recorder may be nil.
func NewLoader(cfg *config.Config, recorder RunRecorder) *Loader {
	news := cfg.News
	l := &Loader{
		samples:  news.Samples,
		rules:    news.Tags,
		cooldown: cfg.RefreshCooldown(),
		recorder: recorder,
		now:      time.Now,
		status:   Status{State: StateIdle},
	}

	if news.NewsData.Enabled {
		l.apis = append(l.apis, NewNewsDataClient(news.NewsData, news.Tags))
	}
	if news.NewsAPI.Enabled {
		l.apis = append(l.apis, NewNewsAPIClient(news.NewsAPI, news.Tags))
	}
	if len(news.Feeds) > 0 {
		l.feeds = NewFeedParser(news.Feeds, news.MaxPerFeed, news.Tags)
	}

	return l
}

// Refresh reloads articles from every source. It returns ErrCooldown when
// called within the cooldown window of the previous refresh. When no source
// yields anything the sample articles are used.
func (l *Loader) Refresh(ctx context.Context) ([]Article, error) {
	l.mu.Lock()
	now := l.now()
	if !l.status.LastRefresh.IsZero() && now.Sub(l.status.LastRefresh) < l.cooldown {
		l.mu.Unlock()
		return nil, ErrCooldown
	}
	l.status.LastRefresh = now
	l.status.State = StateLoading
	l.mu.Unlock()
	l.notify(StateLoading)

	articles, sources := l.collect(ctx)
	outcome := StateSuccess
	if len(articles) == 0 {
		log.Println("No articles from news sources, using sample articles")
		articles = Samples(l.samples, l.rules, l.now())
		sources = map[string]int{"samples": len(articles)}
		outcome = StateFallback
	}

	if l.recorder != nil {
		if _, err := l.recorder.InsertRefreshRun(string(outcome), len(articles), sources); err != nil {
			log.Printf("Failed to record refresh: %v", err)
		}
	}

	l.mu.Lock()
	l.articles = articles
	l.status.Outcome = outcome
	l.status.Count = len(articles)
	l.status.Sources = sources
	l.status.State = StateIdle
	l.mu.Unlock()
	l.notify(outcome, StateIdle)

	log.Printf("Refresh complete: %d articles (%s)", len(articles), outcome)
	return append([]Article(nil), articles...), nil
}

// Articles returns the most recently loaded articles.
func (l *Loader) Articles() []Article {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Article(nil), l.articles...)
}

// Loaded reports whether a refresh has completed.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status.Outcome != ""
}

// Status returns the loader status.
func (l *Loader) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.status
	if s.Sources != nil {
		s.Sources = make(map[string]int, len(l.status.Sources))
		for k, v := range l.status.Sources {
			s.Sources[k] = v
		}
	}
	return s
}

// Find returns the loaded article with the given URL.
func (l *Loader) Find(url string) (Article, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.articles {
		if a.URL == url {
			return a, true
		}
	}
	return Article{}, false
}

// collect queries APIs then feeds, merging by URL. API entries come first
// and win on conflict. Feed articles are counted under their feed name.
func (l *Loader) collect(ctx context.Context) ([]Article, map[string]int) {
	sources := make(map[string]int)
	var merged []Article
	seen := make(map[string]struct{})

	add := func(source string, articles []Article) {
		for _, a := range articles {
			if _, ok := seen[a.URL]; ok {
				continue
			}
			seen[a.URL] = struct{}{}
			merged = append(merged, a)
			if source != "" {
				sources[source]++
			} else {
				sources[a.Source]++
			}
		}
	}

	for _, api := range l.apis {
		if !api.IsConfigured() {
			log.Printf("%s not configured, skipping", api.Name())
			continue
		}
		articles, err := api.Fetch(ctx)
		if err != nil {
			log.Printf("Failed to fetch from %s: %v", api.Name(), err)
			continue
		}
		add(api.Name(), articles)
	}

	if l.feeds != nil {
		log.Println("Collecting from RSS feeds...")
		add("", l.feeds.ParseAll(ctx))
	}

	return merged, sources
}

func (l *Loader) notify(states ...State) {
	if l.OnStateChange == nil {
		return
	}
	for _, s := range states {
		l.OnStateChange(s)
	}
}
