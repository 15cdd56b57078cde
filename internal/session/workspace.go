// Package session holds the interactive state shared by the web UI and the
// CLI: the article being analysed, its analysis, and the profile assistant.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/TobiSchelling/climatenews/internal/agent"
	"github.com/TobiSchelling/climatenews/internal/favorites"
	"github.com/TobiSchelling/climatenews/internal/history"
	"github.com/TobiSchelling/climatenews/internal/profile"
	"github.com/TobiSchelling/climatenews/internal/storage"
)

// Defaults sent to the agent for unset profile fields.
const (
	DefaultConcerns   = "general climate change"
	DefaultGeographic = "global"
	DefaultCategories = "all"
)

var (
	// ErrArticleRequired is returned when analysis is requested for blank text.
	ErrArticleRequired = errors.New("article text is required")
	// ErrNotFound is returned for unknown history ids.
	ErrNotFound = errors.New("article not found")
)

// View is the article currently shown in the workspace.
type View struct {
	Content     string
	Analysis    *agent.AnalysisResponse
	RawAnalysis string
	SelectedID  string
}

// HasAnalysis reports whether the view carries a parsed or raw analysis.
func (v View) HasAnalysis() bool {
	return v.Analysis != nil || v.RawAnalysis != ""
}

// Workspace coordinates analysis with the profile, history and favorites.
type Workspace struct {
	analyzer  agent.Analyzer
	profiles  *profile.Store
	history   *history.Store
	favorites *favorites.Store

	mu          sync.Mutex
	view        View
	unsubscribe func()
}

// NewWorkspace creates a workspace. It watches the history key in store so
// that the view is reset whenever the selected entry disappears.
func NewWorkspace(analyzer agent.Analyzer, store storage.Store, profiles *profile.Store, hist *history.Store, favs *favorites.Store) *Workspace {
	w := &Workspace{
		analyzer:  analyzer,
		profiles:  profiles,
		history:   hist,
		favorites: favs,
	}
	w.unsubscribe = store.Subscribe(storage.HistoryKey, w.historyChanged)
	return w
}

// Close stops watching the history.
func (w *Workspace) Close() {
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
}

// Analyze sends content for analysis with the user's profile. On success
// the result is added to the history and selected. Blank content returns
// ErrArticleRequired without contacting the agent.
func (w *Workspace) Analyze(ctx context.Context, content string) (history.Item, error) {
	if strings.TrimSpace(content) == "" {
		return history.Item{}, ErrArticleRequired
	}

	w.mu.Lock()
	w.view = View{Content: content}
	w.mu.Unlock()

	field, err := w.analyzer.AnalyzeArticle(ctx, AnalysisVariables(w.profiles.Get(), content))
	if err != nil {
		if agent.IsQuotaExceeded(err) {
			return history.Item{}, err
		}
		return history.Item{}, &analysisError{err: err}
	}

	item, err := w.history.Add(content, field)
	if err != nil {
		return history.Item{}, fmt.Errorf("saving analysis: %w", err)
	}

	w.mu.Lock()
	w.view = View{
		Content:     content,
		Analysis:    item.Analysis,
		RawAnalysis: item.RawAnalysis,
		SelectedID:  item.ID,
	}
	w.mu.Unlock()
	return item, nil
}

// AnalysisVariables builds the analysis request for p, substituting the
// defaults for unset fields.
func AnalysisVariables(p profile.Profile, content string) agent.ArticleAnalysisVariables {
	return agent.ArticleAnalysisVariables{
		UserConcerns:        orDefault(p.ClimateConcerns, DefaultConcerns),
		ArticleContent:      content,
		UserCategories:      orDefault(p.InterestCategories, DefaultCategories),
		UserGeographicFocus: orDefault(p.GeographicFocus, DefaultGeographic),
	}
}

// Select shows the history entry with id. Favorites keep their own copy,
// so a starred entry can be shown after it has left the history.
func (w *Workspace) Select(id string) (View, error) {
	item, ok := w.history.Get(id)
	if !ok {
		item, ok = w.favorite(id)
	}
	if !ok {
		return View{}, ErrNotFound
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.view = View{
		Content:     item.Content,
		Analysis:    item.Analysis,
		RawAnalysis: item.RawAnalysis,
		SelectedID:  item.ID,
	}
	return w.view, nil
}

// NewAnalysis clears the view.
func (w *Workspace) NewAnalysis() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.view = View{}
}

// SetContent replaces the draft article text.
func (w *Workspace) SetContent(content string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.view.Content = content
}

// Current returns the current view.
func (w *Workspace) Current() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.view
}

// DeleteHistory removes a history entry.
func (w *Workspace) DeleteHistory(id string) error {
	return w.history.Remove(id)
}

// ClearHistory removes every history entry.
func (w *Workspace) ClearHistory() error {
	return w.history.Clear()
}

// ToggleFavorite stars or unstars the history entry with id and reports
// whether it is now a favorite. Starred entries that have since left the
// history can still be unstarred.
func (w *Workspace) ToggleFavorite(id string) (bool, error) {
	if w.favorites.IsFavorite(id) {
		return false, w.favorites.Remove(id)
	}
	item, ok := w.history.Get(id)
	if !ok {
		return false, ErrNotFound
	}
	return true, w.favorites.Add(item)
}

func (w *Workspace) favorite(id string) (history.Item, bool) {
	for _, item := range w.favorites.List() {
		if item.ID == id {
			return item, true
		}
	}
	return history.Item{}, false
}

// historyChanged resets the view when the selected entry is no longer in
// the persisted history and is not starred.
func (w *Workspace) historyChanged(value []byte) {
	var items []history.Item
	if err := json.Unmarshal(value, &items); err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.view.SelectedID == "" {
		return
	}
	for _, it := range items {
		if it.ID == w.view.SelectedID {
			return
		}
	}
	if w.favorites.IsFavorite(w.view.SelectedID) {
		return
	}
	w.view = View{}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
