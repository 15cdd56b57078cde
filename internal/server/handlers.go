package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/TobiSchelling/climatenews/internal/collect"
	"github.com/TobiSchelling/climatenews/internal/favorites"
	"github.com/TobiSchelling/climatenews/internal/profile"
	"github.com/TobiSchelling/climatenews/internal/session"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", s.indexData(r))
}

func (s *Server) indexData(r *http.Request) map[string]any {
	q := r.URL.Query()
	tag := strings.TrimSpace(q.Get("tag"))
	keyword := strings.TrimSpace(q.Get("q"))
	mode, err := collect.ParseSortMode(q.Get("sort"))
	if err != nil {
		mode = collect.SortDate
	}

	view := s.app.Workspace.Current()

	favs := s.app.Favorites.List()
	favIDs := make(map[string]bool, len(favs))
	for _, f := range favs {
		favIDs[f.ID] = true
	}

	var available []string
	for _, name := range s.app.TagNames {
		if !s.app.Favorites.IsTagFavorite(name, favorites.TagCategory) {
			available = append(available, name)
		}
	}

	return map[string]any{
		"View":            view,
		"Links":           session.Links(view.Content, view.Analysis),
		"History":         s.app.History.List(),
		"Favorites":       favs,
		"FavoriteIDs":     favIDs,
		"ProfileComplete": s.app.Profiles.IsComplete(),
		"Interests":       s.app.Favorites.TagsOfType(favorites.TagCategory),
		"AvailableTags":   available,
		"News":            collect.Filter(s.app.News.Articles(), tag, keyword, mode),
		"NewsLoaded":      s.app.News.Loaded(),
		"NewsStatus":      s.app.News.Status(),
		"Tag":             tag,
		"Query":           keyword,
		"Sort":            string(mode),
		"SortModes":       []collect.SortMode{collect.SortDate, collect.SortRelevance, collect.SortSource},
		"Next":            r.URL.RequestURI(),
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	content := r.FormValue("content")
	s.app.Workspace.SetContent(content)
	if _, err := s.app.Workspace.Analyze(r.Context(), content); err != nil {
		s.fail(err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleSelectHistory(w http.ResponseWriter, r *http.Request) {
	if _, err := s.app.Workspace.Select(r.PathValue("id")); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.fail(err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Workspace.DeleteHistory(r.PathValue("id")); err != nil {
		s.fail(err)
	}
	back(w, r, "/")
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Workspace.ClearHistory(); err != nil {
		s.fail(err)
	} else {
		s.setFlash(session.Info("History cleared", ""))
	}
	back(w, r, "/")
}

func (s *Server) handleNewAnalysis(w http.ResponseWriter, r *http.Request) {
	s.app.Workspace.NewAnalysis()
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	on, err := s.app.Workspace.ToggleFavorite(r.PathValue("id"))
	switch {
	case err != nil:
		s.fail(err)
	case on:
		s.setFlash(session.Info("Added to favorites", ""))
	default:
		s.setFlash(session.Info("Removed from favorites", ""))
	}
	back(w, r, "/")
}

func (s *Server) handleAddTag(w http.ResponseWriter, r *http.Request) {
	tag, err := tagFromForm(r)
	if err != nil {
		s.fail(err)
		back(w, r, "/")
		return
	}

	if !s.app.Favorites.IsTagFavorite(tag.Label, tag.Type) {
		if err := s.app.Favorites.AddTag(tag); err != nil {
			s.fail(err)
		} else if tag.Type == favorites.TagCategory {
			s.setFlash(session.Info("Tag added to interests", tag.Label))
		} else {
			s.setFlash(session.Info("Tag added", tag.Label))
		}
	}
	back(w, r, "/")
}

func (s *Server) handleRemoveTag(w http.ResponseWriter, r *http.Request) {
	tag, err := tagFromForm(r)
	if err != nil {
		s.fail(err)
	} else if err := s.app.Favorites.RemoveTag(tag.Label, tag.Type); err != nil {
		s.fail(err)
	}
	back(w, r, "/")
}

// tagFromForm reads label and type; type defaults to category.
func tagFromForm(r *http.Request) (favorites.Tag, error) {
	typ := favorites.TagCategory
	if raw := r.FormValue("type"); raw != "" {
		parsed, err := favorites.ParseTagType(raw)
		if err != nil {
			return favorites.Tag{}, err
		}
		typ = parsed
	}
	label := strings.TrimSpace(r.FormValue("label"))
	if label == "" {
		return favorites.Tag{}, fmt.Errorf("tag label is required")
	}
	return favorites.Tag{Label: label, Type: typ}, nil
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p := s.app.Profiles.Get()
	s.render(w, "profile.html", map[string]any{
		"Profile":           p,
		"Complete":          s.app.Profiles.IsComplete(),
		"ConcernOptions":    profile.ClimateConcernOptions,
		"GeographicOptions": profile.GeographicFocusOptions,
		"CategoryOptions":   profile.InterestCategoryOptions,
		"Concerns":          selected(p.ClimateConcerns, profile.ClimateConcernOptions),
		"Geographic":        selected(p.GeographicFocus, profile.GeographicFocusOptions),
		"Categories":        selected(p.InterestCategories, profile.InterestCategoryOptions),
		"Tags":              s.app.Favorites.Tags(),
	})
}

func selected(s string, options []profile.Option) map[string]bool {
	out := make(map[string]bool)
	for _, v := range profile.StringToValues(s, options) {
		out[v] = true
	}
	return out
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	concerns := profile.ValuesToString(r.Form["concerns"], profile.ClimateConcernOptions)
	geographic := profile.ValuesToString(r.Form["geographic"], profile.GeographicFocusOptions)
	categories := profile.ValuesToString(r.Form["categories"], profile.InterestCategoryOptions)

	_, err := s.app.Profiles.Update(profile.Update{
		ClimateConcerns:    &concerns,
		GeographicFocus:    &geographic,
		InterestCategories: &categories,
	})
	if err != nil {
		s.fail(err)
	} else {
		s.setFlash(session.Info("Profile saved", "Your preferences will be used for the next analysis"))
	}
	http.Redirect(w, r, "/profile", http.StatusFound)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if _, err := s.app.Assistant.Send(r.Context(), r.FormValue("message")); err != nil {
		s.fail(err)
	}
	http.Redirect(w, r, "/profile#conversation", http.StatusFound)
}

func (s *Server) handleResetProfile(w http.ResponseWriter, r *http.Request) {
	if _, err := s.app.Profiles.Reset(); err != nil {
		s.fail(err)
	} else {
		s.setFlash(session.Info("Profile reset", "Preferences and conversation were cleared"))
	}
	http.Redirect(w, r, "/profile", http.StatusFound)
}

func (s *Server) handleRefreshNews(w http.ResponseWriter, r *http.Request) {
	articles, err := s.app.News.Refresh(r.Context())
	switch {
	case errors.Is(err, collect.ErrCooldown):
		s.setFlash(session.Info("Please wait", err.Error()))
	case err != nil:
		s.fail(err)
	case s.app.News.Status().Outcome == collect.StateFallback:
		s.setFlash(session.Info("Showing sample articles", "No news source returned articles"))
	default:
		s.setFlash(session.Info("News refreshed", fmt.Sprintf("%d articles loaded", len(articles))))
	}
	back(w, r, "/")
}

// handleAnalyzeURL analyses a feed article. The page text is fetched when
// possible; otherwise the feed headline and description are used.
func (s *Server) handleAnalyzeURL(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.FormValue("url"))

	var content string
	if page, err := s.app.Pages.Extract(r.Context(), url); err == nil {
		content = page.Content()
	} else {
		log.Printf("Could not extract %s: %v", url, err)
		if a, ok := s.app.News.Find(url); ok {
			content = a.Title + "\n\n" + a.Description
		}
	}

	s.app.Workspace.SetContent(content)
	if _, err := s.app.Workspace.Analyze(r.Context(), content); err != nil {
		s.fail(err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
