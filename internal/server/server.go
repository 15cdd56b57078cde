package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"

	"github.com/TobiSchelling/climatenews/internal/collect"
	"github.com/TobiSchelling/climatenews/internal/favorites"
	"github.com/TobiSchelling/climatenews/internal/fetch"
	"github.com/TobiSchelling/climatenews/internal/history"
	"github.com/TobiSchelling/climatenews/internal/profile"
	"github.com/TobiSchelling/climatenews/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// PageFetcher extracts readable article text from a URL.
type PageFetcher interface {
	Extract(ctx context.Context, url string) (fetch.Page, error)
}

// App bundles the stores and services the web UI drives.
type App struct {
	Profiles  *profile.Store
	History   *history.Store
	Favorites *favorites.Store
	Workspace *session.Workspace
	Assistant *session.Assistant
	News      *collect.Loader
	Pages     PageFetcher
	// TagNames are the topical tags offered as interests.
	TagNames []string
}

// Server is the HTTP server for the web UI.
type Server struct {
	app   App
	pages map[string]*template.Template
	mux   *http.ServeMux

	mu    sync.Mutex
	flash *session.Notice
}

// New creates a new Server.
func New(app App) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown":  renderMarkdown,
		"ago":       humanize.Time,
		"agoMillis": func(ms int64) string { return humanize.Time(time.UnixMilli(ms)) },
		"riskClass": riskClass,
		"join":      strings.Join,
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// Each page clones the base and supplies its own "title" and "content".
	pageNames := []string{"index.html", "profile.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{app: app, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Workspace
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /history/{id}", s.handleSelectHistory)
	s.mux.HandleFunc("POST /history/{id}/delete", s.handleDeleteHistory)
	s.mux.HandleFunc("POST /history/clear", s.handleClearHistory)
	s.mux.HandleFunc("POST /history/new", s.handleNewAnalysis)
	s.mux.HandleFunc("POST /favorites/{id}/toggle", s.handleToggleFavorite)
	s.mux.HandleFunc("POST /tags/add", s.handleAddTag)
	s.mux.HandleFunc("POST /tags/remove", s.handleRemoveTag)

	// Profile
	s.mux.HandleFunc("GET /profile", s.handleProfile)
	s.mux.HandleFunc("POST /profile", s.handleSaveProfile)
	s.mux.HandleFunc("POST /profile/chat", s.handleChat)
	s.mux.HandleFunc("POST /profile/reset", s.handleResetProfile)

	// News
	s.mux.HandleFunc("POST /news/refresh", s.handleRefreshNews)
	s.mux.HandleFunc("POST /news/analyze", s.handleAnalyzeURL)
}

// setFlash stores a notice for the next rendered page.
func (s *Server) setFlash(n session.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = &n
}

func (s *Server) takeFlash() *session.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.flash
	s.flash = nil
	return n
}

func (s *Server) fail(err error) {
	log.Printf("Request failed: %v", err)
	s.setFlash(session.NoticeFor(err))
}

func (s *Server) render(w http.ResponseWriter, name string, data map[string]any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data["Flash"] = s.takeFlash()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// back redirects to the page the form was posted from, defaulting to fallback.
func back(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if next := r.FormValue("next"); strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		target = next
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

func riskClass(level string) string {
	switch strings.ToLower(level) {
	case "high":
		return "risk-high"
	case "medium":
		return "risk-medium"
	case "low":
		return "risk-low"
	default:
		return "risk-unknown"
	}
}

// Serve starts the HTTP server on the given port and shuts it down when ctx
// is cancelled.
func Serve(ctx context.Context, app App, port int) error {
	srv, err := New(app)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	log.Printf("Server listening on http://%s", addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
