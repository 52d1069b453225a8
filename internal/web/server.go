// Package web serves the file dashboard.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/rpattn/filedash/internal/auth"
	"github.com/rpattn/filedash/internal/middleware"
	"github.com/rpattn/filedash/internal/repository"
	"github.com/rpattn/filedash/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"index", "login", "register", "upload", "admin"}

// maxUploadBytes caps multipart bodies on /upload.
const maxUploadBytes = 32 << 20

// Deps are the collaborators the dashboard needs.
type Deps struct {
	Users          repository.UserRepository
	Files          repository.FileRepository
	Blobs          storage.BlobStore
	Sessions       *auth.Sessions
	Metrics        *middleware.Metrics
	StaticDir      string
	AllowedOrigins []string
	// Lang is rendered as the document language; the browser filter folds
	// text with the matching locale.
	Lang string
}

// Server holds parsed templates and routes.
type Server struct {
	deps      Deps
	templates map[string]*template.Template
}

// NewServer parses the embedded templates.
func NewServer(deps Deps) (*Server, error) {
	if deps.Metrics == nil {
		deps.Metrics = middleware.NewMetrics()
	}
	if deps.Lang == "" || deps.Lang == "und" {
		deps.Lang = "en"
	}
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		templates[page] = t
	}
	return &Server{deps: deps, templates: templates}, nil
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	m := s.deps.Metrics

	page := func(route string, h http.HandlerFunc) http.Handler {
		return m.Instrument(route, auth.RequireSession(h))
	}
	admin := func(route string, h http.HandlerFunc) http.Handler {
		return m.Instrument(route, auth.RequireAdmin(h))
	}

	mux.Handle("GET /{$}", page("index", s.handleIndex))
	mux.Handle("GET /login", m.Instrument("login", http.HandlerFunc(s.handleLoginForm)))
	mux.Handle("POST /login", m.Instrument("login", http.HandlerFunc(s.handleLogin)))
	mux.Handle("GET /register", m.Instrument("register", http.HandlerFunc(s.handleRegisterForm)))
	mux.Handle("POST /register", m.Instrument("register", http.HandlerFunc(s.handleRegister)))
	mux.Handle("GET /logout", m.Instrument("logout", http.HandlerFunc(s.handleLogout)))
	mux.Handle("GET /upload", page("upload", s.handleUploadForm))
	mux.Handle("POST /upload", page("upload", s.handleUpload))
	mux.Handle("GET /admin", admin("admin", s.handleAdmin))
	mux.Handle("POST /admin/users/{id}/delete", admin("delete_user", s.handleDeleteUser))
	mux.Handle("POST /admin/files/{id}/delete", admin("delete_file", s.handleDeleteFile))
	mux.Handle("GET /admin/export.xlsx", admin("export", s.handleExport))
	mux.Handle("GET /blobs/{key}", page("blob", s.handleBlob))
	mux.Handle("GET /metrics", m.Handler())

	api := cors.New(cors.Options{
		AllowedOrigins:   s.deps.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
	})
	mux.Handle("/api/files", api.Handler(m.Instrument("api_files", http.HandlerFunc(s.handleAPIFiles))))

	if s.deps.StaticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.deps.StaticDir))))
	}

	var h http.Handler = mux
	h = middleware.DataLoaderMiddleware(s.deps.Users)(h)
	h = s.deps.Sessions.LoadSession(h)
	return middleware.LoggingMiddleware(h)
}

// pageData is shared by every template.
type pageData struct {
	Lang    string
	Session auth.Session
	Flash   string
	Data    any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	s.renderMessage(w, r, status, page, "", data)
}

// renderMessage renders page with msg in place of any pending flash.
func (s *Server) renderMessage(w http.ResponseWriter, r *http.Request, status int, page, msg string, data any) {
	session, _ := auth.SessionFromContext(r.Context())
	if pending := popFlash(w, r); msg == "" {
		msg = pending
	}
	view := pageData{
		Lang:    s.deps.Lang,
		Session: session,
		Flash:   msg,
		Data:    data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates[page].ExecuteTemplate(w, "layout", view); err != nil {
		log.WithError(err).WithField("page", page).Error("failed to render template")
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithError(err).WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("request failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
