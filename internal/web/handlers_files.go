package web

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rpattn/filedash/internal/auth"
	"github.com/rpattn/filedash/internal/domain"
)

type indexView struct {
	Search string
	Files  []domain.File
}

func (s *Server) listFiles(r *http.Request) (string, []domain.File, error) {
	search := r.URL.Query().Get("search")
	if strings.TrimSpace(search) != "" {
		s.deps.Metrics.SearchPerformed()
	}
	files, err := s.deps.Files.List(r.Context(), &domain.FileFilter{Search: search})
	return search, files, err
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	search, files, err := s.listFiles(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "index", indexView{Search: search, Files: files})
}

func (s *Server) handleAPIFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := auth.SessionFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "login required"})
		return
	}
	_, files, err := s.listFiles(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

type uploadForm struct {
	DisplayName string
	Category    string
}

func (s *Server) handleUploadForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "upload", uploadForm{})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.renderMessage(w, r, http.StatusBadRequest, "upload", "Upload could not be read", uploadForm{})
		return
	}
	form := uploadForm{
		DisplayName: strings.TrimSpace(r.FormValue("display_name")),
		Category:    strings.TrimSpace(r.FormValue("category")),
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderMessage(w, r, http.StatusBadRequest, "upload", "Please choose a file", form)
		return
	}
	defer file.Close()

	original := filepath.Base(header.Filename)
	if form.DisplayName == "" {
		form.DisplayName = original
	}

	record := domain.NewFile(form.DisplayName, form.Category, original, "", "", session.Username)
	if err := record.Validate(); err != nil {
		s.renderMessage(w, r, http.StatusBadRequest, "upload", "Upload rejected: "+err.Error(), form)
		return
	}

	key, url, err := s.deps.Blobs.Put(r.Context(), original, file)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	record.StorageKey, record.URL = key, url

	if _, err := s.deps.Files.Create(r.Context(), record); err != nil {
		if delErr := s.deps.Blobs.Delete(r.Context(), key); delErr != nil {
			log.WithError(delErr).WithField("key", key).Warn("failed to remove orphaned blob")
		}
		s.serverError(w, r, err)
		return
	}

	log.WithFields(log.Fields{
		"file":     record.ID,
		"uploader": session.Username,
	}).Info("file uploaded")
	setFlash(w, "File uploaded successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleBlob(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	rc, err := s.deps.Blobs.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.serverError(w, r, err)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	if seeker, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, key, time.Time{}, seeker)
		return
	}
	if _, err := io.Copy(w, rc); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to stream blob")
	}
}
