package web

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/rpattn/filedash/internal/auth"
	"github.com/rpattn/filedash/internal/domain"
	"github.com/rpattn/filedash/internal/export"
	"github.com/rpattn/filedash/internal/middleware"
)

type adminFile struct {
	domain.File
	UploaderRole string
}

type adminView struct {
	Users []domain.User
	Files []adminFile
}

// uploaders resolves the accounts behind files through the request loader.
func uploaders(r *http.Request, files []domain.File) (map[string]domain.User, error) {
	loader := middleware.UserLoaderFromContext(r.Context())
	if loader == nil {
		return map[string]domain.User{}, nil
	}
	seen := map[string]struct{}{}
	names := []string{}
	for _, f := range files {
		if _, ok := seen[f.UploadedBy]; ok {
			continue
		}
		seen[f.UploadedBy] = struct{}{}
		names = append(names, f.UploadedBy)
	}
	return loader.LoadMany(r.Context(), names)
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Users.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	files, err := s.deps.Files.List(r.Context(), nil)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	byName, err := uploaders(r, files)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	view := adminView{Users: users, Files: make([]adminFile, len(files))}
	for i, f := range files {
		view.Files[i] = adminFile{File: f, UploaderRole: domain.UploaderRole(byName, f.UploadedBy)}
	}
	s.render(w, r, http.StatusOK, "admin", view)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	session, _ := auth.SessionFromContext(r.Context())

	user, err := s.deps.Users.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}
	if user.Username == session.Username {
		setFlash(w, "You cannot delete your own account")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if err := s.deps.Users.Delete(r.Context(), id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.serverError(w, r, err)
		return
	}
	log.WithFields(log.Fields{"user": user.Username, "by": session.Username}).Info("user deleted")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid file id", http.StatusBadRequest)
		return
	}

	file, err := s.deps.Files.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}

	if err := s.deps.Files.Delete(r.Context(), id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.serverError(w, r, err)
		return
	}
	if err := s.deps.Blobs.Delete(r.Context(), file.StorageKey); err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.WithError(err).WithField("key", file.StorageKey).Warn("failed to delete blob")
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	files, err := s.deps.Files.List(r.Context(), nil)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	byName, err := uploaders(r, files)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="files.xlsx"`)
	if err := export.WriteFilesXLSX(w, files, byName); err != nil {
		log.WithError(err).Error("failed to write export")
	}
}
