package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/rpattn/filedash/internal/auth"
	"github.com/rpattn/filedash/internal/domain"
)

type credentialsForm struct {
	Username string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", credentialsForm{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	form := credentialsForm{Username: username}

	user, err := s.deps.Users.GetByUsername(r.Context(), username)
	if err == nil {
		err = auth.CheckPassword(user.PasswordHash, password)
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidCredentials):
		s.renderMessage(w, r, http.StatusUnauthorized, "login", "Invalid credentials", form)
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}

	if err := s.deps.Sessions.SetCookie(w, auth.Session{Username: user.Username, Role: user.Role}); err != nil {
		s.serverError(w, r, err)
		return
	}
	log.WithField("username", user.Username).Info("user signed in")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", credentialsForm{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	form := credentialsForm{Username: username}

	if username == "" || password == "" {
		s.renderMessage(w, r, http.StatusBadRequest, "register", "Username and password are required", form)
		return
	}
	if err := domain.ValidateUsername(username); err != nil {
		s.renderMessage(w, r, http.StatusBadRequest, "register", fmt.Sprintf("Username must be at most %d characters", domain.MaxUsernameLength), form)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if _, err := s.deps.Users.Create(r.Context(), domain.NewUser(username, hash)); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			s.renderMessage(w, r, http.StatusConflict, "register", "Username already exists!", form)
			return
		}
		s.serverError(w, r, err)
		return
	}

	log.WithField("username", username).Info("account created")
	setFlash(w, "Account created successfully!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.deps.Sessions.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
