package main

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/rpattn/filedash/internal/config"
	"github.com/rpattn/filedash/internal/domain"
	"github.com/rpattn/filedash/internal/repository"
)

func TestEnsureAdminIsIdempotent(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	cfg := config.AdminConfig{Username: "root", Password: "pw"}
	ctx := context.Background()

	if err := ensureAdmin(ctx, users, cfg); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := ensureAdmin(ctx, users, cfg); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	all, _ := users.List(ctx)
	if len(all) != 1 || !all[0].IsAdmin() {
		t.Fatalf("expected exactly one admin, got %+v", all)
	}
}

func TestEnsureAdminSkipsWhenUnset(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	if err := ensureAdmin(context.Background(), users, config.AdminConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all, _ := users.List(context.Background())
	if len(all) != 0 {
		t.Fatalf("expected no users, got %d", len(all))
	}
}

func TestEnsureAdminWarnsAboutRegularAccount(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	users := repository.NewMemoryUserRepository()
	ctx := context.Background()
	if _, err := users.Create(ctx, domain.NewUser("root", "h")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := ensureAdmin(ctx, users, config.AdminConfig{Username: "root", Password: "pw"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := users.GetByUsername(ctx, "root")
	if err != nil || u.IsAdmin() {
		t.Fatalf("expected the existing account to stay a regular user, got %+v (%v)", u, err)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != log.WarnLevel || entry.Data["username"] != "root" {
		t.Fatalf("expected a warning about the existing account, got %+v", entry)
	}
}
