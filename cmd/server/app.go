package main

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rpattn/filedash/internal/auth"
	"github.com/rpattn/filedash/internal/config"
	"github.com/rpattn/filedash/internal/db"
	"github.com/rpattn/filedash/internal/domain"
	"github.com/rpattn/filedash/internal/repository"
	"github.com/rpattn/filedash/internal/rowfilter"
)

// stores are the repositories selected by configuration.
type stores struct {
	users repository.UserRepository
	files repository.FileRepository
	close func()
}

func setupLogging(cmd *cobra.Command) error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		return nil
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(parsed)
	return nil
}

func loadConfig(cmd *cobra.Command, configDir string) (config.Config, error) {
	v := config.NewViper(configDir)
	if f := cmd.Flags().Lookup("addr"); f != nil {
		if err := v.BindPFlag("server.addr", f); err != nil {
			return config.Config{}, err
		}
	}
	if f := cmd.Flags().Lookup("store"); f != nil {
		if err := v.BindPFlag("store", f); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level == "" && cfg.LogLevel != "" {
		if parsed, err := log.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(parsed)
		}
	}
	return cfg, nil
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using in-memory store; data is lost on exit")
		return stores{
			users: repository.NewMemoryUserRepository(),
			files: repository.NewLocalizedMemoryFileRepository(rowfilter.ParseNormalizer(cfg.Search.Locale)),
			close: func() {},
		}, nil
	}

	if err := db.RunMigrations(cfg.Database); err != nil {
		return stores{}, err
	}
	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		return stores{}, err
	}
	return stores{
		users: repository.NewUserRepository(conn.Pool),
		files: repository.NewFileRepository(conn.Pool),
		close: conn.Close,
	}, nil
}

// ensureAdmin creates the configured bootstrap administrator when it does not
// exist yet. An existing account is never modified.
func ensureAdmin(ctx context.Context, users repository.UserRepository, cfg config.AdminConfig) error {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}
	existing, err := users.GetByUsername(ctx, cfg.Username)
	if err == nil {
		if !existing.IsAdmin() {
			log.WithFields(log.Fields{
				"username": existing.Username,
				"role":     existing.Role,
			}).Warn("bootstrap admin name belongs to a regular account; not promoting it")
		}
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	if _, err := users.Create(ctx, domain.NewUser(cfg.Username, hash).WithRole(domain.RoleAdmin)); err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	log.WithField("username", cfg.Username).Info("bootstrapped admin account")
	return nil
}
