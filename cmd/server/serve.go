package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rpattn/filedash/internal/auth"
	"github.com/rpattn/filedash/internal/middleware"
	"github.com/rpattn/filedash/internal/storage"
	"github.com/rpattn/filedash/internal/web"
)

func newServeCmd(configDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *configDir)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	cmd.Flags().String("store", "", "backing store: postgres or memory (overrides store)")
	return cmd
}

func runServe(cmd *cobra.Command, configDir string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(cmd, configDir)
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	if err := ensureAdmin(ctx, st.users, cfg.Admin); err != nil {
		return err
	}

	blobs, err := storage.NewDiskStore(cfg.Storage.Root)
	if err != nil {
		return err
	}
	sessions, err := auth.NewSessions(cfg.Auth.Secret, cfg.Auth.SessionTTL, cfg.Auth.SecureCookie)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(web.Deps{
		Users:          st.users,
		Files:          st.files,
		Blobs:          blobs,
		Sessions:       sessions,
		Metrics:        middleware.NewMetrics(),
		StaticDir:      cfg.Server.StaticDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Lang:           cfg.Search.Locale,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":  cfg.Server.Addr,
			"store": cfg.Store,
		}).Info("starting dashboard server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}
