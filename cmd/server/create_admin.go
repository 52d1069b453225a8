package main

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rpattn/filedash/internal/auth"
	"github.com/rpattn/filedash/internal/config"
	"github.com/rpattn/filedash/internal/domain"
)

func newCreateAdminCmd(configDir *string) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			cfg, err := loadConfig(cmd, *configDir)
			if err != nil {
				return err
			}
			if cfg.Store == config.StoreMemory {
				return errors.New("create-admin needs a persistent store")
			}

			ctx := context.Background()
			st, err := openStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.close()

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			user, err := st.users.Create(ctx, domain.NewUser(username, hash).WithRole(domain.RoleAdmin))
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}
			log.WithField("username", user.Username).Info("admin account created")
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}
