package config

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/rpattn/filedash/internal/db"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config is the complete server configuration.
type Config struct {
	Database db.Config
	Server   ServerConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Store    string
	Search   SearchConfig
	Admin    AdminConfig
	LogLevel string
}

// AdminConfig optionally bootstraps an administrator at startup.
type AdminConfig struct {
	Username string
	Password string
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr           string
	StaticDir      string
	AllowedOrigins []string
}

// AuthConfig controls session cookies.
type AuthConfig struct {
	Secret       string
	SessionTTL   time.Duration
	SecureCookie bool
}

// StorageConfig controls where uploads are kept.
type StorageConfig struct {
	Root string
}

// SearchConfig controls server-side search.
type SearchConfig struct {
	Locale string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database: db.DefaultConfig(),
		Server: ServerConfig{
			Addr:           ":5000",
			StaticDir:      "./static",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Auth: AuthConfig{
			SessionTTL: 12 * time.Hour,
		},
		Storage:  StorageConfig{Root: "./data/blobs"},
		Store:    StorePostgres,
		Search:   SearchConfig{Locale: "und"},
		LogLevel: "info",
	}
}

// NewViper returns a viper instance reading config.yaml from configPath with
// FILEDASH_* environment overrides (FILEDASH_DATABASE_HOST, ...).
func NewViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.SetEnvPrefix("FILEDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.dbname", d.Database.DBName)
	v.SetDefault("database.sslmode", d.Database.SSLMode)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.static_dir", d.Server.StaticDir)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("auth.secret", d.Auth.Secret)
	v.SetDefault("auth.session_ttl", d.Auth.SessionTTL)
	v.SetDefault("auth.secure_cookie", d.Auth.SecureCookie)
	v.SetDefault("storage.root", d.Storage.Root)
	v.SetDefault("store", d.Store)
	v.SetDefault("search.locale", d.Search.Locale)
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("log_level", d.LogLevel)
	return v
}

// Load reads configuration through v. A missing config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		log.Info("no config.yaml found, using defaults and env vars")
	} else {
		log.WithField("file", v.ConfigFileUsed()).Info("loaded config")
	}

	cfg := Config{
		Database: db.Config{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Server: ServerConfig{
			Addr:           v.GetString("server.addr"),
			StaticDir:      v.GetString("server.static_dir"),
			AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
		},
		Auth: AuthConfig{
			Secret:       v.GetString("auth.secret"),
			SessionTTL:   v.GetDuration("auth.session_ttl"),
			SecureCookie: v.GetBool("auth.secure_cookie"),
		},
		Storage:  StorageConfig{Root: v.GetString("storage.root")},
		Store:    strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		Search:   SearchConfig{Locale: v.GetString("search.locale")},
		Admin: AdminConfig{
			Username: v.GetString("admin.username"),
			Password: v.GetString("admin.password"),
		},
		LogLevel: v.GetString("log_level"),
	}
	return cfg, cfg.Validate()
}

// Validate checks settings shared by every command. The session secret is
// checked when the server starts.
func (c Config) Validate() error {
	switch c.Store {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive")
	}
	return nil
}
