package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort          = 5174
	defaultEnv           = "development"
	defaultDatabasePath  = "db/data.sqlite"
	defaultUploadsDir    = "public/uploads"
	defaultJWTSecret     = "dev-secret-key"
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
)

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment variables taking precedence over file values.
type AppConfig struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"` // "development" | "production"
	DatabasePath   string   `yaml:"database_path"`
	UploadsDir     string   `yaml:"uploads_dir"`
	JWTSecret      string   `yaml:"jwt_secret"`
	AdminEmail     string   `yaml:"admin_email"`
	AdminPassword  string   `yaml:"admin_password"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads the YAML config at path (missing file is fine, defaults apply)
// and overlays environment variables.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		Port:          defaultPort,
		Env:           defaultEnv,
		DatabasePath:  defaultDatabasePath,
		UploadsDir:    defaultUploadsDir,
		JWTSecret:     defaultJWTSecret,
		AdminEmail:    defaultAdminEmail,
		AdminPassword: defaultAdminPassword,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("UPLOADS_DIR"); v != "" {
		cfg.UploadsDir = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.AdminEmail = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.AllowedOrigins = origins
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// DatabaseDir returns the directory holding the SQLite file.
func (c *AppConfig) DatabaseDir() string { return filepath.Dir(c.DatabasePath) }
