package database

import (
	"errors"
	"fmt"
	"os"

	"github.com/nooblk-98/DevOps-Blog/internal/config"
	"github.com/nooblk-98/DevOps-Blog/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the embedded SQLite database and applies the idempotent
// schema migration. The handle is returned to the caller; there is no
// package-level singleton, so tests can hold isolated instances.
func Connect(cfg *config.AppConfig) (*gorm.DB, error) {
	if err := os.MkdirAll(cfg.DatabaseDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	db, err := Open(cfg.DatabasePath, resolveLogLevel(cfg))
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

// Open opens a SQLite file with foreign-key enforcement on. Cascade deletes
// (post -> links, views, comments) depend on it.
func Open(path string, logLevel logger.LogLevel) (*gorm.DB, error) {
	dsn := path + "?_fk=1&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

func resolveLogLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsDev() {
		return logger.Warn
	}
	return logger.Silent
}

// migrate runs GORM auto-migration for all models. Safe to call on every
// startup; existing tables are left alone.
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
		&models.CategoryModel{},
		&models.TagModel{},
		&models.PostModel{},
		&models.CommentModel{},
		&models.SettingModel{},
		&models.PostViewModel{},
	)
}

// SeedAdmin creates the configured admin account when no user with that
// email exists yet.
func SeedAdmin(db *gorm.DB, email, password string) error {
	var existing models.UserModel
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.UserModel{Email: email, PasswordHash: string(hash)}).Error
}
