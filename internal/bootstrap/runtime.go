// Package bootstrap wires up database, cache, and built-in data at startup.
package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/models"
	"skillswap/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	Migrate      bool
	SeedBuiltIns bool
}

// InitRuntime connects to the database and Redis, optionally runs schema
// migration and built-in seeding, and applies the development admin
// bootstrap when enabled.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.Migrate {
		if err := database.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("database migration failed: %w", err)
		}
	}

	// May leave a nil client if Redis is unreachable; callers degrade
	// to uncached operation.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	if opts.SeedBuiltIns {
		if err := seed.Announcements(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in announcements: %w", err)
		}
	}

	return db, r, nil
}

// ensureDevAdmin creates or repairs the development admin account.
// Config validation already rejects DEV_BOOTSTRAP_ADMIN in production.
func ensureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DevAdminEmail))
	if email == "" {
		email = "admin@skillswap.local"
	}
	password := cfg.DevAdminPassword
	if password == "" {
		return fmt.Errorf("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("email = ?", email).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			admin = models.User{
				Name:     "Admin",
				Email:    email,
				Password: string(hashedPassword),
				IsAdmin:  true,
				IsPublic: false,
			}
			return tx.Create(&admin).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&models.User{}).Where("id = ?", admin.ID).Updates(map[string]any{
				"is_admin":  true,
				"is_banned": false,
				"password":  string(hashedPassword),
			}).Error
		}
	})
}
