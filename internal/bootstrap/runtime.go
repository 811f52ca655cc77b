// Package bootstrap wires the runtime dependencies shared by the command
// entry points and integration tests.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"offerhub/internal/cache"
	"offerhub/internal/config"
	"offerhub/internal/database"
	"offerhub/internal/models"
	"offerhub/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemo     bool
	DemoUsers    int
	DemoServices int
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevAdminUser(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin user: %w", err)
	}

	if opts.SeedDemo {
		users := opts.DemoUsers
		if users <= 0 {
			users = 25
		}
		services := opts.DemoServices
		if services <= 0 {
			services = 50
		}
		if _, err := seed.NewSeeder(db).SeedMarketplace(users, services); err != nil {
			return nil, nil, fmt.Errorf("demo seeding failed: %w", err)
		}
	}

	return db, r, nil
}

// ensureDevAdminUser creates an account for the first configured admin
// wallet in development, so admin routes are usable out of the box.
func ensureDevAdminUser(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || cfg.AdminWallets == "" {
		return nil
	}

	wallet := strings.TrimSpace(strings.Split(cfg.AdminWallets, ",")[0])
	if wallet == "" {
		return nil
	}

	var existing models.User
	err := db.Where("wallet_address = ?", wallet).First(&existing).Error
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	admin := models.User{
		WalletAddress: wallet,
		Username:      "offerhub_admin",
		IsActive:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("development admin user bootstrap ensured for wallet %s", wallet)
	return nil
}
