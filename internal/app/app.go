// Package app boots the cash card service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cashvault/cashcard/internal/authz"
	"github.com/cashvault/cashcard/internal/cache"
	"github.com/cashvault/cashcard/internal/config"
	"github.com/cashvault/cashcard/internal/db"
	"github.com/cashvault/cashcard/internal/http/api"
	"github.com/cashvault/cashcard/internal/logging"
	"github.com/cashvault/cashcard/internal/models"
	"github.com/cashvault/cashcard/internal/security"
	"github.com/cashvault/cashcard/internal/service"
	"github.com/cashvault/cashcard/internal/store"
)

// Migrate opens the database and applies schema migrations.
func Migrate(_ context.Context, cfg config.AppConfig) error {
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	return db.Migrate(conn)
}

// RunServer boots the HTTP API and blocks until ctx is cancelled.
func RunServer(ctx context.Context, cfg config.AppConfig) error {
	logging.Setup(cfg.Logging)

	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	log.WithField("dialect", db.DialectName(conn)).Info("database ready")

	if errSeed := seedUsers(ctx, conn, cfg.Users); errSeed != nil {
		return errSeed
	}

	var views *cache.CardCache
	if cfg.Redis.Addr != "" {
		client, errRedis := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if errRedis != nil {
			return errRedis
		}
		defer func() { _ = client.Close() }()
		views = cache.NewCardCache(client, 5*time.Minute)
		log.WithField("addr", cfg.Redis.Addr).Info("card view cache enabled")
	}

	svc := service.NewCardService(store.NewGormCardStore(conn), authz.NewEnforcer(), views)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	api.RegisterRoutes(engine, conn, svc, cfg.JWT)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("server listening")
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errCh <- errServe
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return fmt.Errorf("app: shutdown: %w", errShutdown)
		}
		return <-errCh
	case errServe := <-errCh:
		return errServe
	}
}

// seedUsers provisions configured accounts, hashing passwords and updating
// existing rows by username.
func seedUsers(ctx context.Context, conn *gorm.DB, users []config.SeedUser) error {
	for _, seed := range users {
		if seed.Username == "" || seed.Password == "" {
			return fmt.Errorf("app: seed user missing username or password")
		}
		hash, errHash := security.HashPassword(seed.Password)
		if errHash != nil {
			return fmt.Errorf("app: hash seed password: %w", errHash)
		}

		var existing models.User
		errFind := conn.WithContext(ctx).Where("username = ?", seed.Username).First(&existing).Error
		switch {
		case errFind == nil:
			updates := map[string]any{
				"password": hash,
				"roles":    models.EncodeRoles(seed.Roles),
				"disabled": seed.Disabled,
			}
			if errUpdate := conn.WithContext(ctx).Model(&existing).Updates(updates).Error; errUpdate != nil {
				return fmt.Errorf("app: update seed user %s: %w", seed.Username, errUpdate)
			}
		case errors.Is(errFind, gorm.ErrRecordNotFound):
			user := models.User{
				Username: seed.Username,
				Password: hash,
				Roles:    models.EncodeRoles(seed.Roles),
				Disabled: seed.Disabled,
			}
			if errCreate := conn.WithContext(ctx).Create(&user).Error; errCreate != nil {
				return fmt.Errorf("app: create seed user %s: %w", seed.Username, errCreate)
			}
		default:
			return fmt.Errorf("app: query seed user %s: %w", seed.Username, errFind)
		}
		log.WithField("username", seed.Username).Info("seeded user")
	}
	return nil
}
