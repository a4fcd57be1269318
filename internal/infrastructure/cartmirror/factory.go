package cartmirror

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cahoico/storefront/internal/domain/cart"
	"github.com/cahoico/storefront/internal/infrastructure/config"
	"github.com/cahoico/storefront/internal/infrastructure/logger"
)

// NewMirror builds the configured cart mirror backend. The mirror is a
// best-effort convenience, so backend failures degrade to the in-memory
// mirror with a warning instead of refusing to start.
func NewMirror(cfg *config.Config, log *zap.Logger) (cart.Mirror, error) {
	switch cfg.Cart.MirrorBackend {
	case "memory":
		log.Info("using in-memory cart mirror")
		return NewInMemoryMirror(), nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, falling back to in-memory cart mirror", zap.Error(err))
			return NewInMemoryMirror(), nil
		}

		log.Info("using redis cart mirror",
			zap.String("addr", fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)),
			zap.String("key", cfg.Cart.MirrorKey),
		)
		return NewRedisMirror(client, cfg.Cart.MirrorKey), nil

	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.Cart.SQLitePath), &gorm.Config{
			Logger: logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)),
		})
		if err != nil {
			log.Warn("sqlite unavailable, falling back to in-memory cart mirror", zap.Error(err))
			return NewInMemoryMirror(), nil
		}

		mirror, err := NewSQLiteMirror(db, cfg.Cart.MirrorKey)
		if err != nil {
			log.Warn("sqlite migration failed, falling back to in-memory cart mirror", zap.Error(err))
			return NewInMemoryMirror(), nil
		}

		log.Info("using sqlite cart mirror",
			zap.String("path", cfg.Cart.SQLitePath),
			zap.String("slot", cfg.Cart.MirrorKey),
		)
		return mirror, nil

	default:
		return nil, fmt.Errorf("unknown cart mirror backend: %q", cfg.Cart.MirrorBackend)
	}
}
