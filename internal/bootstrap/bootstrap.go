package bootstrap

import (
	"context"
	"time"

	"github.com/suPer8Hu/job-assistant/internal/catalog"
	"github.com/suPer8Hu/job-assistant/internal/chat"
	"github.com/suPer8Hu/job-assistant/internal/config"
	"github.com/suPer8Hu/job-assistant/internal/db"
	"github.com/suPer8Hu/job-assistant/internal/store/redisstore"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the shared dependencies of every binary.
type App struct {
	Cfg     config.Config
	Log     *zap.Logger
	DB      *gorm.DB
	ChatSvc *chat.Service

	redis *redisstore.Store
}

// New connects the database, optionally the Redis cache, and builds the
// dialogue engine.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	var searcher catalog.Searcher = catalog.NewRepo(gdb, log.Named("catalog"))

	var rds *redisstore.Store
	if cfg.RedisAddr != "" {
		rds = redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rds.Ping(pingCtx)
		cancel()
		if err != nil {
			// the cache falls through on errors, so a down Redis is not fatal
			log.Warn("redis unreachable, catalog cache will miss", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		searcher = catalog.NewCachedSearcher(searcher, rds, cfg.CatalogCacheTTL, log.Named("catalog_cache"))
	}

	svc := chat.NewService(chat.NewRepo(gdb), searcher, chat.Options{
		FallbackSearch: cfg.FallbackSearch,
	})

	return &App{Cfg: cfg, Log: log, DB: gdb, ChatSvc: svc, redis: rds}, nil
}

func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.Log.Sync()
}
