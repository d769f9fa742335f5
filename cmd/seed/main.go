// seed 用 JSON 目录整体替换分类与灵感库，并清掉目录缓存。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bucketlist/internal/core/cache"
	"bucketlist/internal/core/config"
	"bucketlist/internal/core/database"
	"bucketlist/internal/core/logger"
	"bucketlist/internal/seed"
	"bucketlist/internal/service"
)

func main() {
	var (
		source  = flag.String("source", "", "embedded | file | s3 (默认取 seed.source)")
		path    = flag.String("path", "", "file 源路径")
		dryRun  = flag.Bool("dry-run", false, "只校验，不写库")
		timeout = flag.Duration("timeout", 2*time.Minute, "整体超时")
	)
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	if *source != "" {
		cfg.Seed.Source = *source
	}
	if *path != "" {
		cfg.Seed.Path = *path
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg, log, *dryRun); err != nil {
		log.Error("seed failed", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, dryRun bool) error {
	src, err := seed.NewSource(ctx, cfg.Seed)
	if err != nil {
		return err
	}
	catalog, err := seed.Load(ctx, src)
	if err != nil {
		return err
	}
	cats, ideas := catalog.Build()
	log.Info("catalog loaded",
		zap.String("source", src.Name()),
		zap.Int("categories", len(cats)),
		zap.Int("ideas", len(ideas)),
	)
	if dryRun {
		return nil
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             log,
	})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.DB.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("automigrate: %w", err)
		}
	}

	st, err := seed.Apply(ctx, db, catalog)
	if err != nil {
		return err
	}
	log.Info("catalog applied",
		zap.Int("categories", st.Categories),
		zap.Int("ideas", st.Ideas),
		zap.Int("usage_preserved", st.Preserved),
	)

	if cfg.Redis.Addr == "" {
		return nil
	}
	rc := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer rc.Close()
	n, err := rc.InvalidatePrefix(ctx, service.CachePrefix)
	if err != nil {
		// 缓存会按 TTL 自然过期
		log.Warn("catalog cache invalidation failed", zap.Error(err))
		return nil
	}
	log.Info("catalog cache invalidated", zap.Int("keys", n))
	return nil
}
