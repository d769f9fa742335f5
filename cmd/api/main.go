package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bucketlist/internal/core/auth"
	"bucketlist/internal/core/cache"
	"bucketlist/internal/core/config"
	"bucketlist/internal/core/database"
	"bucketlist/internal/core/logger"
	"bucketlist/internal/core/server"
	"bucketlist/internal/repo"
	"bucketlist/internal/service"
	"bucketlist/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Filename:   cfg.Log.File.Filename,
		MaxSizeMB:  cfg.Log.File.MaxSizeMB,
		MaxBackups: cfg.Log.File.MaxBackups,
		MaxAgeDays: cfg.Log.File.MaxAgeDays,
		Compress:   cfg.Log.File.Compress,
	})
	defer cleanup()
	defer logger.RedirectStdLog(log)()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	mustMigrate(cfg, db, log)

	// 缓存（未配置 redis.addr 时为 nil，直接查库）
	var rc *cache.Cache
	if cfg.Redis.Addr != "" {
		rc = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
			_ = rc.Close()
			rc = nil
		} else {
			log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
		cancel()
	}
	if rc != nil {
		defer rc.Close()
	}

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL(),
	}

	// 依赖
	userRepo := repo.NewUserRepo(db)
	listRepo := repo.NewListRepo(db)
	itemRepo := repo.NewItemRepo(db)
	catalogRepo := repo.NewCatalogRepo(db)

	reg := router.DefaultRegistry(router.Services{
		Users: service.NewUserService(userRepo, jwter, log),
		Lists: service.NewListService(listRepo, itemRepo, catalogRepo, log),
		Catalog: service.NewCatalogService(catalogRepo, rc, service.CatalogTTL{
			Categories: time.Duration(cfg.Catalog.CategoriesTTLMin) * time.Minute,
			Ideas:      time.Duration(cfg.Catalog.IdeasTTLMin) * time.Minute,
			Search:     time.Duration(cfg.Catalog.SearchTTLMin) * time.Minute,
		}),
		Reminders: service.NewReminderService(listRepo, userRepo),
	})

	// 路由
	r := router.NewAPIEngine(router.Deps{
		Log:      log,
		JWT:      jwter,
		Limits:   cfg.Limits,
		BasePath: cfg.App.HTTP.BasePath,
		Registry: reg,
		Health: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("bucketlist api starting",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+cfg.App.HTTP.BasePath),
	)

	// 异步启动
	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("bucketlist api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("bucketlist api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

func mustMigrate(cfg *config.Config, db *gorm.DB, l *zap.Logger) {
	if cfg.DB.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}
	if cfg.DB.ExtraMigrations {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		applied, err := database.RunExtraMigrations(ctx, db, cfg.DB.Driver)
		if err != nil {
			l.Fatal("extra migrations failed", zap.Error(err))
		}
		l.Info("extra migrations", zap.Bool("applied", applied))
	}
}
