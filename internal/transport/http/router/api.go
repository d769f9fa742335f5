package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"bucketlist/internal/core/auth"
	"bucketlist/internal/core/config"
	"bucketlist/internal/core/server"
	"bucketlist/internal/transport/http/ez"
	mdw "bucketlist/internal/transport/http/middleware"
)

type Deps struct {
	Log      *zap.Logger
	JWT      *auth.JWTer
	Limits   config.Limits
	BasePath string
	Registry *Registry
	// Health 可选：/health 时探活下游（DB / Redis）
	Health func(ctx context.Context) error
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log)

	timeout := time.Duration(d.Limits.RequestTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxBody := d.Limits.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	maxConcurrent := d.Limits.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 300
	}

	// 中间件
	r.Use(mdw.RequestID())
	if d.Limits.RPS > 0 {
		r.Use(mdw.RateLimit(rate.Limit(d.Limits.RPS), d.Limits.Burst))
	}
	if d.Limits.PerIPRPS > 0 {
		r.Use(mdw.RateLimitPerIP(rate.Limit(d.Limits.PerIPRPS), d.Limits.PerIPBurst))
	}
	r.Use(
		mdw.ConcurrencyLimit(maxConcurrent),
		mdw.MaxBodyBytes(maxBody),
		mdw.Timeout(timeout),
		mdw.SimpleRecovery(d.Log),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(c.Request.Context()); err != nil {
				d.Log.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 前缀
	base := d.BasePath
	if base == "" {
		base = "/api"
	}
	api := r.Group(base)

	// 鉴权分组
	private := api.Group("")
	private.Use(mdw.AuthJWT(d.JWT))

	if d.Registry != nil {
		d.Registry.MountAll(ez.New(api, d.Log), ez.New(private, d.Log))
	}
	return r
}
