package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/quilldocs/quill/handlers"
	"github.com/quilldocs/quill/internal/config"
	"github.com/quilldocs/quill/internal/document/repository"
	docservice "github.com/quilldocs/quill/internal/document/service"
	"github.com/quilldocs/quill/internal/markdown"
	"github.com/quilldocs/quill/internal/sessions"
	"github.com/quilldocs/quill/internal/users"
	"github.com/quilldocs/quill/pkg/logger"
	"github.com/quilldocs/quill/pkg/metrics"
	"github.com/quilldocs/quill/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: data_dir=%s users_file=%s redis=%v",
		cfg.Storage.DataDir, cfg.Storage.CredentialsFile, cfg.Redis.Host != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(handlers.LoadTemplates())

	// Connect to Redis early so sessions and the rate-limiter can use it
	// when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Stores and services
	docRepo, err := repository.NewFileRepo(cfg.Storage.DataDir)
	if err != nil {
		logger.Fatalf("failed to open data dir: %v", err)
	}
	docsSvc := docservice.NewFileService(docRepo, markdown.New())
	usersSvc := users.NewService(users.NewFileStore(cfg.Storage.CredentialsFile))

	// Prefer Redis-backed sessions when available; fall back to in-process
	var sessionRepo sessions.Repository
	if redisClient != nil {
		sessionRepo = sessions.NewRedisRepository(redisClient, "session:")
		logger.Infof("using Redis for session storage")
	} else {
		sessionRepo = sessions.NewMemoryRepository()
		logger.Infof("using in-memory session storage")
	}
	sessionsSvc := sessions.NewService(sessionRepo, cfg.Session.TTL)

	r.Use(middleware.SessionMiddleware(sessionsSvc, cfg.Session.CookieName))

	// Optional global rate limiter (per-user when signed in, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint -- return 200 only when the backing stores are usable
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		if _, err := docRepo.List(); err != nil {
			deps["documents"] = false
			ready = false
		} else {
			deps["documents"] = true
		}

		if err := usersSvc.Check(); err != nil {
			deps["credentials"] = false
			ready = false
		} else {
			deps["credentials"] = true
		}

		if redisClient != nil {
			deps["redis"] = redisClient.Ping(c.Request.Context()).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Register page handlers
	guard := middleware.RequireSignedIn(sessionsSvc)
	handlers.NewAuthHandler(usersSvc, sessionsSvc).Register(r)
	handlers.NewDocumentHandler(docsSvc, sessionsSvc).Register(r, guard)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting quill on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
