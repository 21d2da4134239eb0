package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/maktabat-alamal/storefront/handlers"
	"github.com/maktabat-alamal/storefront/internal/backup"
	"github.com/maktabat-alamal/storefront/internal/cache"
	"github.com/maktabat-alamal/storefront/internal/config"
	"github.com/maktabat-alamal/storefront/internal/data"
	"github.com/maktabat-alamal/storefront/internal/database"
	"github.com/maktabat-alamal/storefront/internal/events"
	"github.com/maktabat-alamal/storefront/internal/fallback"
	"github.com/maktabat-alamal/storefront/internal/menus"
	"github.com/maktabat-alamal/storefront/internal/notifier"
	"github.com/maktabat-alamal/storefront/internal/remote"
	"github.com/maktabat-alamal/storefront/internal/tokens"
	"github.com/maktabat-alamal/storefront/pkg/logger"
	"github.com/maktabat-alamal/storefront/pkg/metrics"
	"github.com/maktabat-alamal/storefront/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// log level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: remote=%v redis=%v mongo=%v minio=%v",
		cfg.Remote.BinID != "", cfg.Redis.Host != "", cfg.MongoDB.URI != "", cfg.MinIO.Endpoint != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	ctx := context.Background()

	// Connect to Redis early so both the fallback store and the rate limiter
	// can use it when configured.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Fallback store: Redis when available, otherwise in-process memory.
	var fb fallback.Store
	if redisClient != nil {
		fb = fallback.NewRedisStore(redisClient, cfg.Redis.FallbackKey)
	} else {
		logger.Warnf("Redis unavailable; fallback copies will not survive restarts")
		fb = fallback.NewMemoryStore()
	}

	rc, err := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.BinID, cfg.Remote.APIKey, cfg.Remote.Timeout)
	if err != nil {
		logger.Fatalf("invalid remote store config: %v", err)
	}

	bus := events.NewBus()
	mgr := cache.NewManager(rc, fb, bus, cfg.Cache.TTL)
	store := data.NewStore(mgr, bus)
	defer store.Close()

	// Warm the snapshot before the first request comes in.
	store.SyncAll(ctx)

	poller := notifier.New(mgr, bus, cfg.Cache.PollInterval)
	poller.Start(ctx)
	defer poller.Stop()

	// Menus live in the shared document unless a dedicated MongoDB is
	// configured for them.
	var menuRepo menus.Repository = menus.NewDocumentRepository(store)
	if cfg.MongoDB.URI != "" {
		client, db, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
		if err != nil {
			logger.Warnf("failed to connect to MongoDB, menus stay in the document store: %v", err)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			menuRepo = menus.NewMongoRepository(db.Collection("menus"))
			logger.Infof("menus served from MongoDB database %q", cfg.MongoDB.Database)
		}
	}

	var backups *backup.Service
	if cfg.MinIO.Endpoint != "" {
		backups, err = backup.NewService(&backup.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Bucket:    cfg.MinIO.Bucket,
		})
		if err != nil {
			logger.Warnf("backup storage unavailable: %v", err)
			backups = nil
		}
	}

	verifier := tokens.NewHSVerifier(cfg.JWT.Secret)
	h := handlers.NewHandler(cfg, store, mgr, menuRepo, backups)
	h.Register(r, verifier)
	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: the service still serves defaults without the remote bin,
	// but report each dependency so orchestration can tell degraded from up
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"remote": cfg.Remote.BinID != "",
			"redis":  redisClient != nil,
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("starting storefront service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
}
