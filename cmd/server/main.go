// Package main is the entry point for the API server.
// It initializes all dependencies, sets up the HTTP server,
// starts the recently-deleted reaper and shuts everything down on a signal.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wealthcheck/internal/config"
	"wealthcheck/internal/handlers"
	"wealthcheck/internal/middleware"
	"wealthcheck/internal/repositories"
	"wealthcheck/internal/repositories/cache"
	"wealthcheck/internal/routes"
	"wealthcheck/internal/services/invalidation"
	"wealthcheck/internal/services/metrics"
	"wealthcheck/internal/services/reaper"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := repositories.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var (
		cacheRepo   repositories.CacheRepository
		cachePinger handlers.Pinger
		redisCache  *cache.RedisCache
	)
	switch cfg.Cache.Driver {
	case "memory":
		cacheRepo = cache.NewMemoryCache(cfg.Cache.TTL)
		log.Println("✅ Using in-process cache")
	default:
		redisCache = cache.NewRedisCache(cache.NewRedisClient(cfg.Redis), cfg.Cache.TTL)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.HealthCheck(ctx); err != nil {
			log.Printf("⚠️ Redis not reachable at startup: %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
		cancel()
		cacheRepo = redisCache
		cachePinger = redisCache
	}

	invalidator := invalidation.New(cacheRepo, cfg.Cache.EvictionTimeout)
	collector := metrics.NewInMemory()

	app := fiber.New(fiber.Config{
		AppName:      "wealthcheck",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(middleware.RequestID())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderRequestID,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: !strings.Contains(cfg.Server.AllowOrigins, "*"),
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestID}\n",
	}))

	app.Use("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		DB:          db,
		JWT:         cfg.JWT,
		Cache:       cacheRepo,
		CachePinger: cachePinger,
		Invalidator: invalidator,
		Metrics:     collector,
	})

	var sweeper *reaper.Reaper
	if cfg.Reaper.Enabled {
		sweeper, err = reaper.New(repositories.NewCleanupRepository(db), cfg.Reaper)
		if err != nil {
			log.Fatalf("Failed to configure reaper: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("🚀 Listening on :%s", cfg.Server.Port)
		return app.Listen(":" + cfg.Server.Port)
	})

	if sweeper != nil {
		sweeper.Start(gctx)
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")

		if sweeper != nil {
			sweeper.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := app.ShutdownWithContext(shutdownCtx)

		if ferr := invalidator.Flush(shutdownCtx); ferr != nil {
			log.Printf("⚠️ Pending cache evictions dropped: %v", ferr)
		}
		if redisCache != nil {
			if cerr := redisCache.Close(); cerr != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", cerr)
			}
		}
		if cerr := repositories.Close(db); cerr != nil {
			log.Printf("⚠️ Failed to close database connection: %v", cerr)
		}
		return err
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Println("✅ Server stopped")
}
