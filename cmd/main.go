package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gadget-store-api/config"
	"github.com/oksasatya/gadget-store-api/internal/container"
	"github.com/oksasatya/gadget-store-api/internal/infrastructure/storage"
	"github.com/oksasatya/gadget-store-api/internal/interface/middleware"
	"github.com/oksasatya/gadget-store-api/internal/router"
	"github.com/oksasatya/gadget-store-api/pkg/helpers"
	"github.com/oksasatya/gadget-store-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()
	c := container.New(cfg, logger)

	if err := c.OpenStores(ctx); err != nil {
		log.Fatalf("failed to init store: %v", err)
	}

	// Redis token denylist (optional)
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			helpers.LogError(logger, "redis unreachable; denylist checks will fail open", err, nil)
		}
		c.UseRedis(rdb)
	}

	// Images: GCS when a bucket is configured, local disk otherwise
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		c.GCS = gcsClient
		c.Images = storage.NewGCSImageStore(gcsClient, cfg.GCSBucket, cfg.UploadMaxBytes)
	} else {
		local, err := storage.NewLocalImageStore(cfg.UploadsDir, cfg.PublicUploadsPath, cfg.UploadMaxBytes)
		if err != nil {
			log.Fatalf("failed to prepare uploads dir: %v", err)
		}
		c.Images = local
	}

	// Elasticsearch (optional)
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		helpers.LogError(logger, "elasticsearch disabled", err, nil)
	}
	c.ES = es

	// RabbitMQ order notifications (optional)
	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQOrderQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable; order emails disabled", err, nil)
		} else {
			c.RabbitPub = pub
		}
	}

	// Bootstrapping failures are logged inside Run; the server still starts.
	seedCtx, cancelSeed := context.WithTimeout(ctx, 30*time.Second)
	c.Seeder().Run(seedCtx, cfg.AdminEmail, cfg.AdminPassword, cfg.SeedCatalog)
	cancelSeed()

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(middleware.AccessLog(logger))
	}
	r.Use(cors.New(corsConfig(cfg)))
	r.MaxMultipartMemory = cfg.UploadMaxBytes

	if cfg.GCSBucket == "" {
		r.Static(cfg.PublicUploadsPath, cfg.UploadsDir)
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "store": cfg.StoreDriver}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	c.Close(ctxShutdown)
	logger.Info("server exited properly")
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		cc.AllowOrigins = origins
		cc.AllowCredentials = true
	} else {
		cc.AllowAllOrigins = true
	}
	return cc
}
