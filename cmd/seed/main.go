package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/gadget-store-api/config"
	"github.com/oksasatya/gadget-store-api/internal/container"
	"github.com/oksasatya/gadget-store-api/pkg/helpers"
)

// seed runs the startup bootstrapping on demand: the admin account and, if
// the catalog is empty, the default products.
func main() {
	skipCatalog := flag.Bool("skip-catalog", false, "only seed the admin account")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	c := container.New(cfg, logger)
	if err := c.OpenStores(ctx); err != nil {
		log.Fatalf("failed to init store: %v", err)
	}
	defer c.Close(ctx)

	if es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass); err == nil {
		c.ES = es
	}

	seeder := c.Seeder()
	if err := seeder.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	log.Printf("admin ensured: email=%s", cfg.AdminEmail)

	if *skipCatalog || !cfg.SeedCatalog {
		return
	}
	if err := seeder.SeedCatalog(ctx); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}
}
