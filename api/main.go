package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	_ "github.com/rogerio-castellano/market-api/docs"
	"github.com/rogerio-castellano/market-api/internal/config"
	"github.com/rogerio-castellano/market-api/internal/db"
	api "github.com/rogerio-castellano/market-api/internal/http"
	"github.com/rogerio-castellano/market-api/internal/http/handlers"
	rl "github.com/rogerio-castellano/market-api/internal/http/rate_limiter"
	"github.com/rogerio-castellano/market-api/internal/order"
	"github.com/rogerio-castellano/market-api/internal/repo"
	"github.com/rogerio-castellano/market-api/pkg/logger"
)

// @title Market API
// @version 1.0
// @description REST API for users, products and orders with transactional order placement.
// @host localhost:8080
// @BasePath /
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("❌ Could not build logger: %v", err)
	}
	defer zl.Sync()
	sugar := zl.Sugar()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalf("❌ Could not connect to database: %v", err)
	}
	defer database.Close()

	users := repo.NewPostgresUserRepository(database)
	products := repo.NewPostgresProductRepository(database)
	orders := repo.NewPostgresOrderRepository(database)
	placement := order.NewPlacementService(users, products, orders)

	h := handlers.New(users, products, orders, placement, sugar)

	visitors := rl.NewRegistry(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go visitors.StartCleanupLoop()

	r := api.NewRouter(h, visitors, sugar)
	addr := fmt.Sprintf(":%d", cfg.Port)
	sugar.Infof("✅ Server running on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		sugar.Fatal(err)
	}
}
