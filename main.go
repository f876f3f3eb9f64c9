package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pngmarketplace/marketplace-api/config"
	"github.com/pngmarketplace/marketplace-api/logger"
	"github.com/pngmarketplace/marketplace-api/models"
	"github.com/pngmarketplace/marketplace-api/routes"
	"github.com/pngmarketplace/marketplace-api/session"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "marketplace-api",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	db := initDatabase(cfg, log)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Error("auto-migrate failed", "err", err)
		os.Exit(1)
	}

	rdb := initRedis(cfg, log)
	sessions := session.NewStore(rdb, cfg.SessionTTL)

	// Gin setup
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, sessions, rdb)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server running", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
}

// initDatabase sets up the GORM DB connection.
func initDatabase(cfg config.Config, log *slog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Error("db connection failed", "err", err)
		os.Exit(1)
	}
	return db
}

// initRedis connects the session/rate-limit store. A dead Redis is fatal:
// without it nobody can log in.
func initRedis(cfg config.Config, log *slog.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Error("redis connection failed", "err", err)
		os.Exit(1)
	}
	return rdb
}
