package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bookati/booking-api/internal/cache"
	"github.com/bookati/booking-api/internal/config"
	dbpkg "github.com/bookati/booking-api/internal/db"
	"github.com/bookati/booking-api/internal/logger"
	"github.com/bookati/booking-api/internal/middleware"
	"github.com/bookati/booking-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)

	// nil when REDIS_ADDR is unset; availability falls back to the DB
	avCache := cache.NewAvailability(cfg.RedisAddr)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, avCache)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
