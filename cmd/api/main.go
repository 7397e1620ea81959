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

	"github.com/gin-gonic/gin"

	"github.com/odm275/dev-network/internal/config"
	"github.com/odm275/dev-network/internal/database"
	"github.com/odm275/dev-network/internal/handlers"
	"github.com/odm275/dev-network/internal/middleware"
	"github.com/odm275/dev-network/internal/monitoring"
	"github.com/odm275/dev-network/internal/service"
	"github.com/odm275/dev-network/internal/store"
	"github.com/odm275/dev-network/internal/utils"
)

func main() {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	if err := utils.EnsureJWTReady(); err != nil {
		log.Fatalf("jwt: %v", err)
	}
	utils.SetPasswordCost(cfg.BcryptCost)

	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.CloseDB()

	if cfg.MigrationsEnabled {
		if err := database.MigrationsUp(); err != nil {
			log.Fatalf("migrations: %v", err)
		}
	}

	svc := service.New(
		store.NewUserStore(database.DB),
		store.NewProfileStore(database.DB),
		store.NewPostStore(database.DB),
	)
	h := handlers.New(svc, monitoring.NewService(database.DB, startedAt), cfg.MonitoringAPIKey)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		monitoring.RequestMetricsMiddleware(),
		middleware.CORSMiddleware(cfg.CORSOrigin),
	)
	h.RegisterRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("DevNetwork API starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("shutting down, grace period %s", cfg.ShutdownGracePeriod)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}
