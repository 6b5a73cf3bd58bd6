package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bidwar/internal/auth"
	"bidwar/internal/config"
	"bidwar/internal/database"
	"bidwar/internal/events"
	"bidwar/internal/handlers"
	"bidwar/internal/jobs"
	"bidwar/internal/repository"
	"bidwar/internal/services"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()
	zap.ReplaceGlobals(log)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	// Shared JWT verification secret
	auth.InitJWT(cfg.JwtSecret)

	// Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// Database
	db, err := database.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database connected")

	// Event publisher (lazily connects on first publish)
	publisher := events.NewNATSPublisher(cfg.NatsURL, cfg.EventReconnectBackoff, log)
	defer publisher.Close()

	// Core services
	repo := repository.NewRepository(db)
	auctionService := services.NewAuctionService(repo, publisher, log)

	// Background lifecycle sweeper
	sweeper := jobs.NewAuctionSweeper(auctionService, cfg.SweepInterval, log)
	go sweeper.Start(ctx)
	defer sweeper.Stop()

	// Handlers
	auctionHandler := handlers.NewAuctionHandler(auctionService)
	bidHandler := handlers.NewBidHandler(auctionService)

	// Gin router
	router := gin.New()
	router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(log, true))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handlers.RegisterRoutes(router, auctionHandler, bidHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HttpServerPort),
		Handler: router,
	}

	go func() {
		log.Info("http server listening", zap.Uint16("port", cfg.HttpServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}
}
