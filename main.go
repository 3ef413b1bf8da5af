package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bean-buzz/beanbuzz-backend/config"
	"github.com/bean-buzz/beanbuzz-backend/database"
	"github.com/bean-buzz/beanbuzz-backend/handlers"
	"github.com/bean-buzz/beanbuzz-backend/mail"
	"github.com/bean-buzz/beanbuzz-backend/middleware"
	"github.com/bean-buzz/beanbuzz-backend/routes"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err)
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	client, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalw("database connection error", "error", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			sugar.Errorw("database disconnect error", "error", err)
		}
	}()

	db := client.Database(cfg.DatabaseName)
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		sugar.Fatalw("database index error", "error", err)
	}

	userStore := database.NewUserStore(db)
	menuStore := database.NewMenuStore(db)
	orderStore := database.NewOrderStore(db)
	reviewStore := database.NewReviewStore(db)

	auth := middleware.NewAuth(cfg.JWTSecret)
	mailer := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, cfg.LogoPath)

	authHandler := handlers.NewAuthHandler(userStore, auth, mailer, logger, cfg.FrontendURL)
	menuHandler := handlers.NewMenuHandler(menuStore, logger)
	orderHandler := handlers.NewOrderHandler(orderStore, menuStore, logger)
	reviewHandler := handlers.NewReviewHandler(reviewStore, logger)

	r := gin.Default()

	// CORS for the configured frontend origins
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, allowed := range cfg.CORSOrigins {
			if strings.EqualFold(origin, allowed) {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
				c.Header("Access-Control-Allow-Credentials", "true")
				break
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "BeanBuzz is up and running!"})
	})

	routes.SetupRoutes(r, auth, authHandler, menuHandler, orderHandler, reviewHandler)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		sugar.Infow("starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server error", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("server shutdown error", "error", err)
	}
	sugar.Info("server stopped")
}
