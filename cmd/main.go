// @title Tourmap Backend API
// @version 1.0
// @description REST API for the tourism map: users, highlights, tours and feedback.

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"TOURMAP_BACK-END/docs"
	"TOURMAP_BACK-END/internal/config"
	"TOURMAP_BACK-END/internal/db"
	"TOURMAP_BACK-END/internal/handlers"
	"TOURMAP_BACK-END/internal/logger"
	"TOURMAP_BACK-END/internal/repository"
	"TOURMAP_BACK-END/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	err = run(cfg, zlog)
	if err != nil {
		zlog.Error("server exited", zap.Error(err))
	}
	_ = zlog.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Database ---
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()
	zlog.Info("connected to postgres",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name))

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(conn.DB); err != nil {
			return err
		}
		zlog.Info("schema migrated")
	}

	// --- HTTP Handlers ---
	users := repository.NewUserRepository(conn)
	highlights := repository.NewHighlightRepository(conn)
	tours := repository.NewTourRepository(conn)
	feedbacks := repository.NewFeedbackRepository(conn)

	router := routes.NewRouter(cfg, routes.Handlers{
		Auth:       handlers.NewAuthHandler(users, &cfg.JWT, zlog),
		Dashboard:  handlers.NewDashboardHandler(users, &cfg.JWT, zlog),
		Highlights: handlers.NewHighlightsHandler(highlights, zlog),
		Feedback:   handlers.NewFeedbackHandler(feedbacks, users, highlights, tours, zlog),
		Users:      handlers.NewUsersHandler(users, feedbacks, zlog),
		Tours:      handlers.NewToursHandler(tours, highlights, zlog),
		Map:        handlers.NewMapHandler(highlights, zlog),
		Health:     handlers.NewHealthHandler(conn),
	}, zlog)

	docs.SwaggerInfo.BasePath = cfg.Server.BasePath

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	// --- HTTP Server + Graceful Shutdown ---
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      c.Handler(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("HTTP server listening", zap.String("addr", srv.Addr), zap.String("base_path", cfg.Server.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	zlog.Info("server stopped")
	return nil
}
