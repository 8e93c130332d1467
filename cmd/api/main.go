// Package main runs the student portal web server.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ultrahd-dev/student-portal/internal/auth"
	"github.com/Ultrahd-dev/student-portal/internal/catalog"
	"github.com/Ultrahd-dev/student-portal/internal/config"
	"github.com/Ultrahd-dev/student-portal/internal/database"
	"github.com/Ultrahd-dev/student-portal/internal/jwt"
	"github.com/Ultrahd-dev/student-portal/internal/server"
	"github.com/Ultrahd-dev/student-portal/internal/students"
	"github.com/Ultrahd-dev/student-portal/internal/users"
	"github.com/Ultrahd-dev/student-portal/internal/web"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting student portal", slog.String("env", cfg.Env))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	db, err := database.Open(ctx, cfg.Database, log)
	cancel()
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()
	log.Info("connected to database", slog.String("host", cfg.Database.Host), slog.String("name", cfg.Database.DBName))

	userService := users.NewService(users.NewRepository(db), bcrypt.DefaultCost)
	studentService := students.NewService(students.NewRepository(db))
	catalogService := catalog.NewService(catalog.NewRepository(db))

	tokens := jwt.NewManager(cfg.Session.Secret, cfg.Session.TTL)

	handler := server.New(server.Deps{
		Users:    userService,
		Students: studentService,
		Catalog:  catalogService,
		Sessions: auth.NewSessions(tokens, cfg.Session.CookieName, cfg.Session.Secure),
		Limiter:  auth.NewLimiter(cfg.Login.MaxAttempts, cfg.Login.Window, cfg.Login.LockDuration),
		Flashes:  web.NewFlashes(cfg.Session.Secret, cfg.Session.Secure),
		Log:      log,
		Ping:     db.PingContext,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      otelhttp.NewHandler(handler, "student-portal"),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, stopping server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down gracefully", slog.String("error", err.Error()))
		return
	}
	log.Info("server stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
