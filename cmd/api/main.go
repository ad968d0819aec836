package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	models "github.com/chrisdamba/babysitter/internal"
	"github.com/chrisdamba/babysitter/internal/api"
	"github.com/chrisdamba/babysitter/internal/auth"
	"github.com/chrisdamba/babysitter/internal/middleware"
	"github.com/chrisdamba/babysitter/internal/ports"
	"github.com/chrisdamba/babysitter/internal/repository"
	"github.com/chrisdamba/babysitter/internal/service"
	"github.com/chrisdamba/babysitter/pkg/config"
	"github.com/chrisdamba/babysitter/pkg/health"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const versionPrefix = "/v1"

type App struct {
	config *config.Config
	logger *slog.Logger
	server *http.Server
	db     *pgxpool.Pool
}

func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		config: cfg,
		logger: logger,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	if err := a.setupServer(ctx); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	config, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

func (a *App) setupServer(ctx context.Context) error {
	repo := repository.NewBookingRepository(a.db)

	catalog, err := a.loadStatusCatalog(ctx, repo)
	if err != nil {
		return err
	}

	bookingService := service.NewBookingService(repo,
		service.WithLogger(a.logger),
		service.WithNumberAttempts(a.config.Booking.NumberAttempts),
	)

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      a.setupRouter(bookingService, catalog),
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.logger.Handler(), slog.LevelError),
	}

	return nil
}

// loadStatusCatalog overlays labels stored in booking_statuses on the
// built-in ones when enabled.
func (a *App) loadStatusCatalog(ctx context.Context, repo *repository.BookingRepository) (models.StatusCatalog, error) {
	if !a.config.Booking.StatusLabelsFromDB {
		return models.NewStatusCatalog(), nil
	}

	stored, err := repo.ListStatuses(ctx)
	if err != nil {
		return models.StatusCatalog{}, fmt.Errorf("failed to load booking statuses: %w", err)
	}
	a.logger.Info("loaded status labels", slog.Int("count", len(stored)))
	return models.NewStatusCatalog(stored...), nil
}

func (a *App) setupRouter(bookingService ports.BookingService, catalog models.StatusCatalog) http.Handler {
	router := http.NewServeMux()

	var pinger health.Pinger
	if a.db != nil {
		pinger = a.db
	}
	router.HandleFunc("GET "+versionPrefix+"/health", health.HealthGet(pinger))

	handler := api.NewHandler(bookingService, auth.Policy{}, catalog, ports.SystemClock{}, a.logger)
	handler.Register(router, versionPrefix)

	chain := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Recovery(a.logger),
		middleware.Logger(a.logger),
	}
	if a.config.Auth.JWTSecret != "" {
		authenticator := auth.NewAuthenticator(a.config.Auth.JWTSecret, a.config.Auth.Issuer, a.config.Auth.TokenTTL)
		chain = append(chain, middleware.Authenticate(authenticator, a.logger))
	} else {
		a.logger.Warn("JWT_SECRET is not set, every request is treated as anonymous")
	}

	return middleware.Chain(router, chain...)
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.logger.Info("starting server", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		a.logger.Info("starting graceful shutdown", slog.String("signal", sig.String()))
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("server stopped")
	return nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	ctx := context.Background()

	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	app := NewApp(cfg, logger)
	if err := app.Initialize(ctx); err != nil {
		logger.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
