// Package main is the entrypoint for the accountd signup server.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/accountd/accountd/internal/cache"
	"github.com/accountd/accountd/internal/config"
	"github.com/accountd/accountd/internal/controller"
	"github.com/accountd/accountd/internal/handler"
	"github.com/accountd/accountd/internal/metrics"
	"github.com/accountd/accountd/internal/middleware"
	"github.com/accountd/accountd/internal/repository"
	"github.com/accountd/accountd/internal/repository/mongodb"
	"github.com/accountd/accountd/internal/server"
	"github.com/accountd/accountd/internal/service"
	"github.com/accountd/accountd/internal/validation"
)

// accountStore is what the server needs from either storage driver.
type accountStore interface {
	service.AccountRepository
	handler.HealthChecker
	Shutdown(ctx context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error(
			"failed to connect to account store",
			slog.String("driver", cfg.StorageDriver),
			slog.String("error", sanitizeError(err, cfg.StoreURL())),
			slog.String("store_url", redactURL(cfg.StoreURL())),
		)
		os.Exit(1)
	}
	logger.Info("connected to account store", "driver", cfg.StorageDriver)

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		_ = store.Shutdown(context.Background())
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	recorder := metrics.NewInMemory()
	accounts := service.NewAccountService(store, recorder)
	signup := controller.NewSignUpController(validation.NewEmailValidator(), accounts, logger, recorder)

	r := setupRouter(routes{
		root:    handler.New(),
		health:  handler.NewHealthHandler(cfg.StorageDriver, store, cacheClient),
		signup:  handler.NewSignupHandler(signup, logger),
		metrics: handler.NewMetricsHandler(recorder),
		limiter: cacheClient,
	}, cfg, logger)

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	srv.OnShutdown(cfg.StorageDriver, store.Shutdown)
	srv.OnShutdown("redis", cacheClient.Shutdown)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"storage_driver", cfg.StorageDriver,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// openStore connects the account store selected by STORAGE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (accountStore, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		repo, err := repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.DriverMongo:
		store, err := mongodb.New(ctx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.StorageDriver)
	}
}

// initLogger builds the process logger and installs it as the default.
func initLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(newLogHandler(os.Stdout, cfg))
	slog.SetDefault(logger)

	return logger
}

// newLogHandler picks the format and level from cfg. Development builds
// also record the source location.
func newLogHandler(w io.Writer, cfg *config.Config) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     parseLogLevel(cfg.LogLevel),
		AddSource: cfg.IsDevelopment(),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return middleware.NewContextHandler(h)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL drops the password from a connection URL.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			username = "redacted"
		}
		parsed.User = url.User(username)
	}

	return parsed.String()
}

// sanitizeError replaces connection secrets in an error message.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
