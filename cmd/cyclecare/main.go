package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/terraincognita07/cyclecare/internal/api"
	"github.com/terraincognita07/cyclecare/internal/cli"
	"github.com/terraincognita07/cyclecare/internal/db"
	"github.com/terraincognita07/cyclecare/internal/security"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	location := mustLoadLocation(getEnv("TZ", "UTC"), logger)
	time.Local = location

	secretKey, err := resolveSecretKey()
	if err != nil {
		exitWithError(logger, "invalid configuration", err)
	}
	dbPath := getEnv("DB_PATH", filepath.Join("data", "cyclecare.db"))

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "serve":
		port, err := resolvePort()
		if err != nil {
			exitWithError(logger, "invalid configuration", err)
		}
		if err := serve(secretKey, dbPath, port, location, logger); err != nil {
			exitWithError(logger, "server exited", err)
		}
	case "token":
		ttl, err := parseTokenArgs(os.Args[2:])
		if err != nil {
			exitWithError(logger, "invalid token arguments", err)
		}
		if err := cli.RunIssueTokenCommand(dbPath, secretKey, ttl, os.Stdout, logger); err != nil {
			exitWithError(logger, "token command failed", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (expected serve or token)\n", command)
		os.Exit(2)
	}
}

func serve(secretKey string, dbPath string, port string, location *time.Location, logger *zap.Logger) error {
	database, closeDatabase, err := openDatabase(dbPath, logger)
	if err != nil {
		return err
	}
	defer closeDatabase()

	tokenKey, err := security.DeriveTokenKey(secretKey)
	if err != nil {
		return fmt.Errorf("token key init failed: %w", err)
	}

	handler, err := api.NewHandler(database, tokenKey, location, logger)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "CycleCare",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(api.RequestLogger(logger.Named("http")))
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("cyclecare listening",
		zap.String("addr", "0.0.0.0:"+port),
		zap.String("db", dbPath),
		zap.String("tz", location.String()),
	)
	return app.Listen(":" + port)
}

// openDatabase returns the gorm handle and a func that closes its pool.
func openDatabase(dbPath string, logger *zap.Logger) (*gorm.DB, func(), error) {
	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database handle: %w", err)
	}
	return database, func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("database close failed", zap.Error(err))
		}
	}, nil
}

// exitWithError flushes the logger before exiting with status 1.
func exitWithError(logger *zap.Logger, message string, err error) {
	logger.Error(message, zap.Error(err))
	_ = logger.Sync()
	os.Exit(1)
}

func parseTokenArgs(args []string) (time.Duration, error) {
	flags := flag.NewFlagSet("token", flag.ContinueOnError)
	ttl := flags.Duration("ttl", security.DefaultDeviceTokenTTL, "token lifetime")
	if err := flags.Parse(args); err != nil {
		return 0, err
	}
	if *ttl <= 0 {
		return 0, errors.New("ttl must be positive")
	}
	return *ttl, nil
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := strings.TrimSpace(getEnv("PORT", "8080"))
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func mustLoadLocation(name string, logger *zap.Logger) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("invalid TZ, falling back to UTC", zap.String("tz", name))
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
