package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/pretest-uz/PreTest-DashboardService/internal/config"
	"github.com/pretest-uz/PreTest-DashboardService/pkg/logger"
)

// Накатывает схему хранилища сессий в PostgreSQL
// Использование: migrate [up|down|version]
func main() {
	configPath := "config.toml"
	if v := os.Getenv("PRETEST_CONFIG"); v != "" {
		configPath = v
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	dbURL := cfg.Database.URL()
	if v := os.Getenv("PRETEST_DB_URL"); v != "" {
		dbURL = v
	}

	migrationsPath, err := findMigrations()
	if err != nil {
		log.Fatal("Migrate: %v", err)
	}

	m, err := migrate.New("file://"+migrationsPath, dbURL)
	if err != nil {
		log.Fatal("Migrate: failed to initialize: %v", err)
	}
	defer m.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Migrate: up failed: %v", err)
		}
		log.Info("Migrate: up successful (%s)", migrationsPath)
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Migrate: down failed: %v", err)
		}
		log.Info("Migrate: down successful")
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal("Migrate: failed to read version: %v", err)
		}
		log.Info("Migrate: version=%d, dirty=%t", version, dirty)
	default:
		log.Fatal("Migrate: unknown command %q, expected up, down or version", cmd)
	}
}

// findMigrations ищет каталог migrations от рабочего каталога вверх
func findMigrations() (string, error) {
	current, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for i := 0; i < 6; i++ {
		candidate := filepath.Join(current, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", errors.New("migrations directory not found")
}
