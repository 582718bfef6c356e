package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/pretest-uz/PreTest-DashboardService/internal/config"
	"github.com/pretest-uz/PreTest-DashboardService/internal/infra/storage/sessionstore"
	"github.com/pretest-uz/PreTest-DashboardService/internal/service/session"
	"github.com/pretest-uz/PreTest-DashboardService/pkg/logger"
	"github.com/pretest-uz/PreTest-DashboardService/pkg/psqlbuilder"
)

const storePingTimeout = 5 * time.Second

// openSessionStore открывает хранилище сессий по session.backend
// Возвращённая функция закрывает соединения хранилища
func openSessionStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (session.Store, func(), error) {
	switch cfg.Session.Backend {
	case config.SessionBackendPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		pingCtx, cancel := context.WithTimeout(ctx, storePingTimeout)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		log.Info("Session store: PostgreSQL (host=%s, port=%d, db=%s); schema is managed by cmd/migrate",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		return sessionstore.NewRepository(db, psqlbuilder.DialectPostgres), func() { db.Close() }, nil

	case config.SessionBackendSQLite:
		db, err := sql.Open("sqlite", cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite %s: %w", cfg.SQLite.Path, err)
		}
		// SQLite не допускает параллельных писателей
		db.SetMaxOpenConns(1)

		repo := sessionstore.NewRepository(db, psqlbuilder.DialectSQLite)
		if err := repo.CreateSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("Session store: SQLite (path=%s)", cfg.SQLite.Path)

		return repo, func() { db.Close() }, nil

	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		store := sessionstore.NewRedisStore(client, time.Duration(cfg.Session.TTLHours)*time.Hour)
		pingCtx, cancel := context.WithTimeout(ctx, storePingTimeout)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			client.Close()
			return nil, nil, err
		}
		log.Info("Session store: Redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

		return store, func() { client.Close() }, nil

	case config.SessionBackendMemory:
		log.Warn("Session store: in-memory, sessions are lost on restart")
		return sessionstore.NewMemoryStore(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("%w: unknown session backend %q", config.ErrInvalidConfig, cfg.Session.Backend)
}
