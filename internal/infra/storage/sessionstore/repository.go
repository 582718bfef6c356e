package sessionstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/pretest-uz/PreTest-DashboardService/pkg/psqlbuilder"
)

const tableName = "client_session_values"

// schemaSQL схема для SQLite; для PostgreSQL та же схема накатывается миграциями
const schemaSQL = `
CREATE TABLE IF NOT EXISTS client_session_values (
	session_id  TEXT   NOT NULL,
	state_key   TEXT   NOT NULL,
	state_value TEXT   NOT NULL,
	updated_at  BIGINT NOT NULL,
	PRIMARY KEY (session_id, state_key)
);
CREATE INDEX IF NOT EXISTS idx_client_session_values_updated_at ON client_session_values (updated_at);
`

// Repository SQL-хранилище клиентского состояния сессий (PostgreSQL или SQLite)
// Каждый ключ хранится отдельной строкой, запись по ключу last-writer-wins
type Repository struct {
	db  DBExecutor
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor, dialect psqlbuilder.Dialect) *Repository {
	return &Repository{
		db:  db,
		sb:  psqlbuilder.For(dialect),
		now: time.Now,
	}
}

// CreateSchema создает таблицу, если её нет (используется для SQLite)
func (r *Repository) CreateSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("%w: CreateSchema: %v", ErrExecQuery, err)
	}
	return nil
}

// Get возвращает значение ключа сессии
func (r *Repository) Get(ctx context.Context, sessionID, key string) (string, error) {
	query, args, err := r.sb.Select("state_value").
		From(tableName).
		Where(squirrel.Eq{"session_id": sessionID, "state_key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Get - scan value: %v", ErrScanRow, err)
	}

	return value, nil
}

// Set сохраняет значение ключа сессии (upsert)
func (r *Repository) Set(ctx context.Context, sessionID, key, value string) error {
	query, args, err := r.sb.Insert(tableName).
		Columns("session_id", "state_key", "state_value", "updated_at").
		Values(sessionID, key, value, r.now().Unix()).
		Suffix("ON CONFLICT (session_id, state_key) DO UPDATE SET state_value = EXCLUDED.state_value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// Clear удаляет перечисленные ключи сессии; без ключей удаляет сессию целиком
func (r *Repository) Clear(ctx context.Context, sessionID string, keys ...string) error {
	where := squirrel.Eq{"session_id": sessionID}
	if len(keys) > 0 {
		where["state_key"] = keys
	}

	query, args, err := r.sb.Delete(tableName).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Clear - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Clear - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// Touch переносит updated_at всех ключей сессии на момент at
func (r *Repository) Touch(ctx context.Context, sessionID string, at time.Time) error {
	query, args, err := r.sb.Update(tableName).
		Set("updated_at", at.Unix()).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Touch - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Touch - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

// DeleteExpired удаляет сессии, неактивные с момента before
// Сессия удаляется целиком, по последней записи или Touch любого её ключа
func (r *Repository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	// подзапрос собирается с плейсхолдерами "?", нумерацию делает внешний запрос
	idle := squirrel.Select("session_id").
		From(tableName).
		GroupBy("session_id").
		Having(squirrel.Lt{"MAX(updated_at)": before.Unix()})

	idleSQL, idleArgs, err := idle.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build subquery: %v", ErrBuildQuery, err)
	}

	query, args, err := r.sb.Delete(tableName).
		Where(squirrel.Expr("session_id IN ("+idleSQL+")", idleArgs...)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - rows affected: %v", ErrExecQuery, err)
	}
	return affected, nil
}
