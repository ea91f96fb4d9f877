package prefs

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const channel = "preferences_changed"

// Migrate применяет встроенные миграции таблицы preferences.
func Migrate(dsn string) error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

// PGStore хранит значения в таблице preferences и рассылает изменения через NOTIFY.
type PGStore struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewPGStore(pool *pgxpool.Pool, log *slog.Logger) *PGStore {
	return &PGStore{pool: pool, log: log}
}

func (s *PGStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM preferences WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *PGStore) Put(ctx context.Context, key string, value []byte) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
		  value = $2, updated_at = now()
	`, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, channel, key); err != nil {
		return fmt.Errorf("notify %s: %w", key, err)
	}
	return tx.Commit(ctx)
}

// Watch держит отдельное соединение с LISTEN до отмены ctx.
func (s *PGStore) Watch(ctx context.Context, fn func(key string)) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.log.Error("preferences watch failed", "err", err)
			return err
		}
		fn(n.Payload)
	}
}
