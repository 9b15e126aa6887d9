// Package postgres is a PostgreSQL backed object store
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/iudanet/matchsync/internal/sample/storage"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Storage is the PostgreSQL implementation of storage.Store
type Storage struct {
	pool *pgxpool.Pool
}

var _ storage.Store = (*Storage)(nil)

// New connects to dsn and applies migrations
func New(ctx context.Context, dsn string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{pool: pool}
	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// runMigrations выполняет миграции через database/sql обертку над пулом
func (s *Storage) runMigrations(ctx context.Context) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return err
	}
	// соединения берутся из пула и возвращаются в него, закрывать db не нужно
	db := stdlib.OpenDBFromPool(s.pool)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	return nil
}

const selectObject = `
	SELECT entity, value, reservation_id, data, moved_to, deleted, updated_at
	FROM objects
`

func scanObject(row pgx.Row) (*storage.Object, error) {
	obj := &storage.Object{}
	var reservationID, movedTo *string
	var data []byte

	err := row.Scan(&obj.Entity, &obj.Value, &reservationID, &data, &movedTo, &obj.Deleted, &obj.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to scan object: %w", err)
	}

	if reservationID != nil {
		obj.ReservationID = *reservationID
	}
	if movedTo != nil {
		obj.MovedTo = *movedTo
	}
	obj.UpdatedAt = obj.UpdatedAt.UTC()
	if data != nil {
		if obj.Data, err = storage.UnmarshalData(data); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Get retrieves an object by entity and key value
func (s *Storage) Get(ctx context.Context, entity, value string) (*storage.Object, error) {
	return scanObject(s.pool.QueryRow(ctx, selectObject+`WHERE entity = $1 AND value = $2`, entity, value))
}

// FindByReservation retrieves the object created for a reservation
func (s *Storage) FindByReservation(ctx context.Context, entity, reservationID string) (*storage.Object, error) {
	return scanObject(s.pool.QueryRow(ctx, selectObject+`WHERE entity = $1 AND reservation_id = $2`, entity, reservationID))
}

func put(ctx context.Context, tx pgx.Tx, obj *storage.Object) error {
	var data []byte
	if obj.Data != nil {
		var err error
		if data, err = storage.MarshalData(obj.Data); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO objects (entity, value, reservation_id, data, moved_to, deleted, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (entity, value) DO UPDATE SET
			reservation_id = EXCLUDED.reservation_id,
			data = EXCLUDED.data,
			moved_to = EXCLUDED.moved_to,
			deleted = EXCLUDED.deleted,
			updated_at = EXCLUDED.updated_at
	`
	_, err := tx.Exec(ctx, query,
		obj.Entity,
		obj.Value,
		nullable(obj.ReservationID),
		data,
		nullable(obj.MovedTo),
		obj.Deleted,
		obj.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save object: %w", err)
	}
	return nil
}

// Put stores or replaces an object
func (s *Storage) Put(ctx context.Context, obj *storage.Object) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return put(ctx, tx, obj)
	})
}

// Delete leaves a deleted tombstone
func (s *Storage) Delete(ctx context.Context, entity, value string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE objects
		SET deleted = TRUE, data = NULL, updated_at = $1
		WHERE entity = $2 AND value = $3
	`, time.Now().UTC(), entity, value)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrObjectNotFound
	}
	return nil
}

// Move stores the object under newValue and points the old key to it
func (s *Storage) Move(ctx context.Context, entity, oldValue, newValue string) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		obj, err := scanObject(tx.QueryRow(ctx, selectObject+`WHERE entity = $1 AND value = $2 FOR UPDATE`, entity, oldValue))
		if err != nil {
			return err
		}
		_, err = scanObject(tx.QueryRow(ctx, selectObject+`WHERE entity = $1 AND value = $2`, entity, newValue))
		switch {
		case err == nil:
			return storage.ErrObjectExists
		case !errors.Is(err, storage.ErrObjectNotFound):
			return err
		}

		now := time.Now().UTC()
		moved := *obj
		moved.Value = newValue
		moved.UpdatedAt = now

		// резервирование переходит к новому ключу: сначала освобождаем его у старой строки
		tombstone := *obj
		tombstone.MovedTo = newValue
		tombstone.Data = nil
		tombstone.ReservationID = ""
		tombstone.UpdatedAt = now
		if err := put(ctx, tx, &tombstone); err != nil {
			return err
		}
		return put(ctx, tx, &moved)
	})
}

// List returns the active objects of an entity ordered by key value
func (s *Storage) List(ctx context.Context, entity string) ([]*storage.Object, error) {
	rows, err := s.pool.Query(ctx, selectObject+`WHERE entity = $1 AND NOT deleted AND moved_to IS NULL ORDER BY value`, entity)
	if err != nil {
		return nil, fmt.Errorf("failed to query objects: %w", err)
	}
	defer rows.Close()

	var objects []*storage.Object
	for rows.Next() {
		obj, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate objects: %w", err)
	}
	return objects, nil
}
