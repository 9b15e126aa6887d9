package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/matchsync/internal/sample/storage"
)

const selectObject = `
	SELECT entity, value, reservation_id, data, moved_to, deleted, updated_at
	FROM objects
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObject(row rowScanner) (*storage.Object, error) {
	obj := &storage.Object{}
	var reservationID, data, movedTo sql.NullString
	var deleted int
	var updatedAt int64

	err := row.Scan(&obj.Entity, &obj.Value, &reservationID, &data, &movedTo, &deleted, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to scan object: %w", err)
	}

	obj.ReservationID = reservationID.String
	obj.MovedTo = movedTo.String
	obj.Deleted = deleted != 0
	obj.UpdatedAt = time.Unix(0, updatedAt).UTC()
	if data.Valid {
		if obj.Data, err = storage.UnmarshalData([]byte(data.String)); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Get retrieves an object by entity and key value
func (s *Storage) Get(ctx context.Context, entity, value string) (*storage.Object, error) {
	row := s.db.QueryRowContext(ctx, selectObject+`WHERE entity = ? AND value = ?`, entity, value)
	return scanObject(row)
}

// FindByReservation retrieves the object created for a reservation
func (s *Storage) FindByReservation(ctx context.Context, entity, reservationID string) (*storage.Object, error) {
	row := s.db.QueryRowContext(ctx, selectObject+`WHERE entity = ? AND reservation_id = ?`, entity, reservationID)
	return scanObject(row)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func put(ctx context.Context, db execer, obj *storage.Object) error {
	var data sql.NullString
	if obj.Data != nil {
		b, err := storage.MarshalData(obj.Data)
		if err != nil {
			return err
		}
		data = sql.NullString{String: string(b), Valid: true}
	}

	query := `
		INSERT INTO objects (entity, value, reservation_id, data, moved_to, deleted, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity, value) DO UPDATE SET
			reservation_id = excluded.reservation_id,
			data = excluded.data,
			moved_to = excluded.moved_to,
			deleted = excluded.deleted,
			updated_at = excluded.updated_at
	`
	_, err := db.ExecContext(ctx, query,
		obj.Entity,
		obj.Value,
		nullString(obj.ReservationID),
		data,
		nullString(obj.MovedTo),
		boolToInt(obj.Deleted),
		obj.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save object: %w", err)
	}
	return nil
}

// Put stores or replaces an object
func (s *Storage) Put(ctx context.Context, obj *storage.Object) error {
	return put(ctx, s.db, obj)
}

// Delete leaves a deleted tombstone
func (s *Storage) Delete(ctx context.Context, entity, value string) error {
	query := `
		UPDATE objects
		SET deleted = 1, data = NULL, updated_at = ?
		WHERE entity = ? AND value = ?
	`
	result, err := s.db.ExecContext(ctx, query, time.Now().UnixNano(), entity, value)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrObjectNotFound
	}
	return nil
}

// Move stores the object under newValue and points the old key to it
func (s *Storage) Move(ctx context.Context, entity, oldValue, newValue string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	obj, err := scanObject(tx.QueryRowContext(ctx, selectObject+`WHERE entity = ? AND value = ?`, entity, oldValue))
	if err != nil {
		return err
	}
	_, err = scanObject(tx.QueryRowContext(ctx, selectObject+`WHERE entity = ? AND value = ?`, entity, newValue))
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
	if err = put(ctx, tx, &tombstone); err != nil {
		return err
	}
	if err = put(ctx, tx, &moved); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit move: %w", err)
	}
	return nil
}

// List returns the active objects of an entity ordered by key value
func (s *Storage) List(ctx context.Context, entity string) (objects []*storage.Object, err error) {
	query := selectObject + `WHERE entity = ? AND deleted = 0 AND moved_to IS NULL ORDER BY value`

	rows, err := s.db.QueryContext(ctx, query, entity)
	if err != nil {
		return nil, fmt.Errorf("failed to query objects: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

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
