// Package storage defines the object store behind the sample adapter
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/iudanet/matchsync/pkg/models"
)

//go:generate moq -out storage_mock.go . Store

// Common storage errors
var (
	// ErrObjectNotFound indicates that no object is stored under the key
	ErrObjectNotFound = errors.New("object not found")

	// ErrObjectExists indicates that the target key of a move is taken
	ErrObjectExists = errors.New("object already exists")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)

// Object is one stored object of an entity
type Object struct {
	UpdatedAt     time.Time
	Data          *models.Data
	Entity        string
	Value         string
	ReservationID string // ReservationID идентификатор резервирования хаба, если объект создан хабом
	MovedTo       string // MovedTo новое значение ключа после переноса
	Deleted       bool   // Deleted объект удален, ключ больше не используется
}

// IsActive reports whether the object can be read and updated
func (o *Object) IsActive() bool {
	return !o.Deleted && o.MovedTo == ""
}

// Store persists objects by entity and key value
type Store interface {
	// Get returns the object, including deleted and moved tombstones.
	// Returns ErrObjectNotFound if the key was never used.
	Get(ctx context.Context, entity, value string) (*Object, error)

	// FindByReservation returns the object created for a hub reservation.
	// Returns ErrObjectNotFound if none was created.
	FindByReservation(ctx context.Context, entity, reservationID string) (*Object, error)

	// Put stores or replaces the object
	Put(ctx context.Context, obj *Object) error

	// Delete leaves a deleted tombstone. Returns ErrObjectNotFound for unknown keys.
	Delete(ctx context.Context, entity, value string) error

	// Move stores the object under newValue and leaves a tombstone pointing to it.
	// Returns ErrObjectExists if newValue is taken.
	Move(ctx context.Context, entity, oldValue, newValue string) error

	// List returns the active objects of an entity ordered by key value
	List(ctx context.Context, entity string) ([]*Object, error)

	Close() error
}
