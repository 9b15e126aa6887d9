package boltdb

import (
	"bytes"
	"context"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/matchsync/internal/sample/storage"
)

// Get retrieves an object by entity and key value
func (s *Storage) Get(ctx context.Context, entity, value string) (*storage.Object, error) {
	var obj *storage.Object
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		obj, err = s.get(tx, entity, value)
		return err
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// FindByReservation retrieves the object created for a reservation
func (s *Storage) FindByReservation(ctx context.Context, entity, reservationID string) (*storage.Object, error) {
	var obj *storage.Object
	err := s.db.View(func(tx *bbolt.Tx) error {
		value := tx.Bucket(bucketReservations).Get(objectKey(entity, reservationID))
		if value == nil {
			return storage.ErrObjectNotFound
		}
		var err error
		obj, err = s.get(tx, entity, string(value))
		return err
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Put stores or replaces an object
func (s *Storage) Put(ctx context.Context, obj *storage.Object) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return s.put(tx, obj)
	})
}

// Delete leaves a deleted tombstone
func (s *Storage) Delete(ctx context.Context, entity, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		obj, err := s.get(tx, entity, value)
		if err != nil {
			return err
		}
		obj.Deleted = true
		obj.Data = nil
		obj.UpdatedAt = time.Now().UTC()
		return s.put(tx, obj)
	})
}

// Move stores the object under newValue and points the old key to it
func (s *Storage) Move(ctx context.Context, entity, oldValue, newValue string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		obj, err := s.get(tx, entity, oldValue)
		if err != nil {
			return err
		}
		if _, err := s.get(tx, entity, newValue); err == nil {
			return storage.ErrObjectExists
		}

		now := time.Now().UTC()
		moved := *obj
		moved.Value = newValue
		moved.UpdatedAt = now
		if err := s.put(tx, &moved); err != nil {
			return err
		}

		// резервирование теперь указывает на новый ключ, put уже перезаписал его
		obj.MovedTo = newValue
		obj.Data = nil
		obj.ReservationID = ""
		obj.UpdatedAt = now
		return s.put(tx, obj)
	})
}

// List returns the active objects of an entity ordered by key value
func (s *Storage) List(ctx context.Context, entity string) ([]*storage.Object, error) {
	var objects []*storage.Object
	prefix := objectKey(entity, "")

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketObjects).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			obj, err := s.decode(k, v)
			if err != nil {
				return err
			}
			if obj.IsActive() {
				objects = append(objects, obj)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objects, nil
}
