// Package storagetest runs the same behaviour checks against every storage.Store backend
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/matchsync/internal/sample/storage"
	"github.com/iudanet/matchsync/pkg/models"
)

func person(value, firstName string) *storage.Object {
	data := models.NewData()
	data.SetPropertyValue("FirstName", firstName)
	data.SetPropertyValue("Address.City", "Stockholm")
	return &storage.Object{
		Entity:    "person",
		Value:     value,
		Data:      data,
		UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func firstName(d *models.Data) string {
	v, _ := d.Property("FirstName")
	return v
}

// Run checks a Store. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("put and get", func(t *testing.T) {
		s := newStore(t)
		obj := person("1", "Ann")
		require.NoError(t, s.Put(ctx, obj))

		got, err := s.Get(ctx, "person", "1")
		require.NoError(t, err)
		assert.Equal(t, "1", got.Value)
		assert.True(t, got.IsActive())
		assert.Equal(t, "Ann", firstName(got.Data))
		city, ok := got.Data.LookupPath("Address.City")
		assert.True(t, ok)
		assert.Equal(t, "Stockholm", city)
		assert.True(t, obj.UpdatedAt.Equal(got.UpdatedAt))

		_, err = s.Get(ctx, "person", "2")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
		_, err = s.Get(ctx, "order", "1")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})

	t.Run("put replaces", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, person("1", "Ann")))
		require.NoError(t, s.Put(ctx, person("1", "Bo")))

		got, err := s.Get(ctx, "person", "1")
		require.NoError(t, err)
		assert.Equal(t, "Bo", firstName(got.Data))
	})

	t.Run("reservation", func(t *testing.T) {
		s := newStore(t)
		obj := person("1", "Ann")
		obj.ReservationID = "r-1"
		require.NoError(t, s.Put(ctx, obj))

		got, err := s.FindByReservation(ctx, "person", "r-1")
		require.NoError(t, err)
		assert.Equal(t, "1", got.Value)

		_, err = s.FindByReservation(ctx, "person", "r-2")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})

	t.Run("delete leaves tombstone", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, person("1", "Ann")))
		require.NoError(t, s.Delete(ctx, "person", "1"))

		got, err := s.Get(ctx, "person", "1")
		require.NoError(t, err)
		assert.True(t, got.Deleted)
		assert.False(t, got.IsActive())

		assert.ErrorIs(t, s.Delete(ctx, "person", "9"), storage.ErrObjectNotFound)
	})

	t.Run("move", func(t *testing.T) {
		s := newStore(t)
		obj := person("1", "Ann")
		obj.ReservationID = "r-1"
		require.NoError(t, s.Put(ctx, obj))
		require.NoError(t, s.Put(ctx, person("3", "Cy")))

		require.NoError(t, s.Move(ctx, "person", "1", "2"))

		old, err := s.Get(ctx, "person", "1")
		require.NoError(t, err)
		assert.Equal(t, "2", old.MovedTo)
		assert.False(t, old.IsActive())

		moved, err := s.Get(ctx, "person", "2")
		require.NoError(t, err)
		assert.True(t, moved.IsActive())
		assert.Equal(t, "Ann", firstName(moved.Data))

		byReservation, err := s.FindByReservation(ctx, "person", "r-1")
		require.NoError(t, err)
		assert.Equal(t, "2", byReservation.Value)

		assert.ErrorIs(t, s.Move(ctx, "person", "2", "3"), storage.ErrObjectExists)
		assert.ErrorIs(t, s.Move(ctx, "person", "9", "10"), storage.ErrObjectNotFound)
	})

	t.Run("list", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, person("b", "Bo")))
		require.NoError(t, s.Put(ctx, person("a", "Ann")))
		require.NoError(t, s.Put(ctx, person("c", "Cy")))
		require.NoError(t, s.Put(ctx, &storage.Object{Entity: "order", Value: "a", Data: models.NewData()}))
		require.NoError(t, s.Delete(ctx, "person", "c"))

		list, err := s.List(ctx, "person")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "a", list[0].Value)
		assert.Equal(t, "b", list[1].Value)
	})
}
