// Package boltdb is a bbolt backed object store. Objects may be encrypted
// with a key derived from a passphrase.
package boltdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/matchsync/internal/crypto"
	"github.com/iudanet/matchsync/internal/sample/storage"
)

var (
	// BoltDB bucket names
	bucketObjects      = []byte("objects")
	bucketReservations = []byte("reservations")
	bucketMetadata     = []byte("metadata")

	keySalt     = []byte("salt")
	keyVerifier = []byte("verifier")
	verifier    = []byte("matchsync")
)

// ErrWrongPassphrase indicates that the store was encrypted with another passphrase
var ErrWrongPassphrase = errors.New("wrong passphrase")

// ErrNotEncrypted indicates that a passphrase was given for a store created without one
var ErrNotEncrypted = errors.New("store is not encrypted")

// Storage is the bbolt implementation of storage.Store
type Storage struct {
	db     *bbolt.DB
	sealer *crypto.Sealer // nil - без шифрования
}

var _ storage.Store = (*Storage)(nil)

// New opens the store at dbPath. An empty passphrase opens it unencrypted.
func New(ctx context.Context, dbPath, passphrase string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	if err := s.initEncryption(passphrase); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketObjects, bucketReservations, bucketMetadata} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// initEncryption создает или проверяет соль и контрольное значение ключа
func (s *Storage) initEncryption(passphrase string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMetadata)
		salt := meta.Get(keySalt)

		if passphrase == "" {
			if salt != nil {
				return fmt.Errorf("%w: store is encrypted", ErrWrongPassphrase)
			}
			return nil
		}

		created := false
		if salt == nil {
			if k, _ := tx.Bucket(bucketObjects).Cursor().First(); k != nil {
				return ErrNotEncrypted
			}
			var err error
			if salt, err = crypto.GenerateSalt(); err != nil {
				return err
			}
			if err := meta.Put(keySalt, salt); err != nil {
				return fmt.Errorf("failed to save salt: %w", err)
			}
			created = true
		}

		key, err := crypto.DeriveKey(passphrase, bytes.Clone(salt), crypto.PurposeStore)
		if err != nil {
			return err
		}
		sealer, err := crypto.NewSealer(key)
		if err != nil {
			return err
		}

		if created {
			sealed, err := sealer.Seal(verifier, keyVerifier)
			if err != nil {
				return err
			}
			if err := meta.Put(keyVerifier, sealed); err != nil {
				return fmt.Errorf("failed to save verifier: %w", err)
			}
		} else if _, err := sealer.Open(meta.Get(keyVerifier), keyVerifier); err != nil {
			return ErrWrongPassphrase
		}

		s.sealer = sealer
		return nil
	})
}

// objectKey формирует ключ объекта: entity \x00 value
func objectKey(entity, value string) []byte {
	return []byte(entity + "\x00" + value)
}

func (s *Storage) encode(obj *storage.Object) ([]byte, error) {
	data, err := storage.MarshalObject(obj)
	if err != nil {
		return nil, err
	}
	if s.sealer == nil {
		return data, nil
	}
	return s.sealer.Seal(data, objectKey(obj.Entity, obj.Value))
}

func (s *Storage) decode(key, raw []byte) (*storage.Object, error) {
	data := raw
	if s.sealer != nil {
		var err error
		if data, err = s.sealer.Open(raw, key); err != nil {
			return nil, err
		}
	}
	return storage.UnmarshalObject(data)
}

func (s *Storage) get(tx *bbolt.Tx, entity, value string) (*storage.Object, error) {
	key := objectKey(entity, value)
	raw := tx.Bucket(bucketObjects).Get(key)
	if raw == nil {
		return nil, storage.ErrObjectNotFound
	}
	return s.decode(key, raw)
}

func (s *Storage) put(tx *bbolt.Tx, obj *storage.Object) error {
	data, err := s.encode(obj)
	if err != nil {
		return err
	}
	if err := tx.Bucket(bucketObjects).Put(objectKey(obj.Entity, obj.Value), data); err != nil {
		return fmt.Errorf("failed to save object: %w", err)
	}
	if obj.ReservationID != "" {
		if err := tx.Bucket(bucketReservations).Put(objectKey(obj.Entity, obj.ReservationID), []byte(obj.Value)); err != nil {
			return fmt.Errorf("failed to save reservation: %w", err)
		}
	}
	return nil
}
