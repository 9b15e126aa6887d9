// Package sample is a complete adapter for a client system that keeps its
// objects in a storage.Store. It answers hub requests and reports local
// changes as events.
package sample

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/concurrency"
	"github.com/iudanet/matchsync/internal/dispatch"
	"github.com/iudanet/matchsync/internal/matcherr"
	"github.com/iudanet/matchsync/internal/sample/storage"
	"github.com/iudanet/matchsync/pkg/api"
	"github.com/iudanet/matchsync/pkg/models"
)

//go:generate moq -out events_mock.go . EventSender

// EventSender publishes local changes, implemented by *adapter.EventPublisher
type EventSender interface {
	SendUpdated(ctx context.Context, entityName, keyValue string, opts ...adapter.EventOption) error
	SendDeleted(ctx context.Context, entityName, keyValue string, opts ...adapter.EventOption) error
	SendMoved(ctx context.Context, entityName, oldKeyValue, newKeyValue string, opts ...adapter.EventOption) error
}

var _ EventSender = (*adapter.EventPublisher)(nil)

// Config настраивает сервис
type Config struct {
	ClientName        string
	UserName          string   // UserName записывается в события локальных изменений
	Entities          []string // Entities пустой список - любые сущности
	CheckSumBlackList []string
}

// Service implements dispatch.Handler over a storage.Store
type Service struct {
	store    storage.Store
	events   EventSender
	guard    *concurrency.Guard
	logger   *slog.Logger
	entities map[string]struct{}
	now      func() time.Time
	cfg      Config
}

var _ dispatch.Handler = (*Service)(nil)

// NewService creates the service. events may be nil, then local changes are not reported.
func NewService(store storage.Store, events EventSender, logger *slog.Logger, cfg Config) *Service {
	s := &Service{
		store:  store,
		events: events,
		guard:  concurrency.NewGuard(cfg.CheckSumBlackList...),
		logger: logger,
		now:    time.Now,
		cfg:    cfg,
	}
	if len(cfg.Entities) > 0 {
		s.entities = make(map[string]struct{}, len(cfg.Entities))
		for _, e := range cfg.Entities {
			s.entities[storageEntity(e)] = struct{}{}
		}
	}
	return s
}

// entityName приводит имя сущности к ключу хранилища
func storageEntity(name string) string {
	return cases.Fold().String(name)
}

func (s *Service) entity(key models.Key) (string, error) {
	name := storageEntity(key.EntityName)
	if s.entities != nil {
		if _, ok := s.entities[name]; !ok {
			return "", matcherr.NotImplemented("Entity %s is not handled by %s", key.EntityName, s.cfg.ClientName)
		}
	}
	return name, nil
}

// load returns the active object for key or the failure the hub should get
func (s *Service) load(ctx context.Context, key models.Key) (*storage.Object, error) {
	entity, err := s.entity(key)
	if err != nil {
		return nil, err
	}
	obj, err := s.store.Get(ctx, entity, key.Value)
	switch {
	case errors.Is(err, storage.ErrObjectNotFound):
		return nil, matcherr.NotFound(key)
	case err != nil:
		return nil, matcherr.InternalServerError(err)
	case obj.Deleted:
		return nil, matcherr.Gone(key)
	case obj.MovedTo != "":
		return nil, matcherr.Moved(key, obj.MovedTo)
	}
	return obj, nil
}

// Get returns the stored data with its checksum
func (s *Service) Get(ctx context.Context, key models.Key) (*models.Data, error) {
	obj, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	data := obj.Data.Clone()
	data.SetCheckSum(s.guard.CheckSum(key, data))
	return data, nil
}

// Update stores data if its checksum matches the stored object
func (s *Service) Update(ctx context.Context, key models.Key, data *models.Data) error {
	if data == nil {
		return matcherr.BadRequest("Update of %s without data", key)
	}
	obj, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	if err := s.guard.Check(key, obj.Data, data); err != nil {
		return err
	}

	obj.Data = data.Clone()
	obj.Data.SetCheckSum("")
	obj.UpdatedAt = s.now().UTC()
	if err := s.store.Put(ctx, obj); err != nil {
		return matcherr.InternalServerError(err)
	}
	s.logger.Info("Object updated by hub", "key", key.String())
	return nil
}

// Create stores a new object. A repeated request for the same reservation
// returns the key created the first time.
func (s *Service) Create(ctx context.Context, key models.Key, data *models.Data) (models.Key, error) {
	entity, err := s.entity(key)
	if err != nil {
		return models.Key{}, err
	}

	if key.ReservationID != "" {
		existing, err := s.store.FindByReservation(ctx, entity, key.ReservationID)
		switch {
		case err == nil:
			s.logger.Info("Object already created for reservation",
				"reservation_id", key.ReservationID,
				"value", existing.Value,
			)
			return models.NewKey(key.ClientName, key.EntityName, existing.Value), nil
		case !errors.Is(err, storage.ErrObjectNotFound):
			return models.Key{}, matcherr.InternalServerError(err)
		}
	}

	obj := &storage.Object{
		Entity:        entity,
		Value:         uuid.NewString(),
		ReservationID: key.ReservationID,
		Data:          data.Clone(),
		UpdatedAt:     s.now().UTC(),
	}
	obj.Data.SetCheckSum("")
	if err := s.store.Put(ctx, obj); err != nil {
		return models.Key{}, matcherr.InternalServerError(err)
	}

	created := models.NewKey(key.ClientName, key.EntityName, obj.Value)
	s.logger.Info("Object created by hub", "key", created.String())
	return created, nil
}

func (s *Service) eventOptions(data *models.Data) []adapter.EventOption {
	opts := []adapter.EventOption{adapter.WithTimeStamp(s.now())}
	if s.cfg.UserName != "" {
		opts = append(opts, adapter.WithUserName(s.cfg.UserName))
	}
	if data != nil {
		opts = append(opts, adapter.WithData(data))
	}
	return opts
}

// List returns the active objects of a handled entity
func (s *Service) List(ctx context.Context, entityName string) ([]*storage.Object, error) {
	entity, err := s.entity(models.NewKey(s.cfg.ClientName, entityName, ""))
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, entity)
}

// Touch sets properties of a local object, creating it when missing, and publishes Updated
func (s *Service) Touch(ctx context.Context, entityName, value string, namesAndValues ...string) error {
	key := models.NewKey(s.cfg.ClientName, entityName, value)
	obj, err := s.load(ctx, key)
	switch {
	case matcherr.TypeOf(err) == api.ErrorNotFound:
		obj = &storage.Object{Entity: storageEntity(entityName), Value: value, Data: models.NewData()}
	case err != nil:
		return err
	}
	if obj.Data == nil {
		obj.Data = models.NewData()
	}
	if err := obj.Data.SetProperties(namesAndValues...); err != nil {
		return err
	}
	obj.UpdatedAt = s.now().UTC()
	if err := s.store.Put(ctx, obj); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	if s.events == nil {
		return nil
	}
	return s.events.SendUpdated(ctx, entityName, value, s.eventOptions(obj.Data)...)
}

// Remove deletes a local object and publishes Deleted
func (s *Service) Remove(ctx context.Context, entityName, value string) error {
	key := models.NewKey(s.cfg.ClientName, entityName, value)
	if _, err := s.load(ctx, key); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, storageEntity(entityName), value); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	if s.events == nil {
		return nil
	}
	return s.events.SendDeleted(ctx, entityName, value, s.eventOptions(nil)...)
}

// Move gives a local object a new key value and publishes Moved
func (s *Service) Move(ctx context.Context, entityName, oldValue, newValue string) error {
	key := models.NewKey(s.cfg.ClientName, entityName, oldValue)
	if _, err := s.load(ctx, key); err != nil {
		return err
	}
	if err := s.store.Move(ctx, storageEntity(entityName), oldValue, newValue); err != nil {
		return fmt.Errorf("failed to move %s: %w", key, err)
	}

	if s.events == nil {
		return nil
	}
	return s.events.SendMoved(ctx, entityName, oldValue, newValue, s.eventOptions(nil)...)
}
