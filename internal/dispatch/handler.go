package dispatch

import (
	"context"
	"errors"

	"github.com/iudanet/matchsync/internal/matcherr"
	"github.com/iudanet/matchsync/pkg/models"
)

//go:generate moq -out handler_mock.go . Handler

// ErrSilentFail is swallowed without a response when the engine runs in ModeTest.
// In ModeProduction it is an ordinary unclassified error.
var ErrSilentFail = errors.New("silent fail, only for testing")

// Handler is the business logic of one adapter.
// Failures should be *matcherr.Error; anything else is answered with
// AdapterDidNotHandleException.
type Handler interface {
	// Get returns the current data of the object
	Get(ctx context.Context, key models.Key) (*models.Data, error)
	// Update stores data after verifying its checksum against the stored object
	Update(ctx context.Context, key models.Key, data *models.Data) error
	// Create stores a new object and returns its key in the client
	Create(ctx context.Context, key models.Key, data *models.Data) (models.Key, error)
}

// HandlerFuncs adapts plain functions to Handler. A nil function answers NotImplemented.
type HandlerFuncs struct {
	OnGet    func(ctx context.Context, key models.Key) (*models.Data, error)
	OnUpdate func(ctx context.Context, key models.Key, data *models.Data) error
	OnCreate func(ctx context.Context, key models.Key, data *models.Data) (models.Key, error)
}

var _ Handler = HandlerFuncs{}

func (h HandlerFuncs) Get(ctx context.Context, key models.Key) (*models.Data, error) {
	if h.OnGet == nil {
		return nil, matcherr.NotImplemented("Get is not implemented for %s/%s", key.ClientName, key.EntityName)
	}
	return h.OnGet(ctx, key)
}

func (h HandlerFuncs) Update(ctx context.Context, key models.Key, data *models.Data) error {
	if h.OnUpdate == nil {
		return matcherr.NotImplemented("Update is not implemented for %s/%s", key.ClientName, key.EntityName)
	}
	return h.OnUpdate(ctx, key, data)
}

func (h HandlerFuncs) Create(ctx context.Context, key models.Key, data *models.Data) (models.Key, error) {
	if h.OnCreate == nil {
		return models.Key{}, matcherr.NotImplemented("Create is not implemented for %s/%s", key.ClientName, key.EntityName)
	}
	return h.OnCreate(ctx, key, data)
}
