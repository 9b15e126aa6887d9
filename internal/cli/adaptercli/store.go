package adaptercli

import (
	"context"
	"fmt"

	"github.com/iudanet/matchsync/internal/config"
	"github.com/iudanet/matchsync/internal/sample/storage"
	"github.com/iudanet/matchsync/internal/sample/storage/boltdb"
	"github.com/iudanet/matchsync/internal/sample/storage/postgres"
	"github.com/iudanet/matchsync/internal/sample/storage/sqlite"
)

// openStore opens the configured object store
func openStore(ctx context.Context, cfg config.StoreConfig) (storage.Store, error) {
	switch cfg.Kind {
	case config.StoreBolt:
		return boltdb.New(ctx, cfg.Path, cfg.Passphrase)
	case config.StoreSQLite:
		return sqlite.New(ctx, cfg.Path)
	case config.StorePostgres:
		return postgres.New(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: unknown store kind %q", config.ErrInvalidConfig, cfg.Kind)
	}
}
