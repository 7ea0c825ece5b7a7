package components

import (
	"context"
	"log/slog"

	"hotel-booking/internal/infra/cache"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/infra/notifier"
	"hotel-booking/internal/infra/readstore"
	"hotel-booking/internal/infra/repository"
	"hotel-booking/internal/infra/uow"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		NewCatalogReadStore,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewDiscountReadStore,
			fx.As(new(queries.DiscountReadStore)),
		),
	),
)

// Transactional repositories are built per transaction inside the unit of work;
// the pool-backed ones here serve the background worker.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(notifier.JobStore)),
		),
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(notifier.IdempotencyCleaner)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewCatalogReadStore puts the Redis cache in front of Postgres when a client is configured.
func NewCatalogReadStore(lc fx.Lifecycle, dbtx db.DBTX, rdb *redis.Client, cfg config.Config, logger *slog.Logger) queries.CatalogReadStore {
	store := readstore.NewCatalogReadStore(dbtx)
	if rdb == nil {
		return store
	}

	cached := cache.NewCatalogReadStore(store, rdb, cfg.Redis.CatalogTTL)
	lc.Append(fx.Hook{
		// Entries from a previous deploy may predate schema or seed changes.
		OnStart: func(ctx context.Context) error {
			if err := cached.Invalidate(ctx); err != nil {
				logger.Warn("failed to clear catalog cache", "error", err)
			}
			return nil
		},
	})
	return cached
}
