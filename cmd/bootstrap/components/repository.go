package components

import (
	"stayflow/internal/infra/db"
	"stayflow/internal/infra/repository"
	"stayflow/internal/usecase/commands"
	"stayflow/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// One repository per aggregate; each constructor is annotated into every
// read- and write-side port it satisfies.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		NewPool,
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(queries.BookingRangeReadStore)),
		),
		fx.Annotate(
			repository.NewApartmentRepository,
			fx.As(new(commands.ApartmentRepository)),
			fx.As(new(queries.ApartmentReadStore)),
		),
		fx.Annotate(
			repository.NewHostRepository,
			fx.As(new(commands.HostRepository)),
		),
		fx.Annotate(
			repository.NewBlockedDateRepository,
			fx.As(new(commands.BlockedDateRepository)),
			fx.As(new(queries.BlockedDateReadStore)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewPool(pool *pgxpool.Pool) db.Pool {
	return pool
}
