package components

import (
	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/stay"
	"hotel-booking/internal/infra/notifier"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/usecase"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewHouseRules,
	booking.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewDiscountCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewCatalogQueries,
		queries.NewQuoteQueries,
		queries.NewDiscountQueries,
		fx.Annotate(
			queries.NewBookingQueries,
			fx.As(fx.Self()),
			fx.As(new(notifier.BookingLookup)),
		),
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewHouseRules(cfg config.Config) (stay.HouseRules, error) {
	loc, err := cfg.House.Location()
	if err != nil {
		return stay.HouseRules{}, err
	}
	return stay.NewHouseRules(cfg.House.CheckInHour, cfg.House.CheckOutHour, loc)
}
