package components

import (
	"happyhour-console/internal/pkg/clock"
	"happyhour-console/internal/usecase/commands"
	"happyhour-console/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBarCommands,
		commands.NewMenuCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBarQueries,
		queries.NewMenuQueries,
		queries.NewTokenValidator,
	),
)
