package components

import (
	"happyhour-console/internal/infra/analyzer"
	"happyhour-console/internal/infra/notify"
	"happyhour-console/internal/infra/objectstore"
	"happyhour-console/internal/infra/readstore"
	"happyhour-console/internal/infra/sessionstore"
	"happyhour-console/internal/infra/uow"
	"happyhour-console/internal/usecase/commands"
	"happyhour-console/internal/usecase/queries"

	"go.uber.org/fx"
)

// PersistenceModule wires every stateful adapter: postgres read and
// write sides, the redis session store, the menu object store, the
// analysis client and the code delivery queue.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Read stores
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewBarReadStore,
			fx.As(new(queries.BarReadStore)),
		),
		// Sessions and login challenges
		fx.Annotate(
			sessionstore.NewRedisStore,
			fx.As(new(commands.EditSessionStore)),
			fx.As(new(commands.ChallengeStore)),
			fx.As(new(queries.EditSessionReader)),
		),
		// Menu objects
		fx.Annotate(
			objectstore.NewMenuObjectStore,
			fx.As(new(commands.MenuStore)),
			fx.As(new(queries.MenuReadStore)),
		),
		// Analysis service
		fx.Annotate(
			analyzer.NewClient,
			fx.As(new(commands.MenuAnalyzer)),
		),
		// Verification code delivery
		fx.Annotate(
			notify.NewCodePublisher,
			fx.As(new(commands.CodeNotifier)),
		),
	),
)
