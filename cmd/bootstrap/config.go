package bootstrap

import (
	"happyhour-console/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.StorageConfig { return cfg.Storage },
		func(cfg config.Config) config.AnalyzerConfig { return cfg.Analyzer },
		func(cfg config.Config) config.RabbitMQConfig { return cfg.RabbitMQ },
		func(cfg config.Config) config.MFAConfig { return cfg.MFA },
		func(cfg config.Config) config.EditConfig { return cfg.Edit },
	),
)
