package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/config"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/repo/markets"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/repo/taxonomy"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/server"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			server.NewHandler,

			usecase.NewBalancer,
			usecase.NewFilterEngine,
			usecase.NewSessionManager,
			usecase.NewRecommender,

			markets.NewClients,
			taxonomy.NewTaxonomy,
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
