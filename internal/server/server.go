package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/carousell/ct-go/pkg/logger"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/config"
	pkgmdw "github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/server/middleware"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
) {
	e := newEcho(conf, handler)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(ctx, "starting HTTP server", "addr", conf.Server.Addr())
				if err := e.Start(conf.Server.Addr()); !errors.Is(err, http.ErrServerClosed) {
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func newEcho(conf *config.Config, handler Controller) *echo.Echo {
	e := echo.New()
	e.JSONSerializer = jsonSerializer{}
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = errorHandler()

	logConfig := pkgmdw.LogRequestConfig{
		Logger: logger.MustNamed("http"),
		Enabled: func(c echo.Context) bool {
			uri := c.Request().RequestURI
			return uri != "/health" && uri != "/metrics"
		},
		KeyAndValues: func(c echo.Context) []any {
			args := make([]any, 0, 2)
			if c.Get("session_id") != nil {
				args = append(args, "session_id", c.Get("session_id"))
			}
			return args
		},
	}

	pkgmdw.AutoVersioning(e)
	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(pkgmdw.CORS(regexp.MustCompile(conf.Server.CORSOrigins)))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))
	if conf.Server.EnablePprof {
		pkgmdw.PprofWrap(e)
	}

	e.GET("/health", handler.Health)

	api := e.Group("/api/v1")
	api.POST("/sessions", handler.CreateSession)
	api.GET("/sessions/:id", handler.GetSession)
	api.POST("/sessions/:id/more", handler.LoadMore)
	api.POST("/sessions/:id/retry", handler.RetrySession)
	api.PATCH("/sessions/:id/filters", handler.UpdateFilters)
	api.DELETE("/sessions/:id", handler.DeleteSession)
	api.GET("/categories", handler.GetCategories)
	api.GET("/recommendations", handler.GetRecommendations)

	return e
}
