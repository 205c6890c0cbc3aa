package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"syscall"

	route "github.com/bassista/dockhand/internal/api/route"
	appctx "github.com/bassista/dockhand/internal/app"
	"github.com/bassista/dockhand/internal/cache"
	"github.com/bassista/dockhand/internal/config"
	"github.com/bassista/dockhand/internal/logger"
	"github.com/bassista/dockhand/internal/runtime"
	"github.com/gin-gonic/gin"

	"github.com/enrichman/httpgrace"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithComponent("main").Fatalf("configuration error: %v", err)
	}

	logLevel := logger.SetLevelFromString(cfg.Misc.LogLevel)
	logger.WithComponent("main").Debugf("log level set to: %s", logLevel.String())
	logger.WithComponent("main").Infof("App will run on port: %d", cfg.Server.Port)

	rt, err := runtime.NewRuntimeFromConfig(cfg.Runtime.Type, cfg.Runtime.StopTimeoutSecs)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init runtime: %v", err)
	}

	cacheStore := cache.NewStore()

	app, err := appctx.New(cfg, cacheStore, rt)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init app: %v", err)
	}
	defer app.Shutdown()

	app.StartWatchers()

	gin.SetMode(cfg.Misc.GinMode)
	gin.DefaultWriter = logger.Logger.Writer()
	gin.DefaultErrorWriter = logger.Logger.Writer()

	r := gin.New()
	r.Use(gin.Recovery())
	route.SetupRoutes(r, app)

	srv := createGraceHttpServer(app.BaseCtx, "api-server", app.Config.Server, r)
	if err := srv.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithComponent("main").Fatal(err)
	}
}

func createGraceHttpServer(ctx context.Context, name string, serverConfig config.ServerConfig, r *gin.Engine) *httpgrace.Server {
	slogLogger := slog.New(slog.NewTextHandler(logger.Logger.Writer(), nil))

	srv := httpgrace.NewServer(r,
		httpgrace.WithTimeout(serverConfig.ShutDownTimeout),
		httpgrace.WithSignals(syscall.SIGTERM, syscall.SIGINT),
		httpgrace.WithLogger(slogLogger),
		httpgrace.WithBeforeShutdown(func() {
			logger.WithComponent("http").Infof("Shutting down %s....", name)
		}),
		httpgrace.WithServerOptions(
			httpgrace.WithReadTimeout(serverConfig.ReadTimeout),
			httpgrace.WithWriteTimeout(serverConfig.WriteTimeout),
			httpgrace.WithIdleTimeout(serverConfig.IdleTimeout),
			func(srv *http.Server) {
				srv.BaseContext = func(_ net.Listener) context.Context {
					return ctx
				}
			},
			func(srv *http.Server) {
				srv.ErrorLog = log.New(logger.Logger.Writer(), fmt.Sprintf("[%s] ", name), log.LstdFlags)
			},
		),
	)
	return srv
}
