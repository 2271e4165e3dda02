package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-tasklist/internal/config"
	"github.com/adanyl0v/go-tasklist/internal/delivery/http/v1"
	"github.com/adanyl0v/go-tasklist/internal/delivery/http/web"
	"github.com/adanyl0v/go-tasklist/internal/services"
)

func MustListenAndServeHTTP(controller *services.Controller) {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	mustRegisterRoutes(router, controller)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// SIGKILL cannot be caught, so only these two get a graceful shutdown.
	quit, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-quit.Done()

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func mustRegisterRoutes(router *gin.Engine, controller *services.Controller) {
	tmpl, err := web.Templates()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse templates")
		panic(err)
	}
	router.SetHTMLTemplate(tmpl)

	web.RegisterRoutes(router, web.New(componentLogger("web"), controller))
	v1.RegisterRoutes(router.Group("/api/v1"), v1.New(componentLogger("api"), controller))
}
