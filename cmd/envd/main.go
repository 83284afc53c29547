package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/thesunny/get-dynamic-env/env"
	"github.com/thesunny/get-dynamic-env/internal/config"
	"github.com/thesunny/get-dynamic-env/internal/httpapi"
	"github.com/thesunny/get-dynamic-env/internal/metrics"
	"github.com/thesunny/get-dynamic-env/internal/pkg/logger"
	"github.com/thesunny/get-dynamic-env/internal/pkg/shutdown"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load(env.OS)
	if err != nil {
		// The logger is configured from cfg, so report on stderr directly.
		fmt.Fprintln(os.Stderr, "envd: config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logger())
	log.Info("starting envd", "version", version)

	m := metrics.New()
	validator := env.New(env.Config{
		PublicPrefix: cfg.PublicPrefix,
		Logger:       log,
		Recorder:     m,
	})

	public, err := httpapi.LoadPublic(env.OS, validator, cfg.PublicEnvNames)
	if err != nil {
		log.LogFatal("public environment invalid", err)
	}
	m.SetPublicVars(len(public))
	log.Info("public environment validated", "vars", len(public), "prefix", validator.PublicPrefix())

	router := httpapi.NewRouter(httpapi.Deps{
		Public:         public,
		Prefix:         cfg.PublicPrefix,
		Service:        cfg.ServiceName,
		Version:        version,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Log:            log,
		Metrics:        m,
	})

	shutdownMgr := shutdown.NewManager(log, cfg.ShutdownTimeout)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		// Requests still running when shutdown completes see ctx.Done.
		BaseContext: func(net.Listener) context.Context { return shutdownMgr.Context() },
	}

	shutdownMgr.Register("http-server", func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return server.Shutdown(ctx)
	})

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogFatal("HTTP server failed", err)
		}
	}()

	shutdownMgr.Wait()
}
