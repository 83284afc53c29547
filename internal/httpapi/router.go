package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thesunny/get-dynamic-env/env"
	"github.com/thesunny/get-dynamic-env/internal/httpapi/handlers"
	"github.com/thesunny/get-dynamic-env/internal/httpkit"
	"github.com/thesunny/get-dynamic-env/internal/metrics"
	"github.com/thesunny/get-dynamic-env/internal/pkg/logger"
	"github.com/thesunny/get-dynamic-env/internal/pkg/middleware"
)

type Deps struct {
	Public         env.Vars
	Prefix         string
	Service        string
	Version        string
	AllowedOrigins []string
	Log            *logger.Logger
	// Metrics, if set, records every request and is served on /metrics.
	Metrics *metrics.Metrics
}

func NewRouter(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = logger.Discard()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(d.Log, d.Metrics))
	r.Use(middleware.Recovery(d.Log))
	r.Use(httpkit.CORS(httpkit.CORSOptions{
		AllowedOrigins: d.AllowedOrigins,
	}))

	h := handlers.New(handlers.Deps{
		Public:  d.Public,
		Prefix:  d.Prefix,
		Service: d.Service,
		Version: d.Version,
		Log:     d.Log,
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/env.json", h.PublicEnvJSON)
	r.Get("/env.js", h.PublicEnvScript)

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	return r
}
