package handlers

import (
	"github.com/thesunny/get-dynamic-env/env"
	"github.com/thesunny/get-dynamic-env/internal/pkg/logger"
)

type Deps struct {
	// Public is the validated client environment. It is served as is.
	Public  env.Vars
	Prefix  string
	Service string
	Version string
	Log     *logger.Logger
}

type Handler struct {
	public  env.Vars
	prefix  string
	service string
	version string
	log     *logger.Logger
}

func New(d Deps) *Handler {
	if d.Log == nil {
		d.Log = logger.Discard()
	}
	public := make(env.Vars, len(d.Public))
	for k, v := range d.Public {
		public[k] = v
	}
	return &Handler{
		public:  public,
		prefix:  d.Prefix,
		service: d.Service,
		version: d.Version,
		log:     d.Log.WithComponent("httpapi"),
	}
}
