package handlers

import (
	"net/http"

	"github.com/thesunny/get-dynamic-env/internal/httpkit"
)

// Health reports liveness. The public variables were validated at startup,
// so a running server always has a complete set.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpkit.WriteJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"service":     h.service,
		"version":     h.version,
		"public_vars": len(h.public),
		"prefix":      h.prefix,
	})
}
