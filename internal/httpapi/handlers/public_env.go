package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/thesunny/get-dynamic-env/internal/httpkit"
	"github.com/thesunny/get-dynamic-env/internal/pkg/errors"
	"github.com/thesunny/get-dynamic-env/internal/pkg/middleware"
)

// GlobalName is the browser global that /env.js assigns.
const GlobalName = "window.__ENV"

// PublicEnvJSON serves the public variables as a JSON object.
func (h *Handler) PublicEnvJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	httpkit.WriteJSON(w, http.StatusOK, h.public)
}

// PublicEnvScript serves the public variables as a script that assigns them
// to GlobalName, for pages that load configuration with a <script> tag.
func (h *Handler) PublicEnvScript(w http.ResponseWriter, r *http.Request) {
	middleware.WrapHandler(h.log, h.publicEnvScript)(w, r)
}

func (h *Handler) publicEnvScript(w http.ResponseWriter, r *http.Request) error {
	// json.Marshal escapes <, >, & and U+2028/U+2029, so values can neither
	// close the script tag nor break the statement.
	payload, err := json.Marshal(h.public)
	if err != nil {
		return errors.Wrap(err, "handlers.PublicEnvScript", "encode public env")
	}

	var b bytes.Buffer
	b.WriteString(GlobalName)
	b.WriteString(" = Object.freeze(")
	b.Write(payload)
	b.WriteString(");\n")

	httpkit.WriteScript(w, http.StatusOK, b.Bytes())
	return nil
}

// NotFound answers unknown routes with the JSON error envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	middleware.HandleError(w, r, h.log, errors.NotFound("route", r.URL.Path))
}

// MethodNotAllowed answers known routes hit with an unsupported method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	middleware.HandleError(w, r, h.log, errors.MethodNotAllowed(r.Method, r.URL.Path))
}
