// Package api exposes the document endpoints over HTTP.
package api

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/joao-fontenele/logistics-erp-api/internal/telemetry"
)

// NewRouter registers every route on a new mux and wraps it with a CORS
// policy that admits any origin, method and header.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", telemetry.WithHTTPRoute(h.HandleRoot))
	mux.HandleFunc("GET /test", telemetry.WithHTTPRoute(h.HandleDiagnostics))
	mux.HandleFunc("POST /seed/{kind}", telemetry.WithHTTPRoute(h.HandleSeed))
	mux.HandleFunc("GET /schema", telemetry.WithHTTPRoute(h.HandleSchemaNames))
	mux.HandleFunc("GET /schema/{kind}", telemetry.WithHTTPRoute(h.HandleSchema))

	return cors.New(cors.Options{
		AllowOriginFunc:  func(string) bool { return true },
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions, http.MethodHead},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(mux)
}
