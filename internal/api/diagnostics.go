package api

import (
	"net/http"

	"github.com/joao-fontenele/logistics-erp-api/internal/documents"
)

const maxListedCollections = 10

type diagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// HandleDiagnostics reports whether the document store is reachable. It
// always answers 200; store problems are described in the body.
func (h *Handler) HandleDiagnostics(w http.ResponseWriter, r *http.Request) {
	resp := diagnosticsResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		DatabaseURL:      "❌ Not Set",
		DatabaseName:     "❌ Not Set",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if h.database.URLSet {
		resp.DatabaseURL = "✅ Set"
	}
	if h.database.Name != "" {
		resp.DatabaseName = h.database.Name
	}

	if h.store == nil {
		resp.Database = "⚠️  Available but not initialized"
		h.writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Database = "✅ Available"
	resp.ConnectionStatus = "Connected"
	if h.database.Name == "" && h.store.Name() != "" {
		resp.DatabaseName = h.store.Name()
	}

	names, err := h.store.ListCollectionNames(r.Context())
	if err != nil {
		h.logger.Error("failed to list collections", "error", err)
		resp.Database = "⚠️  Connected but Error: " + documents.Truncate(err.Error())
		h.writeJSON(w, http.StatusOK, resp)
		return
	}

	if len(names) > maxListedCollections {
		names = names[:maxListedCollections]
	}
	resp.Collections = append(resp.Collections, names...)
	resp.Database = "✅ Connected & Working"

	h.writeJSON(w, http.StatusOK, resp)
}
