package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/logistics-erp-api/internal/documents"
	"github.com/joao-fontenele/logistics-erp-api/internal/schema"
	"github.com/joao-fontenele/logistics-erp-api/internal/store"
	"github.com/joao-fontenele/logistics-erp-api/internal/validation"
)

const maxBodyBytes = 1 << 20

// DatabaseInfo is what diagnostics may reveal about the configured database.
type DatabaseInfo struct {
	URLSet bool
	Name   string
}

type Handler struct {
	creator  *documents.Creator
	registry *schema.Registry
	store    store.Store
	database DatabaseInfo
	logger   *slog.Logger
}

// NewHandler builds the HTTP handlers. s may be nil when no database is
// configured; diagnostics then report it and writes fail with 500.
func NewHandler(creator *documents.Creator, registry *schema.Registry, s store.Store, database DatabaseInfo, logger *slog.Logger) *Handler {
	return &Handler{
		creator:  creator,
		registry: registry,
		store:    s,
		database: database,
		logger:   logger,
	}
}

func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Logistics ERP Backend is running"})
}

type seedResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

func (h *Handler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	kind, err := schema.ParseKind(r.PathValue("kind"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, "unknown schema")
		return
	}

	input, ok := h.decodeObject(w, r)
	if !ok {
		return
	}

	id, err := h.creator.ValidateAndCreate(r.Context(), kind, input)
	if err != nil {
		h.writeCreateError(w, kind, err)
		return
	}

	h.writeJSON(w, http.StatusOK, seedResponse{OK: true, ID: id})
}

func (h *Handler) HandleSchemaNames(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.registry.Names())
}

type schemaResponse struct {
	Kind       schema.Kind    `json:"kind"`
	Collection string         `json:"collection"`
	Fields     []schema.Field `json:"fields"`
}

func (h *Handler) HandleSchema(w http.ResponseWriter, r *http.Request) {
	kind, err := schema.ParseKind(r.PathValue("kind"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, "unknown schema")
		return
	}

	fields, err := h.registry.Lookup(kind)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "unknown schema")
		return
	}

	h.writeJSON(w, http.StatusOK, schemaResponse{
		Kind:       kind,
		Collection: kind.Collection(),
		Fields:     fields,
	})
}

func (h *Handler) decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	input, ok := body.(map[string]any)
	if !ok {
		h.writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return nil, false
	}
	return input, true
}

func (h *Handler) writeCreateError(w http.ResponseWriter, kind schema.Kind, err error) {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		h.logger.Info("document rejected", "kind", kind, "errors", len(verr.Errors))
		h.writeError(w, http.StatusUnprocessableEntity, verr.Errors)
		return
	}

	if errors.Is(err, documents.ErrStorageUnavailable) {
		h.logger.Error("failed to create document", "error", err, "kind", kind)
		h.writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	var werr *documents.StorageWriteError
	if errors.As(err, &werr) {
		h.logger.Error("failed to create document", "error", err, "kind", kind)
		h.writeError(w, http.StatusInternalServerError, werr.Message)
		return
	}

	h.logger.Error("failed to create document", "error", err, "kind", kind)
	h.writeError(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, detail any) {
	h.writeJSON(w, status, map[string]any{"detail": detail})
}
