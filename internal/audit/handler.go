// Package audit records an AuditLog document for every document created
// through the API.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/joao-fontenele/logistics-erp-api/internal/domain"
	"github.com/joao-fontenele/logistics-erp-api/internal/schema"
)

const (
	Actor  = "system"
	Action = "create"
	Source = domain.DocumentCreatedTopic
)

// Creator is the subset of documents.Creator the handler needs.
type Creator interface {
	ValidateAndCreate(ctx context.Context, kind schema.Kind, input map[string]any) (string, error)
}

type Handler struct {
	creator Creator
	logger  *slog.Logger
}

func NewHandler(creator Creator, logger *slog.Logger) *Handler {
	return &Handler{
		creator: creator,
		logger:  logger,
	}
}

// Handle consumes one document.created payload. Malformed events are logged
// and dropped so they cannot block the partition; storage failures are
// returned so the message is redelivered.
func (h *Handler) Handle(ctx context.Context, payload []byte) error {
	var event domain.DocumentCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Error("dropping undecodable event", "error", err)
		return nil
	}

	if event.ID == "" || event.Collection == "" {
		h.logger.Error("dropping incomplete event", "id", event.ID, "collection", event.Collection)
		return nil
	}

	if event.Collection == schema.KindAuditLog.Collection() {
		return nil
	}

	h.logger.Info("processing document created event", "collection", event.Collection, "id", event.ID)

	id, err := h.creator.ValidateAndCreate(ctx, schema.KindAuditLog, Entry(event))
	if err != nil {
		h.logger.Error("failed to record audit log", "error", err, "collection", event.Collection, "id", event.ID)
		return fmt.Errorf("record audit log for %s %s: %w", event.Collection, event.ID, err)
	}

	h.logger.Info("audit log recorded", "audit_id", id, "collection", event.Collection, "id", event.ID)
	return nil
}

// Entry builds the AuditLog input describing event.
func Entry(event domain.DocumentCreatedEvent) map[string]any {
	metadata := map[string]any{
		"source": Source,
	}
	if !event.Timestamp.IsZero() {
		metadata["created_at"] = event.Timestamp.UTC().Format(time.RFC3339)
	}

	return map[string]any{
		"actor":     Actor,
		"action":    Action,
		"entity":    event.Collection,
		"entity_id": event.ID,
		"metadata":  metadata,
	}
}
