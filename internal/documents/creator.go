// Package documents turns validated records into stored documents.
package documents

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/joao-fontenele/logistics-erp-api/internal/domain"
	"github.com/joao-fontenele/logistics-erp-api/internal/schema"
	"github.com/joao-fontenele/logistics-erp-api/internal/store"
	"github.com/joao-fontenele/logistics-erp-api/internal/validation"
)

var meter = otel.Meter("documents")

// Publisher announces created documents. messaging.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Creator struct {
	validator *validation.Validator
	store     store.Store
	publisher Publisher
	logger    *slog.Logger

	created            metric.Int64Counter
	validationFailures metric.Int64Counter
}

// NewCreator wires a creator around an already initialized store. A nil
// store is allowed and makes every write fail with ErrStorageUnavailable; a
// nil publisher disables events.
func NewCreator(validator *validation.Validator, s store.Store, publisher Publisher, logger *slog.Logger) (*Creator, error) {
	created, err := meter.Int64Counter("documents.created",
		metric.WithDescription("Documents inserted into the store"),
	)
	if err != nil {
		return nil, err
	}

	validationFailures, err := meter.Int64Counter("documents.validation_failures",
		metric.WithDescription("Payloads rejected by schema validation"),
	)
	if err != nil {
		return nil, err
	}

	return &Creator{
		validator:          validator,
		store:              s,
		publisher:          publisher,
		logger:             logger,
		created:            created,
		validationFailures: validationFailures,
	}, nil
}

// Create inserts rec into the collection of its kind and returns the
// identifier assigned by the store.
func (c *Creator) Create(ctx context.Context, rec validation.Record) (string, error) {
	collection := rec.Kind().Collection()
	if collection == "" {
		return "", schema.ErrUnknownKind
	}

	if c.store == nil {
		return "", ErrStorageUnavailable
	}

	doc := rec.Document()
	id, err := c.store.Insert(ctx, collection, doc)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return "", errors.Join(ErrStorageUnavailable, err)
		}
		return "", &StorageWriteError{
			Collection: collection,
			Message:    Truncate(err.Error()),
			Err:        err,
		}
	}

	c.created.Add(ctx, 1, metric.WithAttributes(attribute.String("collection", collection)))
	c.logger.Info("document created", "collection", collection, "id", id)

	if c.publisher != nil {
		event := domain.DocumentCreatedEvent{
			ID:         id,
			Collection: collection,
			Document:   doc,
			Timestamp:  time.Now().UTC(),
		}
		if err := c.publisher.Publish(ctx, id, event); err != nil {
			c.logger.Error("failed to publish document created event", "error", err, "collection", collection, "id", id)
		}
	}

	return id, nil
}

// ValidateAndCreate validates input against the schema of kind and stores
// the resulting record.
func (c *Creator) ValidateAndCreate(ctx context.Context, kind schema.Kind, input map[string]any) (string, error) {
	rec, err := c.validator.Validate(kind, input)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			c.validationFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("collection", kind.Collection())))
		}
		return "", err
	}

	return c.Create(ctx, rec)
}
