// Package mongo stores documents in MongoDB, one collection per record kind.
package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/joao-fontenele/logistics-erp-api/internal/store"
)

const serverSelectionTimeout = 5 * time.Second

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client for uri and verifies it with a ping. Connection
// failures wrap store.ErrUnavailable.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	if uri == "" || dbName == "" {
		return nil, fmt.Errorf("%w: database url and name are required", store.ErrUnavailable)
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout))
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", store.ErrUnavailable, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping: %v", store.ErrUnavailable, err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

func (s *Store) Insert(ctx context.Context, collection string, doc map[string]any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, toBSON(doc))
	if err != nil {
		return "", classify(err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (s *Store) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, classify(err)
	}
	return names, nil
}

// Get loads a document by its hex ObjectID, returning nil when it does not
// exist.
func (s *Store) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid document id %q: %w", id, err)
	}

	var doc bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return doc, nil
}

func (s *Store) Name() string {
	return s.db.Name()
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func classify(err error) error {
	if errors.Is(err, mongo.ErrClientDisconnected) || mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return err
}

// toBSON converts decoded JSON values into types the bson encoder stores
// natively; json.Number would otherwise be written as a string.
func toBSON(doc map[string]any) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = bsonValue(v)
	}
	return out
}

func bsonValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		return toBSON(val)
	case []any:
		out := make(bson.A, len(val))
		for i, item := range val {
			out[i] = bsonValue(item)
		}
		return out
	default:
		return v
	}
}
