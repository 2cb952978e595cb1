package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Store keeps documents in process memory. It is used by tests and by the
// api binary when no database is configured.
type Store struct {
	mu          sync.RWMutex
	name        string
	collections map[string]map[string]map[string]any
}

func New(name string) *Store {
	return &Store{
		name:        name,
		collections: make(map[string]map[string]map[string]any),
	}
}

func (s *Store) Insert(ctx context.Context, collection string, doc map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stored := cloneDoc(doc)

	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]map[string]any)
		s.collections[collection] = docs
	}
	docs[id] = stored

	return id, nil
}

func (s *Store) ListCollectionNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Name() string {
	return s.name
}

// Get returns a copy of a stored document, or nil when it does not exist.
func (s *Store) Get(collection, id string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil
	}
	return cloneDoc(doc)
}

// Count returns the number of documents in collection.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// cloneDoc copies doc along with any nested maps and slices.
func cloneDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneDoc(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
