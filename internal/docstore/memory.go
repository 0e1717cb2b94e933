// internal/docstore/memory.go
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
)

// MemoryStore keeps documents per owner per collection under a single
// lock, which makes cascading deletes genuinely atomic. Used for local
// development and tests.
type MemoryStore struct {
	mu sync.RWMutex
	// collection -> owner -> id -> document
	data map[string]map[string]map[string]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]map[string]Document),
	}
}

func (m *MemoryStore) Insert(ctx context.Context, collection, ownerID string, doc Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, err := copyDocument(doc)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	stored["user_id"] = ownerID

	m.ownerDocs(collection, ownerID)[id] = stored
	return id, nil
}

func (m *MemoryStore) Get(ctx context.Context, collection, ownerID, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.getLocked(collection, ownerID, id)
}

func (m *MemoryStore) Find(ctx context.Context, collection, ownerID string, q Query) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type entry struct {
		id  string
		doc Document
	}

	var matched []entry
	for id, doc := range m.readOwnerDocs(collection, ownerID) {
		if matchesFilters(doc, q.Filters) {
			matched = append(matched, entry{id: id, doc: doc})
		}
	}

	// Descending by the recency field, ties broken by descending id.
	sort.Slice(matched, func(i, j int) bool {
		if q.OrderBy != "" {
			ti := stringField(matched[i].doc, q.OrderBy)
			tj := stringField(matched[j].doc, q.OrderBy)
			if ti != tj {
				return ti > tj
			}
		}
		return matched[i].id > matched[j].id
	})

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	results := make([]Document, 0, len(matched))
	for _, e := range matched {
		doc, err := copyDocument(e.doc)
		if err != nil {
			return nil, err
		}
		doc["id"] = e.id
		results = append(results, doc)
	}
	return results, nil
}

func (m *MemoryStore) Update(ctx context.Context, collection, ownerID, id string, fields Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.ownerDocs(collection, ownerID)
	doc, ok := docs[id]
	if !ok {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, collection, id)
	}

	patch, err := copyDocument(fields)
	if err != nil {
		return err
	}
	for k, v := range patch {
		doc[k] = v
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection, ownerID, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.ownerDocs(collection, ownerID)
	if _, ok := docs[id]; !ok {
		return false, nil
	}
	delete(docs, id)
	return true, nil
}

func (m *MemoryStore) DeleteCascade(ctx context.Context, collection, ownerID, id string, related []Relation) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.ownerDocs(collection, ownerID)
	if _, ok := docs[id]; !ok {
		return false, nil
	}
	delete(docs, id)

	for _, rel := range related {
		relDocs := m.ownerDocs(rel.Collection, ownerID)
		for relID, doc := range relDocs {
			if valuesEqual(doc[rel.Field], id) {
				delete(relDocs, relID)
			}
		}
	}
	return true, nil
}

func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) getLocked(collection, ownerID, id string) (Document, error) {
	doc, ok := m.readOwnerDocs(collection, ownerID)[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, collection, id)
	}

	result, err := copyDocument(doc)
	if err != nil {
		return nil, err
	}
	result["id"] = id
	return result, nil
}

// readOwnerDocs looks up an owner's documents without allocating,
// safe under the read lock.
func (m *MemoryStore) readOwnerDocs(collection, ownerID string) map[string]Document {
	return m.data[collection][ownerID]
}

func (m *MemoryStore) ownerDocs(collection, ownerID string) map[string]Document {
	owners, ok := m.data[collection]
	if !ok {
		owners = make(map[string]map[string]Document)
		m.data[collection] = owners
	}

	docs, ok := owners[ownerID]
	if !ok {
		docs = make(map[string]Document)
		owners[ownerID] = docs
	}
	return docs
}

func matchesFilters(doc Document, filters []Filter) bool {
	for _, f := range filters {
		if !valuesEqual(doc[f.Field], f.Value) {
			return false
		}
	}
	return true
}

// valuesEqual compares through a JSON round trip so int filters match
// float64 document values.
func valuesEqual(a, b interface{}) bool {
	return reflect.DeepEqual(normalize(a), normalize(b))
}

func normalize(v interface{}) interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func stringField(doc Document, field string) string {
	if s, ok := doc[field].(string); ok {
		return s
	}
	return ""
}

func copyDocument(doc Document) (Document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("copy document: %w", err)
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("copy document: %w", err)
	}
	return out, nil
}
