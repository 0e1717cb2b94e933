// internal/docstore/docstore.go
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Document is a flat JSON-compatible record. Timestamps are stored as
// RFC3339 strings so recency ordering is a plain string comparison in
// every backend. The document id is surfaced under the "id" key on reads
// and must not be set by callers.
type Document = map[string]interface{}

// Collection names, one per entity kind. Every document in every
// collection carries the owner's subject id under "user_id", written by
// the store from the verified caller and never from client input.
const (
	CollectionProducts   = "products"
	CollectionVisuals    = "visuals"
	CollectionCreatives  = "creativeOutputs"
	CollectionStrategies = "marketingStrategies"
)

// Filter matches documents whose field equals the given value.
type Filter struct {
	Field string
	Value interface{}
}

// Query bounds and orders a listing. OrderBy names an RFC3339 timestamp
// field; results are descending by that field, ties broken by descending
// document id.
type Query struct {
	Filters []Filter
	OrderBy string
	Limit   int
}

// Relation names a collection holding documents that reference a parent
// document through Field.
type Relation struct {
	Collection string
	Field      string
}

// Store is the document database behind the entity stores. Every
// operation is scoped to an owner; a document belonging to another owner
// is indistinguishable from an absent one.
type Store interface {
	Insert(ctx context.Context, collection, ownerID string, doc Document) (string, error)
	// Get returns apperrors.ErrNotFound when the id does not resolve
	// under ownerID.
	Get(ctx context.Context, collection, ownerID, id string) (Document, error)
	Find(ctx context.Context, collection, ownerID string, q Query) ([]Document, error)
	// Update applies the given fields to an existing document. Returns
	// apperrors.ErrNotFound when the id does not resolve under ownerID.
	Update(ctx context.Context, collection, ownerID, id string, fields Document) error
	Delete(ctx context.Context, collection, ownerID, id string) (bool, error)
	// DeleteCascade removes the parent document and, in each related
	// collection, every document whose relation field equals id. Issued
	// as one atomic batch where the backend supports it; otherwise as a
	// sequence with partial failures logged. Returns false when the
	// parent does not resolve under ownerID.
	DeleteCascade(ctx context.Context, collection, ownerID, id string, related []Relation) (bool, error)
	Close(ctx context.Context) error
}

// Encode converts a typed model into a Document through its JSON form.
func Encode(v interface{}) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, nil
}

// Decode converts a Document back into a typed model.
func Decode(doc Document, out interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
