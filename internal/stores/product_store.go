// internal/stores/product_store.go
package stores

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nexsy/nexsy-backend/internal/docstore"
	"github.com/nexsy/nexsy-backend/internal/models"
)

// productRelations lists the entity kinds removed together with a
// product. Partial completion would orphan records, so the delete goes
// through the store's cascading batch.
var productRelations = []docstore.Relation{
	{Collection: docstore.CollectionVisuals, Field: "product_id"},
	{Collection: docstore.CollectionCreatives, Field: "product_id"},
	{Collection: docstore.CollectionStrategies, Field: "product_id"},
}

type ProductStore struct {
	docs docstore.Store
}

func NewProductStore(docs docstore.Store) *ProductStore {
	return &ProductStore{docs: docs}
}

// Create stamps ownership and server timestamps, validates the record,
// and persists it under the owner's scope.
func (s *ProductStore) Create(ctx context.Context, ownerID string, product *models.Product) (*models.Product, error) {
	ts := now()
	product.ID = ""
	product.UserID = ownerID
	product.CreatedAt = ts
	product.UpdatedAt = ts

	if err := product.Validate(); err != nil {
		return nil, err
	}

	doc, err := encode(product)
	if err != nil {
		return nil, err
	}

	id, err := s.docs.Insert(ctx, docstore.CollectionProducts, ownerID, doc)
	if err != nil {
		return nil, err
	}
	product.ID = id

	logrus.WithFields(logrus.Fields{
		"owner_id":   ownerID,
		"product_id": id,
	}).Info("Created product")
	return product, nil
}

func (s *ProductStore) Get(ctx context.Context, ownerID, productID string) (*models.Product, error) {
	doc, err := s.docs.Get(ctx, docstore.CollectionProducts, ownerID, productID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := docstore.Decode(doc, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns the owner's products, most recently updated first.
func (s *ProductStore) List(ctx context.Context, ownerID string, limit int) ([]models.Product, error) {
	docs, err := s.docs.Find(ctx, docstore.CollectionProducts, ownerID, docstore.Query{
		OrderBy: "updated_at",
		Limit:   clampLimit(limit, defaultProductLimit),
	})
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		var product models.Product
		if err := docstore.Decode(doc, &product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// Update applies vetted partial fields and re-stamps the update
// timestamp. Callers are responsible for rejecting unknown and immutable
// fields at the boundary.
func (s *ProductStore) Update(ctx context.Context, ownerID, productID string, fields docstore.Document) (*models.Product, error) {
	fields["updated_at"] = timestamp(now())

	if err := s.docs.Update(ctx, docstore.CollectionProducts, ownerID, productID, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, productID)
}

// Delete removes the product and every entity referencing it as one
// logical batch. Returns false when the id does not resolve under
// ownerID.
func (s *ProductStore) Delete(ctx context.Context, ownerID, productID string) (bool, error) {
	deleted, err := s.docs.DeleteCascade(ctx, docstore.CollectionProducts, ownerID, productID, productRelations)
	if err != nil {
		return false, err
	}
	if deleted {
		logrus.WithFields(logrus.Fields{
			"owner_id":   ownerID,
			"product_id": productID,
		}).Info("Deleted product and related records")
	}
	return deleted, nil
}

// Search matches a case-insensitive term against name and description
// fields. Filtering happens app-side over the owner's listing, which is
// bounded, mirroring the document database's lack of substring queries.
func (s *ProductStore) Search(ctx context.Context, ownerID, term string, limit int) ([]models.Product, error) {
	products, err := s.List(ctx, ownerID, 100)
	if err != nil {
		return nil, err
	}

	limit = clampLimit(limit, 20)
	needle := strings.ToLower(term)

	matched := make([]models.Product, 0, limit)
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.ProductName), needle) ||
			strings.Contains(strings.ToLower(product.WhatIsIt), needle) ||
			strings.Contains(strings.ToLower(product.ProductDescription), needle) {
			matched = append(matched, product)
		}
		if len(matched) >= limit {
			break
		}
	}
	return matched, nil
}
