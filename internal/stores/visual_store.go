// internal/stores/visual_store.go
package stores

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nexsy/nexsy-backend/internal/docstore"
	"github.com/nexsy/nexsy-backend/internal/models"
)

type VisualStore struct {
	docs docstore.Store
}

func NewVisualStore(docs docstore.Store) *VisualStore {
	return &VisualStore{docs: docs}
}

func (s *VisualStore) Create(ctx context.Context, ownerID string, asset *models.VisualAsset) (*models.VisualAsset, error) {
	asset.ID = ""
	asset.UserID = ownerID
	asset.CreatedAt = now()

	if err := asset.Validate(); err != nil {
		return nil, err
	}

	doc, err := encode(asset)
	if err != nil {
		return nil, err
	}

	id, err := s.docs.Insert(ctx, docstore.CollectionVisuals, ownerID, doc)
	if err != nil {
		return nil, err
	}
	asset.ID = id

	logrus.WithFields(logrus.Fields{
		"owner_id":    ownerID,
		"asset_id":    id,
		"product_id":  asset.ProductID,
		"media_type":  asset.MediaType,
		"source_type": asset.SourceType,
	}).Info("Created visual asset")
	return asset, nil
}

func (s *VisualStore) Get(ctx context.Context, ownerID, assetID string) (*models.VisualAsset, error) {
	doc, err := s.docs.Get(ctx, docstore.CollectionVisuals, ownerID, assetID)
	if err != nil {
		return nil, err
	}

	var asset models.VisualAsset
	if err := docstore.Decode(doc, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// ListForProduct returns a product's visual assets, newest first.
func (s *VisualStore) ListForProduct(ctx context.Context, ownerID, productID string, limit int) ([]models.VisualAsset, error) {
	return s.find(ctx, ownerID, docstore.Query{
		Filters: []docstore.Filter{{Field: "product_id", Value: productID}},
		OrderBy: "created_at",
		Limit:   clampLimit(limit, defaultVisualLimit),
	})
}

// ListForOwner returns the owner's assets across all products,
// optionally restricted to one media type.
func (s *VisualStore) ListForOwner(ctx context.Context, ownerID, mediaType string, limit int) ([]models.VisualAsset, error) {
	query := docstore.Query{
		OrderBy: "created_at",
		Limit:   clampLimit(limit, defaultVisualLimit),
	}
	if mediaType != "" {
		query.Filters = []docstore.Filter{{Field: "media_type", Value: mediaType}}
	}
	return s.find(ctx, ownerID, query)
}

// ListByCreativeOutput returns assets linked to a creative output,
// optionally narrowed to the ad-copy variation they were made for.
func (s *VisualStore) ListByCreativeOutput(ctx context.Context, ownerID, outputID string, adCopyIndex *int) ([]models.VisualAsset, error) {
	assets, err := s.find(ctx, ownerID, docstore.Query{
		Filters: []docstore.Filter{{Field: "associated_creative_output_id", Value: outputID}},
		OrderBy: "created_at",
		Limit:   defaultVisualLimit,
	})
	if err != nil {
		return nil, err
	}
	if adCopyIndex == nil {
		return assets, nil
	}

	matched := make([]models.VisualAsset, 0, len(assets))
	for _, asset := range assets {
		if asset.AssociatedAdCopyIndex != nil && *asset.AssociatedAdCopyIndex == *adCopyIndex {
			matched = append(matched, asset)
		}
	}
	return matched, nil
}

// Update applies vetted partial fields. Callers are responsible for
// rejecting unknown and immutable fields at the boundary.
func (s *VisualStore) Update(ctx context.Context, ownerID, assetID string, fields docstore.Document) (*models.VisualAsset, error) {
	if err := s.docs.Update(ctx, docstore.CollectionVisuals, ownerID, assetID, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, assetID)
}

func (s *VisualStore) Delete(ctx context.Context, ownerID, assetID string) (bool, error) {
	deleted, err := s.docs.Delete(ctx, docstore.CollectionVisuals, ownerID, assetID)
	if err != nil {
		return false, err
	}
	if deleted {
		logrus.WithFields(logrus.Fields{
			"owner_id": ownerID,
			"asset_id": assetID,
		}).Info("Deleted visual asset")
	}
	return deleted, nil
}

func (s *VisualStore) find(ctx context.Context, ownerID string, query docstore.Query) ([]models.VisualAsset, error) {
	docs, err := s.docs.Find(ctx, docstore.CollectionVisuals, ownerID, query)
	if err != nil {
		return nil, err
	}

	assets := make([]models.VisualAsset, 0, len(docs))
	for _, doc := range docs {
		var asset models.VisualAsset
		if err := docstore.Decode(doc, &asset); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}
