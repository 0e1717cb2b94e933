// internal/stores/creative_store.go
package stores

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nexsy/nexsy-backend/internal/docstore"
	"github.com/nexsy/nexsy-backend/internal/models"
)

type CreativeOutputStore struct {
	docs docstore.Store
}

func NewCreativeOutputStore(docs docstore.Store) *CreativeOutputStore {
	return &CreativeOutputStore{docs: docs}
}

func (s *CreativeOutputStore) Create(ctx context.Context, ownerID string, output *models.CreativeOutput) (*models.CreativeOutput, error) {
	output.ID = ""
	output.UserID = ownerID
	output.GenerationTimestamp = now()

	if err := output.Validate(); err != nil {
		return nil, err
	}

	doc, err := encode(output)
	if err != nil {
		return nil, err
	}

	id, err := s.docs.Insert(ctx, docstore.CollectionCreatives, ownerID, doc)
	if err != nil {
		return nil, err
	}
	output.ID = id

	logrus.WithFields(logrus.Fields{
		"owner_id":   ownerID,
		"output_id":  id,
		"product_id": output.ProductID,
		"ad_copies":  len(output.AdCopies),
	}).Info("Created creative output")
	return output, nil
}

func (s *CreativeOutputStore) Get(ctx context.Context, ownerID, outputID string) (*models.CreativeOutput, error) {
	doc, err := s.docs.Get(ctx, docstore.CollectionCreatives, ownerID, outputID)
	if err != nil {
		return nil, err
	}

	var output models.CreativeOutput
	if err := docstore.Decode(doc, &output); err != nil {
		return nil, err
	}
	return &output, nil
}

// ListForProduct returns a product's creative outputs, newest first.
func (s *CreativeOutputStore) ListForProduct(ctx context.Context, ownerID, productID string, limit int) ([]models.CreativeOutput, error) {
	docs, err := s.docs.Find(ctx, docstore.CollectionCreatives, ownerID, docstore.Query{
		Filters: []docstore.Filter{{Field: "product_id", Value: productID}},
		OrderBy: "generation_timestamp",
		Limit:   clampLimit(limit, defaultCreativeLimit),
	})
	if err != nil {
		return nil, err
	}

	outputs := make([]models.CreativeOutput, 0, len(docs))
	for _, doc := range docs {
		var output models.CreativeOutput
		if err := docstore.Decode(doc, &output); err != nil {
			return nil, err
		}
		outputs = append(outputs, output)
	}
	return outputs, nil
}

// Latest returns the most recently generated output for a product.
// ErrNotFound when the product has none.
func (s *CreativeOutputStore) Latest(ctx context.Context, ownerID, productID string) (*models.CreativeOutput, error) {
	outputs, err := s.ListForProduct(ctx, ownerID, productID, 1)
	if err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		return nil, errNotFound(docstore.CollectionCreatives, productID)
	}
	return &outputs[0], nil
}

// UpdateAdCopies replaces the ad-copy list of an existing output. The
// replacement list is validated as a whole before anything is written.
func (s *CreativeOutputStore) UpdateAdCopies(ctx context.Context, ownerID, outputID string, copies []models.AdCopy) (*models.CreativeOutput, error) {
	if err := models.ValidateAdCopies(copies); err != nil {
		return nil, err
	}

	encoded, err := docstore.Encode(struct {
		AdCopies []models.AdCopy `json:"ad_copies"`
	}{AdCopies: copies})
	if err != nil {
		return nil, err
	}

	if err := s.docs.Update(ctx, docstore.CollectionCreatives, ownerID, outputID, encoded); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"owner_id":  ownerID,
		"output_id": outputID,
		"ad_copies": len(copies),
	}).Info("Replaced ad copies")
	return s.Get(ctx, ownerID, outputID)
}

func (s *CreativeOutputStore) Delete(ctx context.Context, ownerID, outputID string) (bool, error) {
	return s.docs.Delete(ctx, docstore.CollectionCreatives, ownerID, outputID)
}
