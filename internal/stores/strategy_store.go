// internal/stores/strategy_store.go
package stores

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nexsy/nexsy-backend/internal/docstore"
	"github.com/nexsy/nexsy-backend/internal/models"
)

type StrategyStore struct {
	docs docstore.Store
}

func NewStrategyStore(docs docstore.Store) *StrategyStore {
	return &StrategyStore{docs: docs}
}

func (s *StrategyStore) Create(ctx context.Context, ownerID string, strategy *models.MarketingStrategy) (*models.MarketingStrategy, error) {
	strategy.ID = ""
	strategy.UserID = ownerID
	strategy.CreatedAt = now()

	if err := strategy.Validate(); err != nil {
		return nil, err
	}

	doc, err := encode(strategy)
	if err != nil {
		return nil, err
	}

	id, err := s.docs.Insert(ctx, docstore.CollectionStrategies, ownerID, doc)
	if err != nil {
		return nil, err
	}
	strategy.ID = id

	logrus.WithFields(logrus.Fields{
		"owner_id":    ownerID,
		"strategy_id": id,
		"product_id":  strategy.ProductID,
	}).Info("Created marketing strategy")
	return strategy, nil
}

func (s *StrategyStore) Get(ctx context.Context, ownerID, strategyID string) (*models.MarketingStrategy, error) {
	doc, err := s.docs.Get(ctx, docstore.CollectionStrategies, ownerID, strategyID)
	if err != nil {
		return nil, err
	}

	var strategy models.MarketingStrategy
	if err := docstore.Decode(doc, &strategy); err != nil {
		return nil, err
	}
	return &strategy, nil
}

// GetForProduct returns the current strategy for a product: the most
// recent by creation timestamp. ErrNotFound when none exists.
func (s *StrategyStore) GetForProduct(ctx context.Context, ownerID, productID string) (*models.MarketingStrategy, error) {
	docs, err := s.docs.Find(ctx, docstore.CollectionStrategies, ownerID, docstore.Query{
		Filters: []docstore.Filter{{Field: "product_id", Value: productID}},
		OrderBy: "created_at",
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errNotFound(docstore.CollectionStrategies, productID)
	}

	var strategy models.MarketingStrategy
	if err := docstore.Decode(docs[0], &strategy); err != nil {
		return nil, err
	}
	return &strategy, nil
}

func (s *StrategyStore) List(ctx context.Context, ownerID string, limit int) ([]models.MarketingStrategy, error) {
	docs, err := s.docs.Find(ctx, docstore.CollectionStrategies, ownerID, docstore.Query{
		OrderBy: "created_at",
		Limit:   clampLimit(limit, defaultStrategyLimit),
	})
	if err != nil {
		return nil, err
	}

	strategies := make([]models.MarketingStrategy, 0, len(docs))
	for _, doc := range docs {
		var strategy models.MarketingStrategy
		if err := docstore.Decode(doc, &strategy); err != nil {
			return nil, err
		}
		strategies = append(strategies, strategy)
	}
	return strategies, nil
}

func (s *StrategyStore) Delete(ctx context.Context, ownerID, strategyID string) (bool, error) {
	return s.docs.Delete(ctx, docstore.CollectionStrategies, ownerID, strategyID)
}
