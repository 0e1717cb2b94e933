// internal/stores/stores.go
package stores

import (
	"fmt"
	"time"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
	"github.com/nexsy/nexsy-backend/internal/docstore"
	"github.com/nexsy/nexsy-backend/internal/models"
)

// Default listing bounds, applied when the caller passes limit <= 0.
const (
	defaultProductLimit  = 50
	defaultStrategyLimit = 50
	defaultCreativeLimit = 50
	defaultVisualLimit   = 100
)

// encode turns a model into a storable document, stripping the read-only
// id key so backends always assign ids themselves.
func encode(v interface{}) (docstore.Document, error) {
	doc, err := docstore.Encode(v)
	if err != nil {
		return nil, err
	}
	delete(doc, "id")
	return doc, nil
}

// timestamp renders a server-side stamp in the layout the document store
// sorts by.
func timestamp(t models.Time) string {
	return t.UTC().Format(models.TimeLayout)
}

func now() models.Time {
	return models.NewTime(time.Now())
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}

func errNotFound(collection, id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, collection, id)
}
