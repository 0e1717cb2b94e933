// internal/stores/creative_store_test.go
package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
	"github.com/nexsy/nexsy-backend/internal/docstore"
	"github.com/nexsy/nexsy-backend/internal/models"
)

type CreativeStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *CreativeOutputStore
}

func (s *CreativeStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewCreativeOutputStore(docstore.NewMemoryStore())
}

func (s *CreativeStoreTestSuite) TestCreateAndGet() {
	created, err := s.store.Create(s.ctx, "user-1", validOutput("p1"))
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), created.ID)
	assert.False(s.T(), created.GenerationTimestamp.IsZero())

	fetched, err := s.store.Get(s.ctx, "user-1", created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Off-grid freedom", fetched.CreativeConceptTitle)
	require.Len(s.T(), fetched.AdCopies, 1)
	assert.Equal(s.T(), "Variation A", fetched.AdCopies[0].VariationName)
}

func (s *CreativeStoreTestSuite) TestCreateRejectsEmptyAdCopies() {
	output := validOutput("p1")
	output.AdCopies = nil

	_, err := s.store.Create(s.ctx, "user-1", output)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *CreativeStoreTestSuite) TestCreateRejectsIncompleteAdCopy() {
	output := validOutput("p1")
	output.AdCopies[0].Headline = ""

	_, err := s.store.Create(s.ctx, "user-1", output)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *CreativeStoreTestSuite) TestLatestReturnsNewest() {
	older := validOutput("p1")
	older.CreativeConceptTitle = "Older concept"
	_, err := s.store.Create(s.ctx, "user-1", older)
	require.NoError(s.T(), err)
	time.Sleep(time.Millisecond)

	newer := validOutput("p1")
	newer.CreativeConceptTitle = "Newer concept"
	_, err = s.store.Create(s.ctx, "user-1", newer)
	require.NoError(s.T(), err)

	latest, err := s.store.Latest(s.ctx, "user-1", "p1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Newer concept", latest.CreativeConceptTitle)
}

func (s *CreativeStoreTestSuite) TestLatestNotFound() {
	_, err := s.store.Latest(s.ctx, "user-1", "missing")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *CreativeStoreTestSuite) TestListForProductScopesByProduct() {
	_, err := s.store.Create(s.ctx, "user-1", validOutput("p1"))
	require.NoError(s.T(), err)
	_, err = s.store.Create(s.ctx, "user-1", validOutput("p2"))
	require.NoError(s.T(), err)

	outputs, err := s.store.ListForProduct(s.ctx, "user-1", "p1", 0)
	require.NoError(s.T(), err)
	require.Len(s.T(), outputs, 1)
	assert.Equal(s.T(), "p1", outputs[0].ProductID)
}

func (s *CreativeStoreTestSuite) TestUpdateAdCopiesReplacesList() {
	created, err := s.store.Create(s.ctx, "user-1", validOutput("p1"))
	require.NoError(s.T(), err)

	replacement := []models.AdCopy{validAdCopy("Variation B"), validAdCopy("Variation C")}
	updated, err := s.store.UpdateAdCopies(s.ctx, "user-1", created.ID, replacement)
	require.NoError(s.T(), err)
	require.Len(s.T(), updated.AdCopies, 2)
	assert.Equal(s.T(), "Variation B", updated.AdCopies[0].VariationName)
	// Concept fields are untouched.
	assert.Equal(s.T(), "Off-grid freedom", updated.CreativeConceptTitle)
}

func (s *CreativeStoreTestSuite) TestUpdateAdCopiesRejectsInvalidList() {
	created, err := s.store.Create(s.ctx, "user-1", validOutput("p1"))
	require.NoError(s.T(), err)

	_, err = s.store.UpdateAdCopies(s.ctx, "user-1", created.ID, nil)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)

	bad := []models.AdCopy{{VariationName: "Incomplete"}}
	_, err = s.store.UpdateAdCopies(s.ctx, "user-1", created.ID, bad)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)

	// The stored output still has the original list.
	fetched, err := s.store.Get(s.ctx, "user-1", created.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), fetched.AdCopies, 1)
	assert.Equal(s.T(), "Variation A", fetched.AdCopies[0].VariationName)
}

func (s *CreativeStoreTestSuite) TestUpdateAdCopiesCrossOwnerNotFound() {
	created, err := s.store.Create(s.ctx, "user-1", validOutput("p1"))
	require.NoError(s.T(), err)

	_, err = s.store.UpdateAdCopies(s.ctx, "user-2", created.ID, []models.AdCopy{validAdCopy("X")})
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func TestCreativeStoreSuite(t *testing.T) {
	suite.Run(t, new(CreativeStoreTestSuite))
}
