// internal/services/objectpath_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
)

func TestParseObjectPath(t *testing.T) {
	path, err := ParseObjectPath("users/u1/products/p1/images/photo.png")
	require.NoError(t, err)
	assert.Equal(t, "u1", path.Owner())
	assert.Equal(t, "users/u1/products/p1/images/photo.png", path.String())

	path, err = ParseObjectPath("users/u1/uploads/documents/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "u1", path.Owner())
}

func TestParseObjectPathRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"photo.png",
		"users/u1",
		"uploads/u1/photo.png",
		"users//photo.png",
		"users/u1//photo.png",
		"users/u1/../u2/photo.png",
		"users/u1/./photo.png",
	}
	for _, raw := range cases {
		_, err := ParseObjectPath(raw)
		assert.ErrorIs(t, err, apperrors.ErrForbidden, "path %q", raw)
	}
}

func TestObjectPathOwnershipIsExactSegmentMatch(t *testing.T) {
	path, err := ParseObjectPath("users/abc/uploads/images/photo.png")
	require.NoError(t, err)

	assert.True(t, path.OwnedBy("abc"))
	// A prefix of the owner segment must not pass.
	assert.False(t, path.OwnedBy("abcdef"))
	assert.False(t, path.OwnedBy("ab"))
	assert.False(t, path.OwnedBy(""))
}
