// internal/handlers/visual_test.go
package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPathFromAssetURL(t *testing.T) {
	assert.Equal(t,
		"users/u1/uploads/images/hero.png",
		objectPathFromAssetURL("s3://nexsy-assets/users/u1/uploads/images/hero.png", "u1"))

	// Signed URLs keep the object key in the URL path.
	assert.Equal(t,
		"users/u1/products/p1/generated/ad.png",
		objectPathFromAssetURL("https://nexsy-generated.s3.amazonaws.com/users/u1/products/p1/generated/ad.png?X-Amz-Signature=abc", "u1"))

	// Paths belonging to someone else are not recovered.
	assert.Empty(t, objectPathFromAssetURL("https://nexsy-assets.s3.amazonaws.com/users/u2/uploads/images/hero.png", "u1"))

	assert.Empty(t, objectPathFromAssetURL("", "u1"))
	assert.Empty(t, objectPathFromAssetURL("s3://bucket-only", "u1"))
	assert.Empty(t, objectPathFromAssetURL("https://example.com/no/owner/prefix.png", "u1"))
}
