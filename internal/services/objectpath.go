// internal/services/objectpath.go
package services

import (
	"fmt"
	"strings"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
)

// ObjectPath is a storage key of the form
// users/{ownerID}/products/{productID}/{kind}s/{file} or
// users/{ownerID}/uploads/{kind}s/{file}. Ownership checks compare the
// owner segment exactly, so "users/abc" never matches owner "abcdef".
type ObjectPath struct {
	raw   string
	owner string
}

func ParseObjectPath(raw string) (ObjectPath, error) {
	segments := strings.Split(raw, "/")
	if len(segments) < 3 || segments[0] != "users" || segments[1] == "" {
		return ObjectPath{}, fmt.Errorf("%w: malformed object path %q", apperrors.ErrForbidden, raw)
	}
	for _, segment := range segments {
		if segment == "" || segment == "." || segment == ".." {
			return ObjectPath{}, fmt.Errorf("%w: malformed object path %q", apperrors.ErrForbidden, raw)
		}
	}
	return ObjectPath{raw: raw, owner: segments[1]}, nil
}

func (p ObjectPath) String() string {
	return p.raw
}

func (p ObjectPath) Owner() string {
	return p.owner
}

func (p ObjectPath) OwnedBy(userID string) bool {
	return p.owner == userID
}

// hasSegment reports whether the path contains the given segment
// anywhere, used to route generated and report objects to their bucket.
func (p ObjectPath) hasSegment(segment string) bool {
	for _, s := range strings.Split(p.raw, "/") {
		if s == segment {
			return true
		}
	}
	return false
}
