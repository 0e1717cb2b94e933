// internal/utils/binding.go
package utils

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// BindStrict decodes a JSON request body into dst, rejecting unknown
// fields and trailing content. Unknown fields in write requests are
// treated as client errors rather than silently dropped.
func BindStrict(c *gin.Context, dst interface{}) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid request body: unexpected trailing content")
	}
	return nil
}
