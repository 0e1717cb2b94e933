// internal/models/common.go
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
)

// TimeLayout fixes the fractional-second width so the lexicographic
// order of serialized timestamps matches chronological order. The
// document store sorts recency fields as strings and relies on this.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// Time is a UTC timestamp serialized with TimeLayout.
type Time struct {
	time.Time
}

func NewTime(t time.Time) Time {
	return Time{Time: t.UTC()}
}

func Now() Time {
	return NewTime(time.Now())
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(TimeLayout))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{TimeLayout, time.RFC3339Nano, time.RFC3339} {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", raw)
}

// Media kinds for visual assets.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Provenance tags for visual assets.
const (
	SourceTypeUploaded       = "uploaded"
	SourceTypeGeneratedImage = "gpt_image_1_generated"
	SourceTypeGeneratedVideo = "freepik_generated"
)

var validate = validator.New()

// validateStruct wraps validator failures in the ValidationError branch
// of the taxonomy so callers can map them to a 422.
func validateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return nil
}
