// internal/models/marketing_strategy.go
package models

// CustomerAvatar is a customer persona inside a strategy infopack.
type CustomerAvatar struct {
	Label       string `json:"label" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type ProductInfoPack struct {
	CustomerAvatars []CustomerAvatar `json:"customer_avatars" validate:"dive"`
}

type CreativeBrief struct {
	CreativeAngle           string `json:"creative_angle" validate:"required"`
	VisualStyleArtDirection string `json:"visual_style_art_direction" validate:"required"`
}

// MarketingStrategy is immutable after creation; the most recent strategy
// per product is the current one.
type MarketingStrategy struct {
	ID        string `json:"id,omitempty"`
	ProductID string `json:"product_id" validate:"required"`
	UserID    string `json:"user_id"`

	ProductInfopack *ProductInfoPack `json:"product_infopack,omitempty"`
	CreativeBrief   *CreativeBrief   `json:"creative_brief,omitempty"`

	// Response identifier from the generation provider, for traceability.
	OpenAIResponseID string `json:"openai_response_id,omitempty"`

	CreatedAt Time `json:"created_at"`
}

func (s *MarketingStrategy) Validate() error {
	return validateStruct(s)
}
