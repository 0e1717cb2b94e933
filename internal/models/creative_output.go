// internal/models/creative_output.go
package models

// AdCopy is one variant inside a creative output.
type AdCopy struct {
	VariationName         string `json:"variation_name" validate:"required"`
	Headline              string `json:"headline" validate:"required"`
	BodyText              string `json:"body_text" validate:"required"`
	CallToAction          string `json:"call_to_action" validate:"required"`
	PlatformOptimized     string `json:"platform_optimized" validate:"required"`
	OfferValueProposition string `json:"offer_value_proposition,omitempty"`
}

// CreativeOutput holds one generated campaign concept. The ad-copy list
// is never empty.
type CreativeOutput struct {
	ID        string `json:"id,omitempty"`
	ProductID string `json:"product_id" validate:"required"`
	UserID    string `json:"user_id"`

	CreativeConceptTitle       string `json:"creative_concept_title" validate:"required"`
	CreativeConceptDescription string `json:"creative_concept_description" validate:"required"`
	TargetAudienceSummary      string `json:"target_audience_summary" validate:"required"`
	WhyThisWorks               string `json:"why_this_works" validate:"required"`

	AdCopies []AdCopy `json:"ad_copies" validate:"required,min=1,dive"`

	GenerationTimestamp Time   `json:"generation_timestamp"`
	Tone                string `json:"tone,omitempty"`
}

func (c *CreativeOutput) Validate() error {
	return validateStruct(c)
}

// ValidateAdCopies checks a replacement ad-copy list before it is
// applied to an existing output.
func ValidateAdCopies(copies []AdCopy) error {
	return validateStruct(&struct {
		AdCopies []AdCopy `validate:"required,min=1,dive"`
	}{AdCopies: copies})
}
