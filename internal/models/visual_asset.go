// internal/models/visual_asset.go
package models

// VisualAsset is a stored image or video belonging to a product, either
// uploaded by the user or produced by a generation model.
type VisualAsset struct {
	ID        string `json:"id,omitempty"`
	ProductID string `json:"product_id" validate:"required"`
	UserID    string `json:"user_id"`

	Title      string `json:"title" validate:"required,max=200"`
	AssetURL   string `json:"asset_url" validate:"required"`
	MediaType  string `json:"media_type" validate:"required,oneof=image video"`
	SourceType string `json:"source_type" validate:"required,oneof=uploaded gpt_image_1_generated freepik_generated"`

	// Back-reference to the creative content this asset was made for.
	AssociatedCreativeOutputID string `json:"associated_creative_output_id,omitempty"`
	AssociatedAdCopyIndex      *int   `json:"associated_ad_copy_index,omitempty"`

	// Video-specific metadata.
	GeneratedVideoScript map[string]string `json:"generated_video_script,omitempty"`
	PreviewImageURL      string            `json:"preview_image_url,omitempty"`

	CreatedAt Time `json:"created_at"`
}

func (v *VisualAsset) Validate() error {
	return validateStruct(v)
}
