// internal/models/product.go
package models

// Product is the root entity. Every other entity kind references exactly
// one product owned by the same subject.
type Product struct {
	ID                string  `json:"id,omitempty"`
	UserID            string  `json:"user_id"`
	ProductName       string  `json:"product_name" validate:"required,max=200"`
	WhatIsIt          string  `json:"what_is_it" validate:"required,max=500"`
	Price             float64 `json:"price" validate:"required,gt=0"`
	Currency          string  `json:"currency" validate:"required,len=3"`
	TargetCountry     string  `json:"target_country" validate:"required"`
	TargetCountryCode string  `json:"target_country_code,omitempty" validate:"omitempty,len=2"`
	MainGoal          string  `json:"main_goal" validate:"required"`

	ProductImageURL    string `json:"product_image_url,omitempty"`
	ProductLink        string `json:"product_link,omitempty"`
	ProductDescription string `json:"product_description,omitempty"`
	ProblemItSolves    string `json:"problem_it_solves,omitempty"`
	TargetCustomers    string `json:"target_customers,omitempty"`

	// AI-derived insights, written by the content generation service.
	SetupCompleted          bool     `json:"setup_completed"`
	AIAnalysisSummary       string   `json:"ai_analysis_summary,omitempty"`
	AITargetAudienceProfile string   `json:"ai_target_audience_profile,omitempty"`
	AIKeySellingPoints      []string `json:"ai_key_selling_points,omitempty"`

	CreatedAt Time `json:"created_at"`
	UpdatedAt Time `json:"updated_at"`
}

func (p *Product) Validate() error {
	return validateStruct(p)
}
